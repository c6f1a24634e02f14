package lineitems

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"returns-bridge/core/database"
	"returns-bridge/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMissingOrderKey is returned when an order item lookup names neither REV_COD nor PED_COD.
var ErrMissingOrderKey = errors.New("REV_COD or PED_COD is required")

var reportNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Archiver stores reconciliation reports. *storage.Archive satisfies it.
type Archiver interface {
	PutJSON(ctx context.Context, name string, v any) (string, error)
}

// Report is the archived record of one reconciliation call.
type Report struct {
	RayID     string            `json:"ray_id"`
	Policy    reconcile.Policy  `json:"policy"`
	CreatedAt time.Time         `json:"created_at"`
	Items     int               `json:"items"`
	Result    *reconcile.Result `json:"result"`
}

// Service reconciles line items and looks up order items.
type Service struct {
	db      database.Getter
	opts    Options
	archive Archiver
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates the service. archive may be nil to disable report archiving.
func NewService(db database.Getter, opts Options, archive Archiver, logger *zap.Logger) *Service {
	if opts.Policy == "" {
		opts.Policy = reconcile.PolicyAtomic
	}
	return &Service{
		db:      db,
		opts:    opts,
		archive: archive,
		logger:  logger,
		now:     time.Now,
	}
}

// Reconcile applies a batch. An empty batch fails before any database access.
// l is the request-scoped logger; rayID names the archived report.
func (s *Service) Reconcile(ctx context.Context, rayID string, reqs []reconcile.ChangeRequest, l *zap.Logger) (*reconcile.Result, error) {
	if len(reqs) == 0 {
		return nil, reconcile.ErrEmptyBatch
	}
	if l == nil {
		l = s.logger
	}

	plan, err := reconcile.BuildPlan(reqs)
	if err != nil {
		return nil, err
	}
	l.Info("Reconciliation planned",
		zap.Int("items", plan.Summary.Total),
		zap.Int("inserts", plan.Summary.Inserts),
		zap.Int("updates", plan.Summary.Updates),
		zap.Int("deletes", plan.Summary.Deletes),
		zap.Int("rejected", plan.Summary.Rejected),
	)

	// An invalid atomic batch is refused without taking a connection.
	if s.opts.Policy == reconcile.PolicyAtomic && !plan.Valid() {
		for _, f := range plan.Failures {
			l.Warn("Rejected item", zap.Int("index", f.Index), zap.String("action", string(f.Kind)), zap.String("reason", f.Reason))
		}
		return nil, &reconcile.InvalidBatchError{Failures: plan.Failures}
	}

	db, err := s.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	res, err := reconcile.NewEngine(NewStore(db), s.opts.Policy, l).Apply(ctx, plan)
	if err != nil {
		return nil, err
	}

	s.archiveReport(ctx, rayID, len(reqs), res, l)
	return res, nil
}

// archiveReport uploads the result. Failures are logged and never affect the call.
func (s *Service) archiveReport(ctx context.Context, rayID string, items int, res *reconcile.Result, l *zap.Logger) {
	if s.archive == nil {
		return
	}

	name := rayID
	if !reportNamePattern.MatchString(name) {
		name = uuid.NewString()
	}

	key, err := s.archive.PutJSON(ctx, name, Report{
		RayID:     rayID,
		Policy:    s.opts.Policy,
		CreatedAt: s.now().UTC(),
		Items:     items,
		Result:    res,
	})
	if err != nil {
		l.Warn("Failed to archive reconciliation report", zap.Error(err))
		return
	}
	l.Debug("Archived reconciliation report", zap.String("object", key))
}

// OrderItems runs the order items procedure for a revision and/or order.
func (s *Service) OrderItems(ctx context.Context, orderRef, orderID *int64) ([]map[string]any, error) {
	if orderRef == nil && orderID == nil {
		return nil, ErrMissingOrderKey
	}

	db, err := s.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := database.CallProcedure(ctx, db, s.opts.OrderItemsProcedure,
		database.Param{Name: "REV_COD", Value: nullableInt(orderRef)},
		database.Param{Name: "PED_COD", Value: nullableInt(orderID)},
	)
	if err != nil {
		return nil, fmt.Errorf("order items lookup: %w", err)
	}
	return rows, nil
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
