package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// errStatementFailed is the reason reported to callers for a failed statement.
// The driver error is only logged.
var errStatementFailed = errors.New("statement failed")

// Engine applies plans through a Store under a fixed policy.
type Engine struct {
	store  Store
	policy Policy
	logger *zap.Logger
}

// NewEngine creates an engine. An empty policy selects PolicyAtomic.
func NewEngine(store Store, policy Policy, logger *zap.Logger) *Engine {
	if policy == "" {
		policy = PolicyAtomic
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: store, policy: policy, logger: logger}
}

// Policy returns the configured policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// WithLogger returns a copy of the engine that logs through l (e.g. a request-scoped logger).
func (e *Engine) WithLogger(l *zap.Logger) *Engine {
	cp := *e
	cp.logger = l
	return &cp
}

// Reconcile plans and applies a batch.
func (e *Engine) Reconcile(ctx context.Context, reqs []ChangeRequest) (*Result, error) {
	plan, err := BuildPlan(reqs)
	if err != nil {
		return nil, err
	}
	return e.Apply(ctx, plan)
}

// Apply executes a plan in one transaction.
//
// Atomic: an invalid plan is refused with *InvalidBatchError before any statement,
// and the first statement error rolls back the batch and is returned as *ItemError.
//
// Tolerant: invalid items and failed statements are reported in Result.Failures.
// Each action runs in its own savepoint and the transaction commits the rest.
func (e *Engine) Apply(ctx context.Context, plan *Plan) (*Result, error) {
	if plan == nil || plan.Summary.Total == 0 {
		return nil, ErrEmptyBatch
	}

	switch e.policy {
	case PolicyAtomic:
		return e.applyAtomic(ctx, plan)
	case PolicyTolerant:
		return e.applyTolerant(ctx, plan)
	default:
		return nil, fmt.Errorf("unknown reconcile policy %q", e.policy)
	}
}

func (e *Engine) applyAtomic(ctx context.Context, plan *Plan) (*Result, error) {
	if !plan.Valid() {
		for _, f := range plan.Failures {
			e.logger.Warn("Rejected item",
				zap.Int("index", f.Index),
				zap.String("action", string(f.Kind)),
				zap.String("reason", f.Reason),
			)
		}
		return nil, &InvalidBatchError{Failures: plan.Failures}
	}

	res := newResult()
	err := e.store.Transaction(ctx, func(tx Tx) error {
		for _, action := range plan.Actions {
			out, err := e.execute(ctx, tx, action)
			if err != nil {
				e.logger.Error("Statement failed, rolling back batch",
					zap.Int("index", action.Index),
					zap.String("action", string(action.Kind)),
					zap.Any("key", action.Key),
					zap.Error(err),
				)
				return &ItemError{Index: action.Index, Kind: action.Kind, Key: action.Key, Err: err}
			}
			e.record(res, action, out)
		}
		return nil
	})
	if err != nil {
		var itemErr *ItemError
		if errors.As(err, &itemErr) {
			return nil, itemErr
		}
		return nil, fmt.Errorf("reconcile transaction failed: %w", err)
	}

	e.logSummary(res)
	return res, nil
}

func (e *Engine) applyTolerant(ctx context.Context, plan *Plan) (*Result, error) {
	res := newResult()
	res.Failures = append(res.Failures, plan.Failures...)
	for _, f := range plan.Failures {
		e.logger.Warn("Skipping invalid item",
			zap.Int("index", f.Index),
			zap.String("action", string(f.Kind)),
			zap.String("reason", f.Reason),
		)
	}

	if len(plan.Actions) > 0 {
		err := e.store.Transaction(ctx, func(tx Tx) error {
			for _, action := range plan.Actions {
				var out outcome
				err := tx.Isolate(ctx, func(sp Tx) error {
					var err error
					out, err = e.execute(ctx, sp, action)
					return err
				})
				if err != nil {
					e.logger.Error("Statement failed, continuing",
						zap.Int("index", action.Index),
						zap.String("action", string(action.Kind)),
						zap.Any("key", action.Key),
						zap.Error(err),
					)
					res.Failures = append(res.Failures, Failure{
						Index:  action.Index,
						Kind:   action.Kind,
						Key:    action.Key,
						Reason: errStatementFailed.Error(),
					})
					continue
				}
				e.record(res, action, out)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("reconcile transaction failed: %w", err)
		}
	}

	sort.SliceStable(res.Failures, func(i, j int) bool {
		return res.Failures[i].Index < res.Failures[j].Index
	})

	e.logSummary(res)
	return res, nil
}

// outcome is the raw result of one statement.
type outcome struct {
	itemID   int64
	affected int64
}

func (e *Engine) execute(ctx context.Context, tx Tx, action Action) (outcome, error) {
	switch action.Kind {
	case KindInsert:
		id, err := tx.Insert(ctx, *action.Insert)
		if err != nil {
			return outcome{}, err
		}
		e.logger.Debug("Inserted item", zap.Int("index", action.Index), zap.Int64("item_id", id))
		return outcome{itemID: id, affected: 1}, nil
	case KindUpdate:
		n, err := tx.Update(ctx, *action.Update)
		if err != nil {
			return outcome{}, err
		}
		e.logger.Debug("Updated item", zap.Int("index", action.Index), zap.Int64("item_id", action.Update.ItemID), zap.Int64("rows", n))
		return outcome{itemID: action.Update.ItemID, affected: n}, nil
	case KindDelete:
		n, err := tx.Delete(ctx, *action.Delete)
		if err != nil {
			return outcome{}, err
		}
		e.logger.Debug("Deleted item", zap.Int("index", action.Index), zap.Int64("item_id", action.Delete.ItemID), zap.Int64("rows", n))
		return outcome{itemID: action.Delete.ItemID, affected: n}, nil
	default:
		return outcome{}, fmt.Errorf("%w: %s", ErrUnclassifiable, action.Kind)
	}
}

// record folds one successful statement into the result.
func (e *Engine) record(res *Result, action Action, out outcome) {
	if action.Kind != KindInsert && out.affected == 0 {
		e.logger.Warn("Statement matched no row",
			zap.Int("index", action.Index),
			zap.String("action", string(action.Kind)),
			zap.Any("key", action.Key),
		)
		res.Warnings = append(res.Warnings, Warning{
			Index:  action.Index,
			Kind:   action.Kind,
			Key:    action.Key,
			Reason: WarningNotFound,
		})
		return
	}

	switch action.Kind {
	case KindInsert:
		res.Inserted++
		res.Details.Inserted = append(res.Details.Inserted, InsertedItem{
			Index:     action.Index,
			ItemID:    out.itemID,
			ClientRef: action.Key.ClientRef,
		})
	case KindUpdate:
		res.Updated++
		res.Details.Updated = append(res.Details.Updated, UpdatedItem{
			Index:  action.Index,
			ItemID: out.itemID,
		})
	case KindDelete:
		res.Deleted++
		d := action.Delete
		res.Details.Deleted = append(res.Details.Deleted, DeletedItem{
			Index:         action.Index,
			ItemID:        d.ItemID,
			OrderRef:      d.OrderRef,
			OrderID:       d.OrderID,
			ReferenceCode: d.ReferenceCode,
		})
	}
}

func (e *Engine) logSummary(res *Result) {
	e.logger.Info("Reconciliation applied",
		zap.String("policy", string(e.policy)),
		zap.Int("inserted", res.Inserted),
		zap.Int("updated", res.Updated),
		zap.Int("deleted", res.Deleted),
		zap.Int("warnings", len(res.Warnings)),
		zap.Int("failures", len(res.Failures)),
	)
}
