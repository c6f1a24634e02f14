package integrity

import (
	"context"
	"errors"

	"returns-bridge/core/database"
	"returns-bridge/core/storage"
	"returns-bridge/feature/integrity/checks"
	"returns-bridge/feature/lineitems/models"

	"go.uber.org/zap"
)

// ErrStorageDisabled is returned by storage checks when the report archive is off.
var ErrStorageDisabled = errors.New("report archive is disabled")

// Service handles integrity checks.
type Service struct {
	db     database.Getter
	client storage.Client
	bucket string
	region string
	logger *zap.Logger
}

// NewService creates a new integrity service. client may be nil when archiving is disabled.
func NewService(db database.Getter, client storage.Client, bucket, region string, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		client: client,
		bucket: bucket,
		region: region,
		logger: logger,
	}
}

// CheckSchema compares CAD_IPE against the line item model.
func (s *Service) CheckSchema(ctx context.Context) (*checks.SchemaReport, error) {
	db, err := s.db.Get(ctx)
	if err != nil {
		return nil, err
	}
	return checks.CheckSchema(db.WithContext(ctx), &models.LineItem{})
}

// CheckStorage reports whether the archive bucket exists.
func (s *Service) CheckStorage(ctx context.Context) (*checks.BucketReport, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return checks.CheckBucket(ctx, s.client, s.bucket)
}

// FixStorage creates the archive bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	if s.client == nil {
		return ErrStorageDisabled
	}
	return checks.FixBucket(ctx, s.client, s.bucket, s.region, s.logger)
}
