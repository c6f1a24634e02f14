package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrUnavailable is returned when no healthy connection can be obtained.
var ErrUnavailable = errors.New("database unavailable")

// Getter hands out a healthy *gorm.DB for the duration of one operation.
type Getter interface {
	Get(ctx context.Context) (*gorm.DB, error)
}

// Provider owns the process-wide connection pool.
// Every Get pings the current pool first; a failed ping discards it and dials again.
// mu only guards the pointer, so a slow ping or dial never blocks Close or a healthy Get.
type Provider struct {
	cfg     Config
	logger  *zap.Logger
	connect func(Config) (*gorm.DB, error)

	dialMu sync.Mutex
	mu     sync.Mutex
	db     *gorm.DB
}

// NewProvider creates a provider. No connection is opened until the first Get.
func NewProvider(cfg Config, logger *zap.Logger) *Provider {
	return &Provider{
		cfg:     cfg,
		logger:  logger,
		connect: Connect,
	}
}

// Get returns a healthy connection pool, reconnecting when the health check fails.
func (p *Provider) Get(ctx context.Context) (*gorm.DB, error) {
	seen := p.current()
	if seen != nil && ping(ctx, seen) == nil {
		return seen, nil
	}

	p.dialMu.Lock()
	defer p.dialMu.Unlock()

	// Another caller may have reconnected while we waited.
	cur := p.current()
	if cur != nil {
		err := ping(ctx, cur)
		if err == nil {
			return cur, nil
		}
		p.logger.Warn("Database health check failed, reconnecting", zap.Error(err))
		p.swap(cur, nil)
	}

	p.logger.Info("Connecting to database",
		zap.String("driver", p.cfg.Driver),
		zap.String("host", p.cfg.Host),
		zap.Int("port", p.cfg.Port),
		zap.String("database", p.cfg.Name),
		zap.String("user", p.cfg.User),
		zap.Bool("encrypt", p.cfg.Encrypt),
		zap.Bool("trust_server_certificate", p.cfg.TrustServerCertificate),
	)

	db, err := p.connect(p.cfg)
	if err != nil {
		p.logger.Error("Database connection failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	p.swap(nil, db)
	p.logger.Info("Connected to database")
	return db, nil
}

func (p *Provider) current() *gorm.DB {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.db
}

// swap replaces old with next and closes old. It is a no-op when the pool already moved on.
func (p *Provider) swap(old, next *gorm.DB) {
	p.mu.Lock()
	if p.db != old {
		p.mu.Unlock()
		if next != nil {
			_ = closeDB(next)
		}
		return
	}
	p.db = next
	p.mu.Unlock()

	if old != nil {
		_ = closeDB(old)
	}
}

// Close releases the pool. Subsequent Get calls reconnect.
func (p *Provider) Close() error {
	p.mu.Lock()
	db := p.db
	p.db = nil
	p.mu.Unlock()

	if db == nil {
		return nil
	}
	err := closeDB(db)
	if err == nil {
		p.logger.Info("Database connection closed")
	}
	return err
}

// Static wraps an already opened connection, mainly for tests and one-shot commands.
type Static struct {
	DB *gorm.DB
}

// Get returns the wrapped connection.
func (s Static) Get(ctx context.Context) (*gorm.DB, error) {
	if s.DB == nil {
		return nil, ErrUnavailable
	}
	return s.DB, nil
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
