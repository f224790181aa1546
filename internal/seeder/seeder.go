package seeder

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/bitbites/canteen/internal/database"
	"github.com/bitbites/canteen/internal/entity"
)

// Module provides the seeder to Fx.
var Module = fx.Provide(New)

// Seeder loads development fixtures. It never touches a non-empty table,
// so it is safe to run repeatedly.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// Menu seeds the catalog for both sites if it is empty.
func (s *Seeder) Menu(ctx context.Context) error {
	count, err := s.db.NewSelect().Model((*entity.MenuItem)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		if s.logger != nil {
			s.logger.Info("menu already seeded", zap.Int("items", count))
		}
		return nil
	}

	now := time.Now().UTC()
	items := menuFixtures(now)
	if _, err := s.db.NewInsert().Model(&items).Exec(ctx); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("seeded menu items", zap.Int("count", len(items)))
	}
	return nil
}

// Orders seeds a handful of demo orders for the staff dashboard if the
// orders table is empty.
func (s *Seeder) Orders(ctx context.Context) error {
	count, err := s.db.NewSelect().Model((*entity.Order)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		if s.logger != nil {
			s.logger.Info("orders already seeded", zap.Int("orders", count))
		}
		return nil
	}

	now := time.Now().UTC()
	for _, sample := range orderFixtures(now) {
		order := sample
		if _, err := s.db.NewInsert().Model(order).Exec(ctx); err != nil {
			return err
		}
		for _, line := range order.Lines {
			line.OrderID = order.ID
		}
		if _, err := s.db.NewInsert().Model(&order.Lines).Exec(ctx); err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded demo orders")
	}
	return nil
}
