package postgres

import (
	"context"
	"fmt"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/locationrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/outboxrepo"
	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/adapters/out/postgres/restaurantrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the dispatch schema. AutoMigrate covers tables and plain
// indexes; the partial indexes it cannot express are created explicitly.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(
		&restaurantrepo.RestaurantDTO{},
		&orderrepo.OrderDTO{},
		&courierrepo.CourierDTO{},
		&assignmentrepo.AssignmentDTO{},
		&locationrepo.SampleDTO{},
		&outboxrepo.OutboxEventDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS ` + pgerr.LiveAssignmentIndex + `
		   ON delivery_assignments (order_id)
		   WHERE status IN ('assigned', 'accepted', 'picked_up', 'on_the_way')`,
		`CREATE INDEX IF NOT EXISTS idx_outbox_events_pending
		   ON outbox_events (seq)
		   WHERE dispatched_at IS NULL`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
