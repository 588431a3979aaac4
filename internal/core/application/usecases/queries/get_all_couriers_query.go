package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetAllCouriersQueryIsNotConstructed = errors.New(
	"GetAllCouriersQuery must be created via NewGetAllCouriersQuery constructor",
)

// GetAllCouriersQuery lists every registered courier, optionally only those accepting work.
//
// Example:
//
//	query := NewGetAllCouriersQuery(false)
//	handler := NewGetAllCouriersQueryHandler(db)
//
//	couriers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get couriers: %w", err)
//	}
//	for _, c := range couriers {
//	    fmt.Printf("%s is %s\n", c.Name, c.CourierStatus)
//	}
type GetAllCouriersQuery struct {
	availableOnly bool

	guard guard.ConstructorGuard
}

func NewGetAllCouriersQuery(availableOnly bool) GetAllCouriersQuery {
	return GetAllCouriersQuery{availableOnly: availableOnly, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCouriersQueryIsNotConstructed)
}

func (q GetAllCouriersQuery) AvailableOnly() bool { return q.availableOnly }

// GetAllCouriersQueryHandler reads couriers ordered by name.
type GetAllCouriersQueryHandler struct {
	db *gorm.DB
}

func NewGetAllCouriersQueryHandler(db *gorm.DB) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{db: db}
}

func (h GetAllCouriersQueryHandler) Handle(ctx context.Context, query GetAllCouriersQuery) ([]events.CourierRecord, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("couriers").Select(`
		id, name, phone, vehicle_type, vehicle_plate, is_active, is_available, courier_status,
		active_assignments, current_latitude, current_longitude, last_location_update, updated_at`)
	if query.AvailableOnly() {
		tx = tx.Where("is_active AND is_available")
	}

	var rows []courierRow
	if err := tx.Order("name, id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	couriers := make([]events.CourierRecord, 0, len(rows))
	for _, r := range rows {
		couriers = append(couriers, r.record())
	}
	return couriers, nil
}
