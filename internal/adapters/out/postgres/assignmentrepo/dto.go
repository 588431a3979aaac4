package assignmentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssignmentDTO is the delivery_assignments row. One live row per order is enforced by a
// partial unique index created in the migration.
type AssignmentDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CourierID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status       string          `gorm:"type:varchar(32);not null"`
	DeliveryFee  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	AssignedAt   time.Time       `gorm:"type:timestamptz;not null"`
	AcceptedAt   *time.Time      `gorm:"type:timestamptz"`
	PickedUpAt   *time.Time      `gorm:"type:timestamptz"`
	OnTheWayAt   *time.Time      `gorm:"type:timestamptz"`
	DeliveredAt  *time.Time      `gorm:"type:timestamptz"`
	RejectedAt   *time.Time      `gorm:"type:timestamptz"`
	CancelledAt  *time.Time      `gorm:"type:timestamptz"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime:false;not null"`
}

func (AssignmentDTO) TableName() string {
	return "delivery_assignments"
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	ts := a.Timestamps()
	return AssignmentDTO{
		ID:           a.ID().Bytes(),
		OrderID:      a.OrderID().Bytes(),
		CourierID:    a.CourierID().Bytes(),
		RestaurantID: a.RestaurantID().Bytes(),
		Status:       a.Status().String(),
		DeliveryFee:  a.DeliveryFee().Decimal(),
		AssignedAt:   ts.AssignedAt,
		AcceptedAt:   ts.AcceptedAt,
		PickedUpAt:   ts.PickedUpAt,
		OnTheWayAt:   ts.OnTheWayAt,
		DeliveredAt:  ts.DeliveredAt,
		RejectedAt:   ts.RejectedAt,
		CancelledAt:  ts.CancelledAt,
		UpdatedAt:    a.UpdatedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.OrderID, dto.CourierID, dto.RestaurantID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	status, err := assignment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	fee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(assignment.RestoreParams{
		ID:           ids[0],
		OrderID:      ids[1],
		CourierID:    ids[2],
		RestaurantID: ids[3],
		Status:       status,
		DeliveryFee:  fee,
		Timestamps: assignment.Timestamps{
			AssignedAt:  dto.AssignedAt,
			AcceptedAt:  dto.AcceptedAt,
			PickedUpAt:  dto.PickedUpAt,
			OnTheWayAt:  dto.OnTheWayAt,
			DeliveredAt: dto.DeliveredAt,
			RejectedAt:  dto.RejectedAt,
			CancelledAt: dto.CancelledAt,
		},
		UpdatedAt: dto.UpdatedAt,
	})
}
