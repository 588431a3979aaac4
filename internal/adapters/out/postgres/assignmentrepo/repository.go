// Package assignmentrepo persists delivery assignments with gorm.
package assignmentrepo

import (
	"context"
	"errors"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormAssignmentRepository implements ports.AssignmentRepository.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db, tracker: tracker}
}

// Add inserts the assignment. A violation of the live-assignment index means another
// transaction won the race for the order and is reported as AlreadyAssignedError.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err, pgerr.LiveAssignmentIndex) {
			return errs.NewAlreadyAssignedErrorWithCause(aggregate.OrderID().String(), err)
		}
		return pgerr.Translate("add assignment", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "accepted_at", "picked_up_at", "on_the_way_at", "delivered_at",
			"rejected_at", "cancelled_at", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate("update assignment", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	return r.get(ctx, r.db, id)
}

func (r *GormAssignmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormAssignmentRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, pgerr.Translate("get assignment", err)
	}

	return toDomain(dto)
}

func (r *GormAssignmentRepository) FindLiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*assignment.Assignment, bool, error) {
	if err := orderID.Validate(); err != nil {
		return nil, false, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ? AND status IN ?", orderID.Bytes(), liveStatuses()).
		Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, pgerr.Translate("find live assignment", err)
	}

	a, err := toDomain(dto)
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

func (r *GormAssignmentRepository) ListByCourier(
	ctx context.Context,
	courierID kernel.UUID,
	liveOnly bool,
) ([]*assignment.Assignment, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Where("courier_id = ?", courierID.Bytes())
	if liveOnly {
		query = query.Where("status IN ?", liveStatuses())
	}

	var dtos []AssignmentDTO
	if err := query.Order("assigned_at DESC").Find(&dtos).Error; err != nil {
		return nil, pgerr.Translate("list assignments", err)
	}

	out := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func liveStatuses() []string {
	live := assignment.LiveStatuses()
	out := make([]string, 0, len(live))
	for _, s := range live {
		out = append(out, s.String())
	}
	return out
}
