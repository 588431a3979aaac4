package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrListCourierAssignmentsQueryIsNotConstructed = errors.New(
	"ListCourierAssignmentsQuery must be created via NewListCourierAssignmentsQuery constructor",
)

// ListCourierAssignmentsQuery is the courier app's reconciliation read.
type ListCourierAssignmentsQuery struct {
	courierID kernel.UUID
	liveOnly  bool

	guard guard.ConstructorGuard
}

func NewListCourierAssignmentsQuery(courierID kernel.UUID, liveOnly bool) (ListCourierAssignmentsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return ListCourierAssignmentsQuery{}, err
	}
	return ListCourierAssignmentsQuery{
		courierID: courierID,
		liveOnly:  liveOnly,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListCourierAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrListCourierAssignmentsQueryIsNotConstructed)
}

func (q ListCourierAssignmentsQuery) CourierID() kernel.UUID { return q.courierID }
func (q ListCourierAssignmentsQuery) LiveOnly() bool         { return q.liveOnly }

type ListCourierAssignmentsQueryHandler struct {
	db *gorm.DB
}

func NewListCourierAssignmentsQueryHandler(db *gorm.DB) ListCourierAssignmentsQueryHandler {
	return ListCourierAssignmentsQueryHandler{db: db}
}

// Handle returns the courier's assignments, newest first.
func (h ListCourierAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query ListCourierAssignmentsQuery,
) ([]events.AssignmentRecord, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("delivery_assignments").Select(assignmentColumns).
		Where("courier_id = ?", query.CourierID().Bytes())
	if query.LiveOnly() {
		var live []string
		for _, s := range assignment.AllStatuses() {
			if s.IsLive() {
				live = append(live, s.String())
			}
		}
		tx = tx.Where("status IN ?", live)
	}

	var rows []assignmentRow
	if err := tx.Order("assigned_at DESC, id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	list := make([]events.AssignmentRecord, 0, len(rows))
	for _, r := range rows {
		list = append(list, r.record())
	}
	return list, nil
}
