package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetAssignmentQueryIsNotConstructed = errors.New(
	"GetAssignmentQuery must be created via NewGetAssignmentQuery constructor",
)

type GetAssignmentQuery struct {
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetAssignmentQuery(assignmentID kernel.UUID) (GetAssignmentQuery, error) {
	if err := assignmentID.Validate(); err != nil {
		return GetAssignmentQuery{}, err
	}
	return GetAssignmentQuery{assignmentID: assignmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAssignmentQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignmentQueryIsNotConstructed)
}

func (q GetAssignmentQuery) AssignmentID() kernel.UUID { return q.assignmentID }

type GetAssignmentQueryHandler struct {
	db *gorm.DB
}

func NewGetAssignmentQueryHandler(db *gorm.DB) GetAssignmentQueryHandler {
	return GetAssignmentQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError for an unknown id.
func (h GetAssignmentQueryHandler) Handle(ctx context.Context, query GetAssignmentQuery) (events.AssignmentRecord, error) {
	if err := query.Validate(); err != nil {
		return events.AssignmentRecord{}, err
	}

	var rows []assignmentRow
	err := h.db.WithContext(ctx).Table("delivery_assignments").Select(assignmentColumns).
		Where("id = ?", query.AssignmentID().Bytes()).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return events.AssignmentRecord{}, err
	}
	if len(rows) == 0 {
		return events.AssignmentRecord{}, errs.NewObjectNotFoundError("assignment", query.AssignmentID())
	}

	return rows[0].record(), nil
}
