package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const maxRecentLocations = 500

var ErrGetRecentLocationsQueryIsNotConstructed = errors.New(
	"GetRecentLocationsQuery must be created via NewGetRecentLocationsQuery constructor",
)

// GetRecentLocationsQuery returns the trail of a courier's accepted positions.
type GetRecentLocationsQuery struct {
	courierID kernel.UUID
	limit     int

	guard guard.ConstructorGuard
}

func NewGetRecentLocationsQuery(courierID kernel.UUID, limit int) (GetRecentLocationsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetRecentLocationsQuery{}, err
	}
	if limit <= 0 || limit > maxRecentLocations {
		return GetRecentLocationsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxRecentLocations)
	}
	return GetRecentLocationsQuery{courierID: courierID, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRecentLocationsQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentLocationsQueryIsNotConstructed)
}

func (q GetRecentLocationsQuery) CourierID() kernel.UUID { return q.courierID }
func (q GetRecentLocationsQuery) Limit() int             { return q.limit }

// GetRecentLocationsQueryHandler reads through the location repository; samples have no
// second read model.
type GetRecentLocationsQueryHandler struct {
	locations ports.LocationRepository
}

func NewGetRecentLocationsQueryHandler(locations ports.LocationRepository) GetRecentLocationsQueryHandler {
	return GetRecentLocationsQueryHandler{locations: locations}
}

func (h GetRecentLocationsQueryHandler) Handle(
	ctx context.Context,
	query GetRecentLocationsQuery,
) ([]events.LocationSampleRecord, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	samples, err := h.locations.Recent(ctx, query.CourierID(), query.Limit())
	if err != nil {
		return nil, err
	}

	out := make([]events.LocationSampleRecord, 0, len(samples))
	for _, s := range samples {
		out = append(out, events.NewLocationSampleRecord(s))
	}
	return out, nil
}
