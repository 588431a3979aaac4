package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_MustBeConstructed(t *testing.T) {
	assert.ErrorIs(t, queries.GetAllCouriersQuery{}.Validate(), queries.ErrGetAllCouriersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListRestaurantOrdersQuery{}.Validate(), queries.ErrListRestaurantOrdersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListCourierAssignmentsQuery{}.Validate(),
		queries.ErrListCourierAssignmentsQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetAssignmentQuery{}.Validate(), queries.ErrGetAssignmentQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetRecentLocationsQuery{}.Validate(), queries.ErrGetRecentLocationsQueryIsNotConstructed)
}

func TestQueries_RejectZeroIDs(t *testing.T) {
	_, err := queries.NewListRestaurantOrdersQuery(kernel.UUID{}, false)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = queries.NewListCourierAssignmentsQuery(kernel.UUID{}, true)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = queries.NewGetAssignmentQuery(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewGetRecentLocationsQuery_LimitRange(t *testing.T) {
	for _, limit := range []int{0, -1, 501} {
		_, err := queries.NewGetRecentLocationsQuery(kernel.NewUUID(), limit)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, "limit %d", limit)
	}

	q, err := queries.NewGetRecentLocationsQuery(kernel.NewUUID(), 500)
	require.NoError(t, err)
	assert.Equal(t, 500, q.Limit())
}
