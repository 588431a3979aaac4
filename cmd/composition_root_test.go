package cmd

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T, cfg *Config) *CompositionRoot {
	t.Helper()
	root, err := NewCompositionRoot(cfg, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })
	return root
}

func TestCompositionRoot_Router(t *testing.T) {
	root := newTestRoot(t, NewConfig())

	e, err := root.CreateRouter()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCompositionRoot_LivePublisherIsHubWithoutRedis(t *testing.T) {
	root := newTestRoot(t, NewConfig())

	assert.Same(t, root.Hub(), root.LivePublisher())
}

func TestCompositionRoot_Jobs(t *testing.T) {
	t.Run("relay only by default", func(t *testing.T) {
		list, err := newTestRoot(t, NewConfig()).CreateJobs()

		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("auto dispatch and simulation", func(t *testing.T) {
		cfg := NewConfig()
		cfg.AutoDispatch.Enabled = true
		cfg.Simulation.Couriers = []string{kernel.NewUUID().String(), kernel.NewUUID().String()}
		cfg.Simulation.Latitude, cfg.Simulation.Longitude = 41.0082, 28.9784

		list, err := newTestRoot(t, cfg).CreateJobs()

		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "tracking fleet job", list[2].Name())
	})

	t.Run("bad simulated courier id", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Simulation.Couriers = []string{"courier-1"}
		cfg.Simulation.Latitude, cfg.Simulation.Longitude = 41.0082, 28.9784

		_, err := newTestRoot(t, cfg).CreateJobs()

		assert.Error(t, err)
	})

	t.Run("simulation without a start point", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Simulation.Couriers = []string{kernel.NewUUID().String()}

		_, err := newTestRoot(t, cfg).CreateJobs()

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
