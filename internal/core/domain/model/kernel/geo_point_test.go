package kernel_test

import (
	"math"
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr error
		wantMsg string
	}{
		{name: "istanbul", lat: 41.0082, lng: 28.9784},
		{name: "southern bound", lat: -90, lng: 10},
		{name: "antimeridian", lat: 10, lng: 180},
		{name: "zero latitude", lat: 0, lng: 28.97, wantErr: errs.ErrValueIsInvalid, wantMsg: "coordinate is zero"},
		{name: "zero longitude", lat: 41.0, lng: 0, wantErr: errs.ErrValueIsInvalid, wantMsg: "coordinate is zero"},
		{name: "nan", lat: math.NaN(), lng: 28.97, wantErr: errs.ErrValueIsInvalid, wantMsg: "not a finite number"},
		{name: "inf", lat: 41.0, lng: math.Inf(1), wantErr: errs.ErrValueIsInvalid, wantMsg: "not a finite number"},
		{name: "latitude too large", lat: 90.5, lng: 28.97, wantErr: errs.ErrValueIsOutOfRange, wantMsg: "min value is"},
		{name: "longitude too small", lat: 41.0, lng: -180.1, wantErr: errs.ErrValueIsOutOfRange, wantMsg: "min value is"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := kernel.NewGeoPoint(tt.lat, tt.lng)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.wantMsg)
				assert.Error(t, p.Validate())
				return
			}
			require.NoError(t, err)
			assert.NoError(t, p.Validate())
			assert.InDelta(t, tt.lat, p.Latitude(), 1e-9)
			assert.InDelta(t, tt.lng, p.Longitude(), 1e-9)
		})
	}
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	taksim, err := kernel.NewGeoPoint(41.0370, 28.9850)
	require.NoError(t, err)
	kadikoy, err := kernel.NewGeoPoint(40.9909, 29.0303)
	require.NoError(t, err)

	d, err := taksim.DistanceKm(kadikoy)
	require.NoError(t, err)
	assert.InDelta(t, 6.3, d, 0.3)

	self, err := taksim.DistanceKm(taksim)
	require.NoError(t, err)
	assert.InDelta(t, 0, self, 1e-9)

	_, err = taksim.DistanceKm(kernel.GeoPoint{})
	assert.ErrorIs(t, err, kernel.ErrGeoPointIsNotConstructed)
}

func TestGeoPoint_IsEqual(t *testing.T) {
	a, _ := kernel.NewGeoPoint(41.0, 29.0)
	b, _ := kernel.NewGeoPoint(41.0, 29.0)
	c, _ := kernel.NewGeoPoint(41.1, 29.0)

	eq, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, eq)
}
