package tracking

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"

	"dispatch/internal/core/domain/model/kernel"
)

const kmPerDegree = 111.32

// simulatedAccuracy is the uncertainty radius, in meters, reported per request mode.
var simulatedAccuracy = map[Accuracy]float64{
	AccuracyHigh:     5,
	AccuracyBalanced: 25,
	AccuracyLow:      120,
}

// RandomWalk is a PositionSource that drifts up to stepKm per request from a start
// point. It stands in for device positioning in the fleet simulator and the tracker CLI.
type RandomWalk struct {
	mu     sync.Mutex
	lat    float64
	lng    float64
	stepKm float64
	rnd    *rand.Rand
}

func NewRandomWalk(start kernel.GeoPoint, stepKm float64, seed uint64) *RandomWalk {
	return &RandomWalk{
		lat:    start.Latitude(),
		lng:    start.Longitude(),
		stepKm: stepKm,
		rnd:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (w *RandomWalk) CurrentPosition(ctx context.Context, accuracy Accuracy) (Fix, error) {
	if err := ctx.Err(); err != nil {
		return Fix{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	dLat := w.stepKm / kmPerDegree * (w.rnd.Float64()*2 - 1)
	dLng := w.stepKm / (kmPerDegree * math.Cos(w.lat*math.Pi/180)) * (w.rnd.Float64()*2 - 1)
	w.lat = math.Max(-89.9, math.Min(89.9, w.lat+dLat))
	w.lng += dLng
	if w.lng > 180 {
		w.lng -= 360
	} else if w.lng < -180 {
		w.lng += 360
	}

	return Fix{Latitude: w.lat, Longitude: w.lng, Accuracy: simulatedAccuracy[accuracy]}, nil
}
