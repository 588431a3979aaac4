package tracking

import (
	"errors"
	"fmt"
	"math"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSampleIsNotConstructed = errors.New("Sample must be created via NewSample constructor")

// Sample is one accepted courier position. Samples are append-only.
type Sample struct {
	id         kernel.UUID
	courierID  kernel.UUID
	position   kernel.GeoPoint
	accuracy   float64
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewSample validates a raw device fix. Accuracy is the reported radius in metres.
func NewSample(id, courierID kernel.UUID, latitude, longitude, accuracy float64, recordedAt time.Time) (Sample, error) {
	position, posErr := kernel.NewGeoPoint(latitude, longitude)

	var accErr error
	if math.IsNaN(accuracy) || math.IsInf(accuracy, 0) || accuracy < 0 {
		accErr = errs.NewValueIsInvalidErrorWithCause("accuracy",
			fmt.Errorf("%v is not a non-negative number of metres", accuracy))
	}

	if err := errors.Join(id.Validate(), courierID.Validate(), posErr, accErr); err != nil {
		return Sample{}, err
	}

	return Sample{
		id:         id,
		courierID:  courierID,
		position:   position,
		accuracy:   accuracy,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (s Sample) Validate() error {
	return s.guard.Validate(ErrSampleIsNotConstructed)
}

func (s Sample) ID() kernel.UUID           { return s.id }
func (s Sample) CourierID() kernel.UUID    { return s.courierID }
func (s Sample) Position() kernel.GeoPoint { return s.position }
func (s Sample) Accuracy() float64         { return s.accuracy }
func (s Sample) RecordedAt() time.Time     { return s.recordedAt }
