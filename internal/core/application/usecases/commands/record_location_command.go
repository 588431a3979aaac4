package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRecordLocationCommandIsNotConstructed = errors.New(
	"RecordLocationCommand must be created via NewRecordLocationCommand constructor",
)

// RecordLocationCommand carries one position fix of a courier. Coordinates are not
// validated here: a bad fix is a skipped write, not a failed request.
type RecordLocationCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	latitude  float64
	longitude float64
	accuracy  float64

	guard guard.ConstructorGuard
}

func NewRecordLocationCommand(courierID kernel.UUID, latitude, longitude, accuracy float64) (RecordLocationCommand, error) {
	if err := courierID.Validate(); err != nil {
		return RecordLocationCommand{}, err
	}

	return RecordLocationCommand{
		courierID: courierID,
		latitude:  latitude,
		longitude: longitude,
		accuracy:  accuracy,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RecordLocationCommand) Validate() error {
	return c.guard.Validate(ErrRecordLocationCommandIsNotConstructed)
}

func (c RecordLocationCommand) CourierID() kernel.UUID { return c.courierID }
func (c RecordLocationCommand) Latitude() float64      { return c.latitude }
func (c RecordLocationCommand) Longitude() float64     { return c.longitude }
func (c RecordLocationCommand) Accuracy() float64      { return c.accuracy }
