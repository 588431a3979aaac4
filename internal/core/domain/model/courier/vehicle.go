package courier

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// VehicleType is how the courier moves.
type VehicleType string

const (
	VehicleBicycle    VehicleType = "bicycle"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleCar        VehicleType = "car"
	VehicleOnFoot     VehicleType = "on_foot"
)

// Vehicle describes the courier's vehicle. Plate is empty for bicycles and couriers on foot.
type Vehicle struct {
	kind  VehicleType
	plate string
}

// NewVehicle validates the type and requires a plate for motorised vehicles.
func NewVehicle(kind VehicleType, plate string) (Vehicle, error) {
	plate = strings.TrimSpace(plate)

	switch kind {
	case VehicleBicycle, VehicleOnFoot:
		return Vehicle{kind: kind, plate: plate}, nil
	case VehicleMotorcycle, VehicleCar:
		if plate == "" {
			return Vehicle{}, errs.NewValueIsRequiredErrorWithCause(
				"vehicle plate", fmt.Errorf("%s requires a plate", kind))
		}
		return Vehicle{kind: kind, plate: plate}, nil
	default:
		return Vehicle{}, errs.NewValueIsInvalidErrorWithCause(
			"vehicle type", fmt.Errorf("%q is not a known vehicle type", kind))
	}
}

func (v Vehicle) Type() VehicleType { return v.kind }
func (v Vehicle) Plate() string     { return v.plate }
