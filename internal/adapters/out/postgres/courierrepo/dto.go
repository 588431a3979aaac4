package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is the couriers row. The position columns are written only by the location
// repository's compare-and-set.
type CourierDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name               string     `gorm:"type:varchar(255);not null"`
	Phone              string     `gorm:"type:varchar(64);not null"`
	VehicleType        string     `gorm:"type:varchar(32);not null"`
	VehiclePlate       string     `gorm:"type:varchar(32)"`
	IsActive           bool       `gorm:"not null;default:true"`
	IsAvailable        bool       `gorm:"not null;default:false;index"`
	CourierStatus      string     `gorm:"type:varchar(32);not null"`
	ActiveAssignments  int        `gorm:"not null;default:0;check:chk_couriers_active_assignments,active_assignments >= 0"`
	CurrentLatitude    *float64   `gorm:"type:double precision"`
	CurrentLongitude   *float64   `gorm:"type:double precision"`
	LastLocationUpdate *time.Time `gorm:"type:timestamptz"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime:false;not null"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(c *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:                c.ID().Bytes(),
		Name:              c.Name(),
		Phone:             c.Phone(),
		VehicleType:       string(c.Vehicle().Type()),
		VehiclePlate:      c.Vehicle().Plate(),
		IsActive:          c.IsActive(),
		IsAvailable:       c.IsAvailable(),
		CourierStatus:     c.Status().String(),
		ActiveAssignments: c.ActiveAssignments(),
		UpdatedAt:         c.UpdatedAt(),
	}
	if p, ok := c.Position(); ok {
		lat, lng := p.Latitude(), p.Longitude()
		dto.CurrentLatitude, dto.CurrentLongitude = &lat, &lng
	}
	if last, ok := c.LastLocationUpdate(); ok {
		dto.LastLocationUpdate = &last
	}
	return dto
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vehicle, err := courier.NewVehicle(courier.VehicleType(dto.VehicleType), dto.VehiclePlate)
	if err != nil {
		return nil, err
	}

	status, err := courier.ParseStatus(dto.CourierStatus)
	if err != nil {
		return nil, err
	}

	var position *kernel.GeoPoint
	if dto.CurrentLatitude != nil && dto.CurrentLongitude != nil {
		p, posErr := kernel.NewGeoPoint(*dto.CurrentLatitude, *dto.CurrentLongitude)
		if posErr != nil {
			return nil, posErr
		}
		position = &p
	}

	return courier.RestoreCourier(courier.RestoreParams{
		ID:                 id,
		Name:               dto.Name,
		Phone:              dto.Phone,
		Vehicle:            vehicle,
		IsActive:           dto.IsActive,
		IsAvailable:        dto.IsAvailable,
		Status:             status,
		ActiveAssignments:  dto.ActiveAssignments,
		Position:           position,
		LastLocationUpdate: dto.LastLocationUpdate,
		UpdatedAt:          dto.UpdatedAt,
	})
}
