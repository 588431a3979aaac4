package locationrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// SampleDTO is the courier_location_samples row.
type SampleDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID  uuid.UUID `gorm:"type:uuid;not null;index:idx_location_samples_courier_time,priority:1"`
	Latitude   float64   `gorm:"type:double precision;not null"`
	Longitude  float64   `gorm:"type:double precision;not null"`
	Accuracy   float64   `gorm:"type:double precision;not null"`
	RecordedAt time.Time `gorm:"type:timestamptz;not null;index:idx_location_samples_courier_time,priority:2,sort:desc"`
}

func (SampleDTO) TableName() string {
	return "courier_location_samples"
}

// gateRow is the part of the couriers row the gate looks at.
type gateRow struct {
	IsAvailable        bool
	LastLocationUpdate *time.Time
}

func fromDomain(s tracking.Sample) SampleDTO {
	return SampleDTO{
		ID:         s.ID().Bytes(),
		CourierID:  s.CourierID().Bytes(),
		Latitude:   s.Position().Latitude(),
		Longitude:  s.Position().Longitude(),
		Accuracy:   s.Accuracy(),
		RecordedAt: s.RecordedAt(),
	}
}

func toDomain(dto SampleDTO) (tracking.Sample, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return tracking.Sample{}, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return tracking.Sample{}, err
	}
	return tracking.NewSample(id, courierID, dto.Latitude, dto.Longitude, dto.Accuracy, dto.RecordedAt)
}
