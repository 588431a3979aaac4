// Package locationrepo persists courier positions behind the location gate.
package locationrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// casPosition moves the courier only while it is available and its last accepted position
// is old enough. Concurrent writers race on this single statement; at most one wins per
// debounce window.
const casPosition = `
UPDATE couriers
   SET current_latitude = ?, current_longitude = ?, last_location_update = ?
 WHERE id = ?
   AND is_available
   AND (last_location_update IS NULL OR last_location_update <= ?)`

// GormLocationRepository implements ports.LocationRepository.
type GormLocationRepository struct {
	db *gorm.DB
}

func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

func (r *GormLocationRepository) Record(
	ctx context.Context,
	sample tracking.Sample,
	gate tracking.Gate,
	now time.Time,
) (tracking.Outcome, error) {
	if err := sample.Validate(); err != nil {
		return tracking.Outcome{}, err
	}

	db := r.db.WithContext(ctx)
	position := sample.Position()

	result := db.Exec(casPosition,
		position.Latitude(), position.Longitude(), now,
		sample.CourierID().Bytes(), gate.Cutoff(now))
	if result.Error != nil {
		return tracking.Outcome{}, pgerr.Translate("record location", result.Error)
	}

	if result.RowsAffected == 0 {
		return r.explainRefusal(ctx, sample.CourierID(), gate, now)
	}

	dto := fromDomain(sample)
	if err := db.Create(&dto).Error; err != nil {
		return tracking.Outcome{}, pgerr.Translate("append location sample", err)
	}
	return tracking.Ack(), nil
}

func (r *GormLocationRepository) explainRefusal(
	ctx context.Context,
	courierID kernel.UUID,
	gate tracking.Gate,
	now time.Time,
) (tracking.Outcome, error) {
	var row gateRow
	err := r.db.WithContext(ctx).
		Table("couriers").
		Select("is_available", "last_location_update").
		Where("id = ?", courierID.Bytes()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tracking.Outcome{}, errs.NewObjectNotFoundError("courier", courierID.String())
	}
	if err != nil {
		return tracking.Outcome{}, pgerr.Translate("read location gate", err)
	}

	outcome := gate.Evaluate(row.IsAvailable, row.LastLocationUpdate, now)
	if outcome.Recorded {
		// The row moved between the update and this read; a concurrent sample won.
		return tracking.Skipped(tracking.ReasonTooSoon), nil
	}
	return outcome, nil
}

func (r *GormLocationRepository) Recent(ctx context.Context, courierID kernel.UUID, limit int) ([]tracking.Sample, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	var dtos []SampleDTO
	if err := r.db.WithContext(ctx).
		Where("courier_id = ?", courierID.Bytes()).
		Order("recorded_at DESC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Translate("list location samples", err)
	}

	samples := make([]tracking.Sample, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, nil
}
