// Package outboxrepo stores committed domain events and relays them to publishers.
package outboxrepo

import (
	"context"
	"time"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/events"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotifyChannel is the LISTEN/NOTIFY channel that wakes relays after a commit.
const NotifyChannel = "dispatch_outbox"

// Writer appends envelopes inside the caller's transaction.
type Writer struct {
	db *gorm.DB
}

func NewWriter(tx *gorm.DB) *Writer {
	return &Writer{db: tx}
}

// Append inserts the envelopes and queues a notification that Postgres delivers on commit.
func (w *Writer) Append(ctx context.Context, envelopes []events.Envelope) error {
	if len(envelopes) == 0 {
		return nil
	}

	rows := make([]OutboxEventDTO, 0, len(envelopes))
	for _, e := range envelopes {
		dto, err := fromEnvelope(e)
		if err != nil {
			return err
		}
		rows = append(rows, dto)
	}

	db := w.db.WithContext(ctx)
	if err := db.Create(&rows).Error; err != nil {
		return pgerr.Translate("append outbox events", err)
	}
	if err := db.Exec("SELECT pg_notify(?, '')", NotifyChannel).Error; err != nil {
		return pgerr.Translate("notify outbox", err)
	}
	return nil
}

// Relay drains undelivered rows. It implements ports.OutboxRelay.
type Relay struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRelay(db *gorm.DB, now func() time.Time) *Relay {
	return &Relay{db: db, now: now}
}

// Drain locks up to limit undelivered rows with SKIP LOCKED, so several relays can run
// side by side, publishes them in commit order and marks the published ones.
// Publishing stops at the first failure so later rows never overtake an earlier one.
// A row whose payload cannot be decoded is marked too: retrying it would never succeed.
func (r *Relay) Drain(
	ctx context.Context,
	limit int,
	publish func(context.Context, events.Envelope) error,
) (int, error) {
	published := 0
	var publishErr error

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []OutboxEventDTO
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("dispatched_at IS NULL").
			Order("seq").
			Limit(limit).
			Find(&rows).Error; err != nil {
			return err
		}

		done := make([]int64, 0, len(rows))
		for _, row := range rows {
			e, err := toEnvelope(row)
			if err == nil {
				if err = publish(ctx, e); err != nil {
					publishErr = err
					break
				}
				published++
			}
			done = append(done, row.Seq)
		}

		if len(done) == 0 {
			return nil
		}
		return tx.Model(&OutboxEventDTO{}).
			Where("seq IN ?", done).
			Update("dispatched_at", r.now()).Error
	})
	if err != nil {
		return published, pgerr.Translate("drain outbox", err)
	}
	return published, publishErr
}

// Backlog returns the number of undelivered rows and the age of the oldest one.
func (r *Relay) Backlog(ctx context.Context) (int64, time.Duration, error) {
	var stats struct {
		Count  int64
		Oldest *time.Time
	}
	if err := r.db.WithContext(ctx).
		Model(&OutboxEventDTO{}).
		Select("count(*) AS count, min(created_at) AS oldest").
		Where("dispatched_at IS NULL").
		Scan(&stats).Error; err != nil {
		return 0, 0, pgerr.Translate("outbox backlog", err)
	}

	if stats.Oldest == nil {
		return stats.Count, 0, nil
	}
	return stats.Count, r.now().Sub(*stats.Oldest), nil
}

// Purge deletes rows dispatched before cutoff.
func (r *Relay) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("dispatched_at IS NOT NULL AND dispatched_at < ?", cutoff).
		Delete(&OutboxEventDTO{})
	if result.Error != nil {
		return 0, pgerr.Translate("purge outbox", result.Error)
	}
	return result.RowsAffected, nil
}
