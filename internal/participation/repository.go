package participation

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oguzkaan/campus-events-backend/internal/event"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventFull         = errors.New("event is full")
	ErrAlreadyJoined     = errors.New("already joined this event")
	ErrNotJoined         = errors.New("not a participant of this event")
	ErrTooMuchContention = errors.New("could not complete join, please retry")
)

type Repository interface {
	Join(ctx context.Context, eventID, userID string) error
	Leave(ctx context.Context, eventID, userID string) error
	ListByEvent(ctx context.Context, eventID string) ([]Participant, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Join admits a user inside a single transaction. The event row is locked
// FOR UPDATE before the capacity check, the membership insert relies on the
// unique index to reject double joins, and the counter increment is guarded
// so it can never push the count past the capacity.
func (r *repository) Join(ctx context.Context, eventID, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev event.Event
		if err := lockEvent(tx, eventID, &ev); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if ev.CurrentParticipants >= ev.MaxParticipants {
			return ErrEventFull
		}

		p := &Participation{EventID: eventID, UserID: userID}
		if err := tx.Create(p).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyJoined
			}
			return err
		}

		res := tx.Model(&event.Event{}).
			Where("id = ? AND current_participants < max_participants", eventID).
			UpdateColumn("current_participants", gorm.Expr("current_participants + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrEventFull
		}
		return nil
	})
}

// Leave is idempotent on the counter side: the decrement never goes below
// zero even if the count drifted.
func (r *repository) Leave(ctx context.Context, eventID, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev event.Event
		if err := lockEvent(tx, eventID, &ev); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		res := tx.Where("event_id = ? AND user_id = ?", eventID, userID).
			Delete(&Participation{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotJoined
		}

		if ev.CurrentParticipants > 0 {
			if err := tx.Model(&event.Event{}).
				Where("id = ? AND current_participants > 0", eventID).
				UpdateColumn("current_participants", gorm.Expr("current_participants - 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) ListByEvent(ctx context.Context, eventID string) ([]Participant, error) {
	var participants []Participant
	err := r.db.WithContext(ctx).
		Table("event_participants ep").
		Select("ep.user_id, u.full_name, u.email, ep.joined_at").
		Joins("JOIN users u ON u.id = ep.user_id").
		Where("ep.event_id = ?", eventID).
		Order("ep.joined_at ASC").
		Scan(&participants).Error
	return participants, err
}

// lockEvent reads the event row under FOR UPDATE on Postgres. SQLite has no
// row locks; its single-writer transaction lock already serializes access.
func lockEvent(tx *gorm.DB, eventID string, ev *event.Event) error {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q.First(ev, "id = ?", eventID).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite wording, for the in-memory test driver
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key")
}

// isRetryableConflict reports serialization and deadlock failures that are
// safe to retry with a fresh transaction.
func isRetryableConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
