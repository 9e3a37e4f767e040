package notification

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id uint, userID string) error

	// Lookups against the events tables, used when fanning out activity.
	ParticipantIDs(ctx context.Context, eventID string) ([]string, error)
	EventCreatorID(ctx context.Context, eventID string) (string, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListByUser(ctx context.Context, userID string, limit int) ([]Notification, error) {
	var notifications []Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *repository) MarkRead(ctx context.Context, id uint, userID string) error {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *repository) ParticipantIDs(ctx context.Context, eventID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("event_participants").
		Where("event_id = ?", eventID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *repository) EventCreatorID(ctx context.Context, eventID string) (string, error) {
	var creatorID string
	err := r.db.WithContext(ctx).
		Table("events").
		Select("creator_id").
		Where("id = ?", eventID).
		Scan(&creatorID).Error
	if err != nil {
		return "", err
	}
	if creatorID == "" {
		return "", gorm.ErrRecordNotFound
	}
	return creatorID, nil
}
