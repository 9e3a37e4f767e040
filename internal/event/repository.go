package event

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/oguzkaan/campus-events-backend/internal/category"
)

type Repository interface {
	Create(e *Event) error
	FindByID(id string) (*Event, error)
	FindByIDWithCategories(id string) (*Event, error)
	Save(e *Event) error
	Delete(id string) error
	ReplaceCategories(e *Event, cats []category.Category) error
	CategoriesByIDs(ids []string) ([]category.Category, error)
	ParticipantIDs(eventID string) ([]string, error)

	List(f ListFilter) ([]Event, int64, error)
	Search(f SearchFilter) ([]Event, error)
	Featured() ([]Event, error)
	Upcoming(limit int) ([]Event, error)
	ByCreator(userID string) ([]Event, error)
	ByParticipant(userID string) ([]Event, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(e *Event) error {
	return r.db.Create(e).Error
}

func (r *repository) FindByID(id string) (*Event, error) {
	var e Event
	err := r.db.First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByIDWithCategories(id string) (*Event, error) {
	var e Event
	err := r.db.Preload("Categories").First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Save(e *Event) error {
	return r.db.Save(e).Error
}

// Delete removes the event together with its participations and category
// links in one transaction.
func (r *repository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM event_participants WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM event_categories WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Event{}, "id = ?", id).Error
	})
}

func (r *repository) ReplaceCategories(e *Event, cats []category.Category) error {
	return r.db.Model(e).Association("Categories").Replace(cats)
}

// CategoriesByIDs returns the categories that exist; unknown ids are
// dropped silently.
func (r *repository) CategoriesByIDs(ids []string) ([]category.Category, error) {
	if len(ids) == 0 {
		return []category.Category{}, nil
	}
	var cats []category.Category
	err := r.db.Where("id IN ?", ids).Find(&cats).Error
	return cats, err
}

func (r *repository) ParticipantIDs(eventID string) ([]string, error) {
	var ids []string
	err := r.db.
		Table("event_participants").
		Where("event_id = ?", eventID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *repository) List(f ListFilter) ([]Event, int64, error) {
	query := r.db.Model(&Event{})

	if f.CategoryID != "" {
		query = query.Where("category_id = ?", f.CategoryID)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if f.StartDate != nil {
		query = query.Where("event_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		query = query.Where("event_date <= ?", *f.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []Event
	err := query.
		Preload("Categories").
		Order("event_date ASC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&events).Error
	return events, total, err
}

// Search matches against title, description and location, optionally
// narrowed by tags and a date window. The tag join can produce the same
// event once per matching tag, hence the DISTINCT.
func (r *repository) Search(f SearchFilter) ([]Event, error) {
	query := r.db.Model(&Event{}).Distinct("events.*")

	if f.Query != "" {
		pattern := "%" + strings.ToLower(f.Query) + "%"
		query = query.Where(
			"LOWER(events.title) LIKE ? OR LOWER(events.description) LIKE ? OR LOWER(events.location) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if len(f.CategoryIDs) > 0 {
		query = query.
			Joins("JOIN event_categories ec ON ec.event_id = events.id").
			Where("ec.category_id IN ?", f.CategoryIDs)
	}
	if f.StartDate != nil {
		query = query.Where("events.event_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		query = query.Where("events.event_date <= ?", *f.EndDate)
	}

	var events []Event
	err := query.Order("events.event_date ASC").Find(&events).Error
	return events, err
}

func (r *repository) Featured() ([]Event, error) {
	var events []Event
	err := r.db.
		Preload("Categories").
		Where("is_featured = ?", true).
		Order("event_date ASC").
		Find(&events).Error
	return events, err
}

// Upcoming is purely schedule-driven: any event not yet started appears,
// whatever its status.
func (r *repository) Upcoming(limit int) ([]Event, error) {
	var events []Event
	err := r.db.
		Preload("Categories").
		Where("event_date >= ?", time.Now()).
		Order("event_date ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *repository) ByCreator(userID string) ([]Event, error) {
	var events []Event
	err := r.db.
		Preload("Categories").
		Where("creator_id = ?", userID).
		Order("event_date ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) ByParticipant(userID string) ([]Event, error) {
	var events []Event
	err := r.db.
		Preload("Categories").
		Joins("JOIN event_participants ep ON ep.event_id = events.id").
		Where("ep.user_id = ?", userID).
		Order("events.event_date ASC").
		Find(&events).Error
	return events, err
}
