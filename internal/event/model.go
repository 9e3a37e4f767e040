package event

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oguzkaan/campus-events-backend/internal/category"
)

// Event lifecycle statuses. Transitions are free-form field updates; all
// status writes go through Service.setStatus so a state machine can be
// added later in one place.
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const DefaultMaxParticipants = 100

type Event struct {
	ID                  string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title               string    `gorm:"type:varchar(200);not null" json:"title"`
	Description         string    `gorm:"type:text" json:"description"`
	EventDate           time.Time `gorm:"not null;index" json:"event_date"`
	Location            string    `gorm:"type:varchar(255)" json:"location"`
	ImageURL            string    `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	CategoryID          *string   `gorm:"type:varchar(36);index" json:"category_id,omitempty"` // legacy single reference
	Status              string    `gorm:"type:varchar(20);default:upcoming" json:"status"`
	CreatorID           string    `gorm:"type:varchar(36);not null;index" json:"creator_id"`
	OrganizerName       string    `gorm:"type:varchar(100)" json:"organizer_name"`
	MaxParticipants     int       `gorm:"not null;default:100" json:"max_participants"`
	CurrentParticipants int       `gorm:"not null;default:0" json:"current_participants"`
	IsFeatured          bool      `gorm:"default:false" json:"is_featured"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	PosterURL           string    `gorm:"type:varchar(255)" json:"poster_url,omitempty"`

	// Tag set, independent of the legacy CategoryID reference.
	Categories []category.Category `gorm:"many2many:event_categories" json:"categories,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// ============================
// Requests: external wire names (dateTime, categoryId, imageUrl,
// maxParticipants, isFeatured) are translated to internal columns here,
// at the boundary.

type CreateEventRequest struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	DateTime        time.Time `json:"dateTime" binding:"required"`
	Location        string    `json:"location"`
	CategoryID      *string   `json:"categoryId"`
	ImageURL        string    `json:"imageUrl"`
	MaxParticipants *int      `json:"maxParticipants"`
}

// UpdateEventRequest carries a sparse patch: only non-nil fields are applied.
type UpdateEventRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	DateTime        *time.Time `json:"dateTime"`
	Location        *string    `json:"location"`
	CategoryID      *string    `json:"categoryId"`
	ImageURL        *string    `json:"imageUrl"`
	MaxParticipants *int       `json:"maxParticipants"`
	IsFeatured      *bool      `json:"isFeatured"`
	Status          *string    `json:"status"`
	OrganizerName   *string    `json:"organizerName"`
}

type AssignCategoriesRequest struct {
	CategoryIDs []string `json:"categoryIds" binding:"required"`
}

// ============================
// Discovery filters

type ListFilter struct {
	Page       int
	Limit      int
	CategoryID string
	Search     string
	StartDate  *time.Time
	EndDate    *time.Time
}

type SearchFilter struct {
	Query       string
	CategoryIDs []string
	StartDate   *time.Time
	EndDate     *time.Time
}
