package participation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Participation links a user to an event. The composite unique index is the
// database-level backstop against double joins.
type Participation struct {
	ID       string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	EventID  string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_event_participant;index" json:"event_id"`
	UserID   string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_event_participant" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (Participation) TableName() string {
	return "event_participants"
}

func (p *Participation) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Participant is a roster row: participation joined with the user record.
type Participant struct {
	UserID   string    `json:"user_id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
}
