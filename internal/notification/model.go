package notification

import "time"

// Notification is an in-app message materialized from the activity stream.
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Category  string    `gorm:"type:varchar(50)" json:"category"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Activity is the wire shape on the event-activity topic. RecipientIDs is
// set when the producer already resolved the audience, e.g. for deletions
// where the participant links no longer exist once the consumer runs.
type Activity struct {
	Action       string    `json:"action"`
	EventID      string    `json:"event_id"`
	EventTitle   string    `json:"event_title"`
	ActorID      string    `json:"actor_id"`
	RecipientIDs []string  `json:"recipient_ids,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
