package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oguzkaan/campus-events-backend/utils"
)

// Publisher serializes activity onto the Kafka topic. It satisfies the
// ActivityPublisher interfaces of the event and participation packages.
type Publisher struct{}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) PublishActivity(ctx context.Context, action, eventID, eventTitle, actorID string) {
	p.PublishActivityTo(ctx, action, eventID, eventTitle, actorID, nil)
}

// PublishActivityTo embeds an explicit recipient list in the activity
// record, for actions whose audience is gone from the store by the time
// the consumer runs.
func (p *Publisher) PublishActivityTo(ctx context.Context, action, eventID, eventTitle, actorID string, recipientIDs []string) {
	payload, err := json.Marshal(Activity{
		Action:       action,
		EventID:      eventID,
		EventTitle:   eventTitle,
		ActorID:      actorID,
		RecipientIDs: recipientIDs,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return
	}
	utils.PublishActivity(ctx, eventID, payload)
}
