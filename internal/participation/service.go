package participation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oguzkaan/campus-events-backend/internal/auditlog"
	"github.com/oguzkaan/campus-events-backend/internal/event"
)

var ErrNotOwner = errors.New("only the event creator can view the participant list")

const maxJoinAttempts = 3

// ActivityPublisher pushes participation activity onto the notification
// pipeline.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, action, eventID, eventTitle, actorID string)
}

type Service interface {
	Join(ctx context.Context, eventID, userID, ip string) error
	Leave(ctx context.Context, eventID, userID, ip string) error
	ListParticipants(ctx context.Context, eventID, requesterID string) ([]Participant, error)
}

type service struct {
	repo     Repository
	events   event.Repository
	audit    auditlog.Service
	activity ActivityPublisher
}

func NewService(repo Repository, events event.Repository, audit auditlog.Service, activity ActivityPublisher) Service {
	return &service{repo: repo, events: events, audit: audit, activity: activity}
}

// Join admits the user, retrying a bounded number of times when the
// transaction loses a serialization or deadlock race. Domain outcomes
// (full, already joined, not found) are returned as-is.
func (s *service) Join(ctx context.Context, eventID, userID, ip string) error {
	var err error
	for attempt := 0; attempt < maxJoinAttempts; attempt++ {
		err = s.repo.Join(ctx, eventID, userID)
		if err == nil || !isRetryableConflict(err) {
			break
		}
	}
	if err != nil {
		if isRetryableConflict(err) {
			return ErrTooMuchContention
		}
		return err
	}

	ev, lookupErr := s.events.FindByID(eventID)
	title := ""
	if lookupErr == nil {
		title = ev.Title
	}

	s.audit.LogAction(ctx, &userID, &eventID, "event_joined", nil, ip, "success")
	s.activity.PublishActivity(ctx, "participation.joined", eventID, title, userID)
	return nil
}

func (s *service) Leave(ctx context.Context, eventID, userID, ip string) error {
	if err := s.repo.Leave(ctx, eventID, userID); err != nil {
		return err
	}

	ev, lookupErr := s.events.FindByID(eventID)
	title := ""
	if lookupErr == nil {
		title = ev.Title
	}

	s.audit.LogAction(ctx, &userID, &eventID, "event_left", nil, ip, "success")
	s.activity.PublishActivity(ctx, "participation.left", eventID, title, userID)
	return nil
}

// ListParticipants returns the roster, oldest join first. Only the event
// creator may see it.
func (s *service) ListParticipants(ctx context.Context, eventID, requesterID string) ([]Participant, error) {
	ev, err := s.events.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if ev.CreatorID != requesterID {
		return nil, ErrNotOwner
	}

	participants, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if participants == nil {
		participants = []Participant{}
	}
	return participants, nil
}
