package notification

import (
	"context"
	"fmt"
)

const defaultListLimit = 50

type Service interface {
	ListMine(ctx context.Context, userID string) ([]Notification, error)
	MarkRead(ctx context.Context, id uint, userID string) error
	HandleActivity(ctx context.Context, a Activity) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListMine(ctx context.Context, userID string) ([]Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, defaultListLimit)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []Notification{}
	}
	return notifications, nil
}

func (s *service) MarkRead(ctx context.Context, id uint, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}

// HandleActivity materializes one activity record into in-app
// notifications. Participation activity goes to the event creator; event
// changes go to everyone who joined. The actor never notifies themselves.
func (s *service) HandleActivity(ctx context.Context, a Activity) error {
	switch a.Action {
	case "participation.joined", "participation.left":
		creatorID, err := s.repo.EventCreatorID(ctx, a.EventID)
		if err != nil || creatorID == a.ActorID {
			return err
		}
		verb := "joined"
		if a.Action == "participation.left" {
			verb = "left"
		}
		return s.repo.Create(ctx, &Notification{
			UserID:   creatorID,
			Title:    "Participant update",
			Message:  fmt.Sprintf("Someone %s your event %q", verb, a.EventTitle),
			Category: "participation",
		})

	case "event.updated", "event.deleted":
		ids := a.RecipientIDs
		if len(ids) == 0 {
			var err error
			ids, err = s.repo.ParticipantIDs(ctx, a.EventID)
			if err != nil {
				return err
			}
		}
		verb := "updated"
		if a.Action == "event.deleted" {
			verb = "cancelled"
		}
		for _, id := range ids {
			if id == a.ActorID {
				continue
			}
			if err := s.repo.Create(ctx, &Notification{
				UserID:   id,
				Title:    "Event " + verb,
				Message:  fmt.Sprintf("The event %q has been %s", a.EventTitle, verb),
				Category: "event",
			}); err != nil {
				return err
			}
		}
		return nil
	}

	// event.created and unknown actions produce no in-app notification.
	return nil
}
