package event

import (
	"context"
	"errors"
	"mime/multipart"

	"gorm.io/gorm"

	"github.com/oguzkaan/campus-events-backend/internal/auditlog"
	"github.com/oguzkaan/campus-events-backend/utils"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrNotOwner        = errors.New("only the event creator can modify this event")
	ErrInvalidStatus   = errors.New("invalid event status")
	ErrInvalidCapacity = errors.New("maxParticipants must be a positive integer")
	ErrCapacityTooLow  = errors.New("maxParticipants cannot be lower than the current participant count")
)

// Cache keys touched by event mutations.
const (
	cacheKeyFeatured = "events:featured"
	cacheKeyUpcoming = "events:upcoming"
)

// ActivityPublisher pushes event activity onto the notification pipeline.
// PublishActivityTo carries an explicit recipient list for actions whose
// audience can no longer be derived from the store.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, action, eventID, eventTitle, actorID string)
	PublishActivityTo(ctx context.Context, action, eventID, eventTitle, actorID string, recipientIDs []string)
}

// PosterStore persists an uploaded poster and returns its public URL.
type PosterStore interface {
	StorePoster(file *multipart.FileHeader) (string, error)
}

type Service interface {
	Create(ctx context.Context, req *CreateEventRequest, creatorID, organizerName, ip string) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, id, requesterID string, req *UpdateEventRequest, ip string) (*Event, error)
	Delete(ctx context.Context, id, requesterID, ip string) error
	AssignCategories(ctx context.Context, id, requesterID string, categoryIDs []string) (*Event, error)
	AttachPoster(ctx context.Context, id, requesterID string, file *multipart.FileHeader) (*Event, error)
}

type service struct {
	repo     Repository
	audit    auditlog.Service
	posters  PosterStore
	activity ActivityPublisher
}

func NewService(repo Repository, audit auditlog.Service, posters PosterStore, activity ActivityPublisher) Service {
	return &service{repo: repo, audit: audit, posters: posters, activity: activity}
}

func (s *service) Create(ctx context.Context, req *CreateEventRequest, creatorID, organizerName, ip string) (*Event, error) {
	maxParticipants := DefaultMaxParticipants
	if req.MaxParticipants != nil {
		if *req.MaxParticipants <= 0 {
			return nil, ErrInvalidCapacity
		}
		maxParticipants = *req.MaxParticipants
	}

	e := &Event{
		Title:               req.Title,
		Description:         req.Description,
		EventDate:           req.DateTime,
		Location:            req.Location,
		ImageURL:            req.ImageURL,
		CategoryID:          req.CategoryID,
		Status:              StatusUpcoming,
		CreatorID:           creatorID,
		OrganizerName:       organizerName,
		MaxParticipants:     maxParticipants,
		CurrentParticipants: 0,
		IsFeatured:          false,
	}
	if err := s.repo.Create(e); err != nil {
		return nil, err
	}

	s.audit.LogAction(ctx, &creatorID, &e.ID, "event_created", map[string]interface{}{
		"title": e.Title,
	}, ip, "success")
	s.activity.PublishActivity(ctx, "event.created", e.ID, e.Title, creatorID)
	utils.CacheInvalidate(ctx, cacheKeyFeatured, cacheKeyUpcoming)

	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Event, error) {
	e, err := s.repo.FindByIDWithCategories(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}

// Update applies a sparse patch: only fields present in the request change.
func (s *service) Update(ctx context.Context, id, requesterID string, req *UpdateEventRequest, ip string) (*Event, error) {
	e, err := s.ownedEvent(id, requesterID)
	if err != nil {
		return nil, err
	}

	changed := map[string]interface{}{}

	if req.Title != nil {
		e.Title = *req.Title
		changed["title"] = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
		changed["description"] = true
	}
	if req.DateTime != nil {
		e.EventDate = *req.DateTime
		changed["event_date"] = req.DateTime
	}
	if req.Location != nil {
		e.Location = *req.Location
		changed["location"] = *req.Location
	}
	if req.CategoryID != nil {
		e.CategoryID = req.CategoryID
		changed["category_id"] = *req.CategoryID
	}
	if req.ImageURL != nil {
		e.ImageURL = *req.ImageURL
		changed["image_url"] = *req.ImageURL
	}
	if req.OrganizerName != nil {
		e.OrganizerName = *req.OrganizerName
		changed["organizer_name"] = *req.OrganizerName
	}
	if req.MaxParticipants != nil {
		if *req.MaxParticipants <= 0 {
			return nil, ErrInvalidCapacity
		}
		if *req.MaxParticipants < e.CurrentParticipants {
			return nil, ErrCapacityTooLow
		}
		e.MaxParticipants = *req.MaxParticipants
		changed["max_participants"] = *req.MaxParticipants
	}
	if req.IsFeatured != nil {
		e.IsFeatured = *req.IsFeatured
		changed["is_featured"] = *req.IsFeatured
	}
	if req.Status != nil {
		if err := s.setStatus(e, *req.Status); err != nil {
			return nil, err
		}
		changed["status"] = *req.Status
	}

	if err := s.repo.Save(e); err != nil {
		return nil, err
	}

	s.audit.LogAction(ctx, &requesterID, &e.ID, "event_updated", changed, ip, "success")
	s.activity.PublishActivity(ctx, "event.updated", e.ID, e.Title, requesterID)
	utils.CacheInvalidate(ctx, cacheKeyFeatured, cacheKeyUpcoming)

	return e, nil
}

func (s *service) Delete(ctx context.Context, id, requesterID, ip string) error {
	e, err := s.ownedEvent(id, requesterID)
	if err != nil {
		return err
	}

	// The cascade removes the participant links, so capture the audience
	// first; fan-out happens only after the delete committed.
	recipients, err := s.repo.ParticipantIDs(e.ID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(e.ID); err != nil {
		return err
	}

	s.audit.LogAction(ctx, &requesterID, &e.ID, "event_deleted", map[string]interface{}{
		"title": e.Title,
	}, ip, "success")
	s.activity.PublishActivityTo(ctx, "event.deleted", e.ID, e.Title, requesterID, recipients)
	utils.CacheInvalidate(ctx, cacheKeyFeatured, cacheKeyUpcoming)

	return nil
}

// AssignCategories replaces the event's tag set. Unknown category ids are
// dropped without error so stale clients cannot poison an update.
func (s *service) AssignCategories(ctx context.Context, id, requesterID string, categoryIDs []string) (*Event, error) {
	e, err := s.ownedEvent(id, requesterID)
	if err != nil {
		return nil, err
	}

	cats, err := s.repo.CategoriesByIDs(categoryIDs)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceCategories(e, cats); err != nil {
		return nil, err
	}
	e.Categories = cats
	return e, nil
}

func (s *service) AttachPoster(ctx context.Context, id, requesterID string, file *multipart.FileHeader) (*Event, error) {
	e, err := s.ownedEvent(id, requesterID)
	if err != nil {
		return nil, err
	}

	url, err := s.posters.StorePoster(file)
	if err != nil {
		return nil, err
	}

	e.PosterURL = url
	if err := s.repo.Save(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) ownedEvent(id, requesterID string) (*Event, error) {
	e, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if e.CreatorID != requesterID {
		return nil, ErrNotOwner
	}
	return e, nil
}

func (s *service) setStatus(e *Event, status string) error {
	switch status {
	case StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled:
		e.Status = status
		return nil
	default:
		return ErrInvalidStatus
	}
}
