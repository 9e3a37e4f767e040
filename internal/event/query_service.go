package event

import (
	"context"
	"math"
	"time"

	"github.com/oguzkaan/campus-events-backend/utils"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	DefaultUpcomingLimit = 5

	featuredCacheTTL = 60 * time.Second
	upcomingCacheTTL = 30 * time.Second
)

type PaginatedEvents struct {
	Data       []Event `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}

// QueryService is the read side: listing, search and the curated views.
type QueryService interface {
	List(ctx context.Context, f ListFilter) (*PaginatedEvents, error)
	Search(ctx context.Context, f SearchFilter) ([]Event, error)
	Featured(ctx context.Context) ([]Event, error)
	Upcoming(ctx context.Context, limit int) ([]Event, error)
	ByCreator(ctx context.Context, userID string) ([]Event, error)
	ByParticipant(ctx context.Context, userID string) ([]Event, error)
}

type queryService struct {
	repo Repository
}

func NewQueryService(repo Repository) QueryService {
	return &queryService{repo: repo}
}

func (s *queryService) List(ctx context.Context, f ListFilter) (*PaginatedEvents, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > MaxPageLimit {
		f.Limit = DefaultPageLimit
	}

	events, total, err := s.repo.List(f)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}

	return &PaginatedEvents{
		Data:       events,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(f.Limit))),
	}, nil
}

func (s *queryService) Search(ctx context.Context, f SearchFilter) ([]Event, error) {
	events, err := s.repo.Search(f)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}

func (s *queryService) Featured(ctx context.Context) ([]Event, error) {
	var cached []Event
	if utils.CacheGetJSON(ctx, cacheKeyFeatured, &cached) {
		return cached, nil
	}

	events, err := s.repo.Featured()
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}
	utils.CacheSetJSON(ctx, cacheKeyFeatured, events, featuredCacheTTL)
	return events, nil
}

// Upcoming caches the default-sized view only; other limits are rare and
// served straight from the database.
func (s *queryService) Upcoming(ctx context.Context, limit int) ([]Event, error) {
	if limit < 1 || limit > MaxPageLimit {
		limit = DefaultUpcomingLimit
	}

	cacheable := limit == DefaultUpcomingLimit
	if cacheable {
		var cached []Event
		if utils.CacheGetJSON(ctx, cacheKeyUpcoming, &cached) {
			return cached, nil
		}
	}

	events, err := s.repo.Upcoming(limit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}
	if cacheable {
		utils.CacheSetJSON(ctx, cacheKeyUpcoming, events, upcomingCacheTTL)
	}
	return events, nil
}

func (s *queryService) ByCreator(ctx context.Context, userID string) ([]Event, error) {
	events, err := s.repo.ByCreator(userID)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}

func (s *queryService) ByParticipant(ctx context.Context, userID string) ([]Event, error) {
	events, err := s.repo.ByParticipant(userID)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}
