package reports

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oguzkaan/campus-events-backend/internal/auditlog"
	"github.com/oguzkaan/campus-events-backend/internal/event"
	"github.com/oguzkaan/campus-events-backend/internal/participation"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotOwner      = errors.New("only the event creator can export the participant list")
)

// ExportResult carries everything the handler needs to stream a file.
type ExportResult struct {
	Data        []byte
	Filename    string
	ContentType string
}

type Service interface {
	ExportParticipants(ctx context.Context, eventID, requesterID, format string) (*ExportResult, error)
}

type service struct {
	events        event.Repository
	participation participation.Repository
	audit         auditlog.Service
}

func NewService(events event.Repository, p participation.Repository, audit auditlog.Service) Service {
	return &service{events: events, participation: p, audit: audit}
}

func (s *service) ExportParticipants(ctx context.Context, eventID, requesterID, format string) (*ExportResult, error) {
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

	rows, err := s.participation.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	data, filename, contentType, err := Export(format, ev.Title, rows)
	if err != nil {
		return nil, err
	}

	s.audit.LogAction(ctx, &requesterID, &eventID, "participants_exported", map[string]interface{}{
		"format": format,
		"count":  len(rows),
	}, "", "success")

	return &ExportResult{Data: data, Filename: filename, ContentType: contentType}, nil
}
