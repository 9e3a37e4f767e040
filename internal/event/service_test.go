package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/oguzkaan/campus-events-backend/internal/auditlog"
	"github.com/oguzkaan/campus-events-backend/internal/category"
)

type fakeRepo struct {
	Repository
	events       map[string]*Event
	categories   map[string]category.Category
	participants map[string][]string
	replaced     []category.Category
	deleteErr    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		events:       map[string]*Event{},
		categories:   map[string]category.Category{},
		participants: map[string][]string{},
	}
}

func (f *fakeRepo) Create(e *Event) error {
	if e.ID == "" {
		e.ID = "ev-" + e.Title
	}
	f.events[e.ID] = e
	return nil
}

func (f *fakeRepo) FindByID(id string) (*Event, error) {
	if e, ok := f.events[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByIDWithCategories(id string) (*Event, error) {
	return f.FindByID(id)
}

func (f *fakeRepo) Save(e *Event) error {
	f.events[e.ID] = e
	return nil
}

func (f *fakeRepo) Delete(id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.events, id)
	delete(f.participants, id)
	return nil
}

func (f *fakeRepo) ParticipantIDs(eventID string) ([]string, error) {
	return f.participants[eventID], nil
}

func (f *fakeRepo) CategoriesByIDs(ids []string) ([]category.Category, error) {
	found := []category.Category{}
	for _, id := range ids {
		if c, ok := f.categories[id]; ok {
			found = append(found, c)
		}
	}
	return found, nil
}

func (f *fakeRepo) ReplaceCategories(e *Event, cats []category.Category) error {
	f.replaced = cats
	return nil
}

type fakeAudit struct {
	actions []string
}

func (f *fakeAudit) LogAction(ctx context.Context, userID *string, eventID *string, action string, details map[string]interface{}, ip string, status string) error {
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeAudit) GetAuditLogs(ctx context.Context, filter auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return nil, nil
}

type fakePublisher struct {
	actions    []string
	recipients [][]string
}

func (f *fakePublisher) PublishActivity(ctx context.Context, action, eventID, eventTitle, actorID string) {
	f.actions = append(f.actions, action)
	f.recipients = append(f.recipients, nil)
}

func (f *fakePublisher) PublishActivityTo(ctx context.Context, action, eventID, eventTitle, actorID string, recipientIDs []string) {
	f.actions = append(f.actions, action)
	f.recipients = append(f.recipients, recipientIDs)
}

func newTestService(repo *fakeRepo) (Service, *fakeAudit, *fakePublisher) {
	audit := &fakeAudit{}
	publisher := &fakePublisher{}
	return NewService(repo, audit, nil, publisher), audit, publisher
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestCreateAppliesDefaults(t *testing.T) {
	repo := newFakeRepo()
	svc, audit, publisher := newTestService(repo)

	e, err := svc.Create(context.Background(), &CreateEventRequest{
		Title:    "Orientation Day",
		DateTime: time.Now().Add(72 * time.Hour),
	}, "creator-1", "Student Union", "1.2.3.4")
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxParticipants, e.MaxParticipants)
	assert.Equal(t, StatusUpcoming, e.Status)
	assert.Equal(t, 0, e.CurrentParticipants)
	assert.False(t, e.IsFeatured)
	assert.Equal(t, "creator-1", e.CreatorID)
	assert.Equal(t, "Student Union", e.OrganizerName)
	assert.Equal(t, []string{"event_created"}, audit.actions)
	assert.Equal(t, []string{"event.created"}, publisher.actions)
}

func TestCreateRejectsNonPositiveCapacity(t *testing.T) {
	svc, _, _ := newTestService(newFakeRepo())

	_, err := svc.Create(context.Background(), &CreateEventRequest{
		Title:           "Bad Capacity",
		DateTime:        time.Now(),
		MaxParticipants: intPtr(0),
	}, "creator-1", "", "")
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	repo := newFakeRepo()
	repo.events["ev-1"] = &Event{ID: "ev-1", Title: "Original", CreatorID: "creator-1"}
	svc, _, _ := newTestService(repo)

	_, err := svc.Update(context.Background(), "ev-1", "intruder", &UpdateEventRequest{Title: strPtr("Hijacked")}, "")
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Equal(t, "Original", repo.events["ev-1"].Title)
}

func TestUpdateAppliesSparsePatch(t *testing.T) {
	repo := newFakeRepo()
	eventDate := time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC)
	repo.events["ev-1"] = &Event{
		ID:              "ev-1",
		Title:           "Original",
		Description:     "Keep me",
		Location:        "Hall A",
		EventDate:       eventDate,
		CreatorID:       "creator-1",
		Status:          StatusUpcoming,
		MaxParticipants: 50,
	}
	svc, audit, publisher := newTestService(repo)

	updated, err := svc.Update(context.Background(), "ev-1", "creator-1", &UpdateEventRequest{
		Title:      strPtr("Renamed"),
		IsFeatured: boolPtr(true),
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, "Keep me", updated.Description)
	assert.Equal(t, "Hall A", updated.Location)
	assert.Equal(t, eventDate, updated.EventDate)
	assert.Equal(t, 50, updated.MaxParticipants)
	assert.Equal(t, []string{"event_updated"}, audit.actions)
	assert.Equal(t, []string{"event.updated"}, publisher.actions)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	repo := newFakeRepo()
	repo.events["ev-1"] = &Event{ID: "ev-1", CreatorID: "creator-1", Status: StatusUpcoming}
	svc, _, _ := newTestService(repo)

	_, err := svc.Update(context.Background(), "ev-1", "creator-1", &UpdateEventRequest{Status: strPtr("postponed")}, "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, StatusUpcoming, repo.events["ev-1"].Status)
}

func TestUpdateAllowsValidStatusTransition(t *testing.T) {
	repo := newFakeRepo()
	repo.events["ev-1"] = &Event{ID: "ev-1", CreatorID: "creator-1", Status: StatusUpcoming}
	svc, _, _ := newTestService(repo)

	updated, err := svc.Update(context.Background(), "ev-1", "creator-1", &UpdateEventRequest{Status: strPtr(StatusCancelled)}, "")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, updated.Status)
}

func TestUpdateRejectsCapacityBelowCurrentCount(t *testing.T) {
	repo := newFakeRepo()
	repo.events["ev-1"] = &Event{
		ID:                  "ev-1",
		CreatorID:           "creator-1",
		MaxParticipants:     50,
		CurrentParticipants: 30,
	}
	svc, _, _ := newTestService(repo)

	_, err := svc.Update(context.Background(), "ev-1", "creator-1", &UpdateEventRequest{MaxParticipants: intPtr(20)}, "")
	assert.ErrorIs(t, err, ErrCapacityTooLow)
	assert.Equal(t, 50, repo.events["ev-1"].MaxParticipants)
}

func TestAssignCategoriesDropsUnknownIDs(t *testing.T) {
	repo := newFakeRepo()
	repo.events["ev-1"] = &Event{ID: "ev-1", CreatorID: "creator-1"}
	repo.categories["cat-1"] = category.Category{ID: "cat-1", Name: "Music"}
	svc, _, _ := newTestService(repo)

	updated, err := svc.AssignCategories(context.Background(), "ev-1", "creator-1", []string{"cat-1", "ghost"})
	require.NoError(t, err)

	require.Len(t, updated.Categories, 1)
	assert.Equal(t, "Music", updated.Categories[0].Name)
	require.Len(t, repo.replaced, 1)
}

func TestDeleteUnknownEvent(t *testing.T) {
	svc, _, _ := newTestService(newFakeRepo())

	err := svc.Delete(context.Background(), "missing", "creator-1", "")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	repo := newFakeRepo()
	repo.events["ev-1"] = &Event{ID: "ev-1", CreatorID: "creator-1"}
	svc, _, _ := newTestService(repo)

	err := svc.Delete(context.Background(), "ev-1", "intruder", "")
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Contains(t, repo.events, "ev-1")
}

func TestDeleteRemovesEvent(t *testing.T) {
	repo := newFakeRepo()
	repo.events["ev-1"] = &Event{ID: "ev-1", Title: "Doomed", CreatorID: "creator-1"}
	svc, audit, publisher := newTestService(repo)

	require.NoError(t, svc.Delete(context.Background(), "ev-1", "creator-1", ""))
	assert.NotContains(t, repo.events, "ev-1")
	assert.Equal(t, []string{"event_deleted"}, audit.actions)
	assert.Equal(t, []string{"event.deleted"}, publisher.actions)
}

func TestDeletePublishesToFormerParticipants(t *testing.T) {
	repo := newFakeRepo()
	repo.events["ev-1"] = &Event{ID: "ev-1", Title: "Doomed", CreatorID: "creator-1"}
	repo.participants["ev-1"] = []string{"user-1", "user-2"}
	svc, _, publisher := newTestService(repo)

	require.NoError(t, svc.Delete(context.Background(), "ev-1", "creator-1", ""))
	require.Equal(t, []string{"event.deleted"}, publisher.actions)
	require.Len(t, publisher.recipients, 1)
	assert.Equal(t, []string{"user-1", "user-2"}, publisher.recipients[0])
}

func TestDeleteFailureDoesNotPublish(t *testing.T) {
	repo := newFakeRepo()
	repo.events["ev-1"] = &Event{ID: "ev-1", Title: "Sticky", CreatorID: "creator-1"}
	repo.participants["ev-1"] = []string{"user-1"}
	repo.deleteErr = errors.New("connection reset")
	svc, audit, publisher := newTestService(repo)

	err := svc.Delete(context.Background(), "ev-1", "creator-1", "")
	require.Error(t, err)
	assert.Empty(t, publisher.actions, "a failed delete must not fan out a cancellation")
	assert.Empty(t, audit.actions)
	assert.Contains(t, repo.events, "ev-1")
}
