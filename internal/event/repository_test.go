package event_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oguzkaan/campus-events-backend/internal/category"
	"github.com/oguzkaan/campus-events-backend/internal/event"
	"github.com/oguzkaan/campus-events-backend/internal/participation"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&category.Category{}, &event.Event{}, &participation.Participation{}))
	return db
}

func seedEvent(t *testing.T, db *gorm.DB, e *event.Event) *event.Event {
	t.Helper()
	if e.Status == "" {
		e.Status = event.StatusUpcoming
	}
	if e.CreatorID == "" {
		e.CreatorID = "creator-1"
	}
	if e.MaxParticipants == 0 {
		e.MaxParticipants = 100
	}
	if e.EventDate.IsZero() {
		e.EventDate = time.Now().Add(24 * time.Hour)
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	db := openTestDB(t)
	repo := event.NewRepository(db)

	seedEvent(t, db, &event.Event{Title: "Go Workshop", Description: "hands-on session"})
	seedEvent(t, db, &event.Event{Title: "Career Fair", Description: "meet employers"})
	seedEvent(t, db, &event.Event{Title: "Movie Night", Location: "WORKSHOP building"})

	events, total, err := repo.List(event.ListFilter{Page: 1, Limit: 10, Search: "workshop"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, events, 2)
}

func TestListPagination(t *testing.T) {
	db := openTestDB(t)
	repo := event.NewRepository(db)

	base := time.Now().Add(24 * time.Hour)
	for i := 0; i < 3; i++ {
		seedEvent(t, db, &event.Event{
			Title:     "Event",
			EventDate: base.Add(time.Duration(i) * time.Hour),
		})
	}

	page2, total, err := repo.List(event.ListFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page2, 1)
}

func TestListFiltersByCategoryAndDateWindow(t *testing.T) {
	db := openTestDB(t)
	repo := event.NewRepository(db)

	cat := &category.Category{Name: "Sports"}
	require.NoError(t, db.Create(cat).Error)

	inWindow := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)
	outOfWindow := time.Date(2026, 12, 1, 18, 0, 0, 0, time.UTC)

	seedEvent(t, db, &event.Event{Title: "Football Finals", CategoryID: &cat.ID, EventDate: inWindow})
	seedEvent(t, db, &event.Event{Title: "Winter Football", CategoryID: &cat.ID, EventDate: outOfWindow})
	seedEvent(t, db, &event.Event{Title: "Poetry Slam", EventDate: inWindow})

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC)

	events, total, err := repo.List(event.ListFilter{
		Page: 1, Limit: 10,
		CategoryID: cat.ID,
		StartDate:  &from,
		EndDate:    &to,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, "Football Finals", events[0].Title)
}

func TestSearchDeduplicatesAcrossTags(t *testing.T) {
	db := openTestDB(t)
	repo := event.NewRepository(db)

	music := &category.Category{Name: "Music"}
	outdoor := &category.Category{Name: "Outdoor"}
	require.NoError(t, db.Create(music).Error)
	require.NoError(t, db.Create(outdoor).Error)

	e := seedEvent(t, db, &event.Event{Title: "Spring Festival"})
	require.NoError(t, repo.ReplaceCategories(e, []category.Category{*music, *outdoor}))

	// Both tags match; the event must still appear once.
	events, err := repo.Search(event.SearchFilter{
		Query:       "festival",
		CategoryIDs: []string{music.ID, outdoor.ID},
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Spring Festival", events[0].Title)
}

func TestFeaturedReturnsOnlyFlaggedEvents(t *testing.T) {
	db := openTestDB(t)
	repo := event.NewRepository(db)

	seedEvent(t, db, &event.Event{Title: "Headliner", IsFeatured: true})
	seedEvent(t, db, &event.Event{Title: "Regular"})

	events, err := repo.Featured()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Headliner", events[0].Title)
}

func TestUpcomingIsScheduleDrivenNotStatusDriven(t *testing.T) {
	db := openTestDB(t)
	repo := event.NewRepository(db)

	seedEvent(t, db, &event.Event{Title: "Tomorrow", EventDate: time.Now().Add(24 * time.Hour)})
	seedEvent(t, db, &event.Event{Title: "Yesterday", EventDate: time.Now().Add(-24 * time.Hour)})
	seedEvent(t, db, &event.Event{
		Title:     "Already Started Feed",
		EventDate: time.Now().Add(48 * time.Hour),
		Status:    event.StatusOngoing,
	})

	events, err := repo.Upcoming(5)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Tomorrow", events[0].Title)
	assert.Equal(t, "Already Started Feed", events[1].Title)
}

func TestUpcomingHonorsLimit(t *testing.T) {
	db := openTestDB(t)
	repo := event.NewRepository(db)

	base := time.Now().Add(24 * time.Hour)
	for i := 0; i < 4; i++ {
		seedEvent(t, db, &event.Event{Title: "Soon", EventDate: base.Add(time.Duration(i) * time.Hour)})
	}

	events, err := repo.Upcoming(2)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestByCreatorAndByParticipant(t *testing.T) {
	db := openTestDB(t)
	repo := event.NewRepository(db)

	mine := seedEvent(t, db, &event.Event{Title: "Mine", CreatorID: "me"})
	joined := seedEvent(t, db, &event.Event{Title: "Joined", CreatorID: "someone-else"})
	seedEvent(t, db, &event.Event{Title: "Unrelated", CreatorID: "someone-else"})

	require.NoError(t, db.Create(&participation.Participation{EventID: joined.ID, UserID: "me"}).Error)

	created, err := repo.ByCreator("me")
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, mine.ID, created[0].ID)

	participating, err := repo.ByParticipant("me")
	require.NoError(t, err)
	require.Len(t, participating, 1)
	assert.Equal(t, joined.ID, participating[0].ID)
}

func TestDeleteCascadesLinksAndParticipations(t *testing.T) {
	db := openTestDB(t)
	repo := event.NewRepository(db)

	cat := &category.Category{Name: "Tech"}
	require.NoError(t, db.Create(cat).Error)

	e := seedEvent(t, db, &event.Event{Title: "Doomed"})
	require.NoError(t, repo.ReplaceCategories(e, []category.Category{*cat}))
	require.NoError(t, db.Create(&participation.Participation{EventID: e.ID, UserID: "user-1"}).Error)

	require.NoError(t, repo.Delete(e.ID))

	var eventCount, linkCount, participationCount int64
	require.NoError(t, db.Model(&event.Event{}).Where("id = ?", e.ID).Count(&eventCount).Error)
	require.NoError(t, db.Table("event_categories").Where("event_id = ?", e.ID).Count(&linkCount).Error)
	require.NoError(t, db.Model(&participation.Participation{}).Where("event_id = ?", e.ID).Count(&participationCount).Error)

	assert.Zero(t, eventCount)
	assert.Zero(t, linkCount)
	assert.Zero(t, participationCount)

	// The category itself survives.
	var catCount int64
	require.NoError(t, db.Model(&category.Category{}).Count(&catCount).Error)
	assert.EqualValues(t, 1, catCount)
}

func TestCategoriesByIDsDropsUnknown(t *testing.T) {
	db := openTestDB(t)
	repo := event.NewRepository(db)

	cat := &category.Category{Name: "Art"}
	require.NoError(t, db.Create(cat).Error)

	cats, err := repo.CategoriesByIDs([]string{cat.ID, "does-not-exist"})
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Art", cats[0].Name)
}
