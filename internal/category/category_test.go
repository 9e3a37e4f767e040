package category_test

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
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&category.Category{}, &event.Event{}))
	return db
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	db := openTestDB(t)
	svc := category.NewService(category.NewRepository(db))

	_, err := svc.Create(&category.CreateCategoryRequest{Name: "Music", Icon: "note", Color: "#ff0000"})
	require.NoError(t, err)

	_, err = svc.Create(&category.CreateCategoryRequest{Name: "Music"})
	assert.ErrorIs(t, err, category.ErrCategoryExists)
}

func TestListIsSortedByName(t *testing.T) {
	db := openTestDB(t)
	svc := category.NewService(category.NewRepository(db))

	for _, name := range []string{"Sports", "Art", "Music"} {
		_, err := svc.Create(&category.CreateCategoryRequest{Name: name})
		require.NoError(t, err)
	}

	categories, err := svc.List()
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Art", categories[0].Name)
	assert.Equal(t, "Music", categories[1].Name)
	assert.Equal(t, "Sports", categories[2].Name)
}

func TestDeleteUnknownCategory(t *testing.T) {
	db := openTestDB(t)
	svc := category.NewService(category.NewRepository(db))

	assert.ErrorIs(t, svc.Delete("missing"), category.ErrCategoryNotFound)
}

func TestDeleteClearsEventReferences(t *testing.T) {
	db := openTestDB(t)
	eventRepo := event.NewRepository(db)
	svc := category.NewService(category.NewRepository(db))

	cat, err := svc.Create(&category.CreateCategoryRequest{Name: "Tech"})
	require.NoError(t, err)

	e := &event.Event{
		Title:           "Robotics Demo",
		EventDate:       time.Now().Add(24 * time.Hour),
		Status:          event.StatusUpcoming,
		CreatorID:       "creator-1",
		MaxParticipants: 100,
		CategoryID:      &cat.ID,
	}
	require.NoError(t, db.Create(e).Error)
	require.NoError(t, eventRepo.ReplaceCategories(e, []category.Category{*cat}))

	require.NoError(t, svc.Delete(cat.ID))

	var got event.Event
	require.NoError(t, db.First(&got, "id = ?", e.ID).Error)
	assert.Nil(t, got.CategoryID, "legacy reference must be cleared, not cascaded")

	var linkCount int64
	require.NoError(t, db.Table("event_categories").Where("category_id = ?", cat.ID).Count(&linkCount).Error)
	assert.Zero(t, linkCount)
}
