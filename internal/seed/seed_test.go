package seed

import (
	"testing"
	"time"

	"caltrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.FoodLog{}, &models.ActivityLog{}))
	return db
}

func TestSeed(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 5, MaxDays: 7}))

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.EqualValues(t, 5, userCount)

	var foodCount, activityCount int64
	require.NoError(t, db.Model(&models.FoodLog{}).Count(&foodCount).Error)
	require.NoError(t, db.Model(&models.ActivityLog{}).Count(&activityCount).Error)
	assert.Greater(t, foodCount, int64(0))
	assert.Greater(t, activityCount, int64(0))

	// Every entry belongs to a seeded user and has a valid shape
	var entries []models.FoodLog
	require.NoError(t, db.Find(&entries).Error)
	cutoff := time.Now().Add(-8 * 24 * time.Hour)
	for _, e := range entries {
		assert.NotZero(t, e.UserID)
		assert.NotEmpty(t, e.DocumentID)
		assert.True(t, models.ValidMealType(e.MealType), "meal type %q", e.MealType)
		assert.Positive(t, e.Calories)
		assert.True(t, e.CreatedAt.After(cutoff), "entry too old: %v", e.CreatedAt)
	}
}

func TestSeedCleanRemovesExistingData(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, db.Create(&models.User{Username: "stale", Email: "stale@example.com", Password: "x"}).Error)
	require.NoError(t, Seed(db, Options{NumUsers: 2, MaxDays: 7, ShouldClean: true}))

	var staleCount int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "stale").Count(&staleCount).Error)
	assert.Zero(t, staleCount)
}
