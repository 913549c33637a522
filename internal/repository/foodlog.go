package repository

import (
	"context"
	"errors"

	"caltrack/internal/cache"
	"caltrack/internal/models"

	"gorm.io/gorm"
)

// FoodLogRepository defines persistence operations for food log entries.
// Every read and delete is scoped to the owning user.
type FoodLogRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.FoodLog, error)
	GetByDocumentID(ctx context.Context, userID uint, documentID string) (*models.FoodLog, error)
	Create(ctx context.Context, entry *models.FoodLog) error
	DeleteByDocumentID(ctx context.Context, userID uint, documentID string) error
}

type foodLogRepository struct {
	db *gorm.DB
}

// NewFoodLogRepository returns a new FoodLogRepository implementation.
func NewFoodLogRepository(db *gorm.DB) FoodLogRepository {
	return &foodLogRepository{db: db}
}

func (r *foodLogRepository) ListByUser(ctx context.Context, userID uint) ([]models.FoodLog, error) {
	entries := []models.FoodLog{}
	key := cache.FoodLogsKey(userID)

	err := cache.Aside(ctx, key, &entries, cache.LogsTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("created_at ASC").
			Find(&entries).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *foodLogRepository) GetByDocumentID(ctx context.Context, userID uint, documentID string) (*models.FoodLog, error) {
	var entry models.FoodLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND document_id = ?", userID, documentID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Not found or not yours")
		}
		return nil, models.NewInternalError(err)
	}
	return &entry, nil
}

func (r *foodLogRepository) Create(ctx context.Context, entry *models.FoodLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFoodLogs(ctx, entry.UserID)
	return nil
}

func (r *foodLogRepository) DeleteByDocumentID(ctx context.Context, userID uint, documentID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND document_id = ?", userID, documentID).
		Delete(&models.FoodLog{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Not found or not yours")
	}
	cache.InvalidateFoodLogs(ctx, userID)
	return nil
}
