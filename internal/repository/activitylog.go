package repository

import (
	"context"
	"errors"

	"caltrack/internal/cache"
	"caltrack/internal/models"

	"gorm.io/gorm"
)

// ActivityLogRepository defines persistence operations for activity log
// entries, owner-scoped like FoodLogRepository.
type ActivityLogRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.ActivityLog, error)
	GetByDocumentID(ctx context.Context, userID uint, documentID string) (*models.ActivityLog, error)
	Create(ctx context.Context, entry *models.ActivityLog) error
	DeleteByDocumentID(ctx context.Context, userID uint, documentID string) error
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository returns a new ActivityLogRepository implementation.
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) ListByUser(ctx context.Context, userID uint) ([]models.ActivityLog, error) {
	entries := []models.ActivityLog{}
	key := cache.ActivityLogsKey(userID)

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

func (r *activityLogRepository) GetByDocumentID(ctx context.Context, userID uint, documentID string) (*models.ActivityLog, error) {
	var entry models.ActivityLog
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

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateActivityLogs(ctx, entry.UserID)
	return nil
}

func (r *activityLogRepository) DeleteByDocumentID(ctx context.Context, userID uint, documentID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND document_id = ?", userID, documentID).
		Delete(&models.ActivityLog{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Not found or not yours")
	}
	cache.InvalidateActivityLogs(ctx, userID)
	return nil
}
