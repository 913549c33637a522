package service

import (
	"context"
	"strings"

	"caltrack/internal/models"
	"caltrack/internal/observability"
	"caltrack/internal/repository"

	"github.com/google/uuid"
)

// LogService validates and persists food and activity log entries. The
// owning user id is always taken from the authenticated caller, never from
// the request payload.
type LogService struct {
	foodRepo     repository.FoodLogRepository
	activityRepo repository.ActivityLogRepository
}

// CreateFoodInput carries a food entry create request.
type CreateFoodInput struct {
	UserID   uint
	Name     string
	Calories int
	MealType string
}

// CreateActivityInput carries an activity entry create request.
type CreateActivityInput struct {
	UserID          uint
	Name            string
	DurationMinutes int
	CaloriesBurned  int
}

func NewLogService(foodRepo repository.FoodLogRepository, activityRepo repository.ActivityLogRepository) *LogService {
	return &LogService{foodRepo: foodRepo, activityRepo: activityRepo}
}

func (s *LogService) ListFood(ctx context.Context, userID uint) ([]models.FoodLog, error) {
	return s.foodRepo.ListByUser(ctx, userID)
}

func (s *LogService) GetFood(ctx context.Context, userID uint, documentID string) (*models.FoodLog, error) {
	return s.foodRepo.GetByDocumentID(ctx, userID, documentID)
}

func (s *LogService) CreateFood(ctx context.Context, in CreateFoodInput) (*models.FoodLog, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if in.Calories <= 0 {
		return nil, models.NewValidationError("Calories must be a positive number")
	}
	if !models.ValidMealType(in.MealType) {
		return nil, models.NewValidationError("Invalid meal type")
	}

	entry := &models.FoodLog{
		DocumentID: uuid.NewString(),
		UserID:     in.UserID,
		Name:       name,
		Calories:   in.Calories,
		MealType:   in.MealType,
	}
	if err := s.foodRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	observability.LogEntriesCreated.WithLabelValues("food-logs").Inc()
	return entry, nil
}

func (s *LogService) DeleteFood(ctx context.Context, userID uint, documentID string) error {
	if strings.TrimSpace(documentID) == "" {
		return models.NewValidationError("Invalid document ID")
	}
	return s.foodRepo.DeleteByDocumentID(ctx, userID, documentID)
}

func (s *LogService) ListActivities(ctx context.Context, userID uint) ([]models.ActivityLog, error) {
	return s.activityRepo.ListByUser(ctx, userID)
}

func (s *LogService) GetActivity(ctx context.Context, userID uint, documentID string) (*models.ActivityLog, error) {
	return s.activityRepo.GetByDocumentID(ctx, userID, documentID)
}

func (s *LogService) CreateActivity(ctx context.Context, in CreateActivityInput) (*models.ActivityLog, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if in.DurationMinutes <= 0 {
		return nil, models.NewValidationError("Duration must be a positive number")
	}
	if in.CaloriesBurned < 0 {
		return nil, models.NewValidationError("Calories burned cannot be negative")
	}

	entry := &models.ActivityLog{
		DocumentID:      uuid.NewString(),
		UserID:          in.UserID,
		Name:            name,
		DurationMinutes: in.DurationMinutes,
		CaloriesBurned:  in.CaloriesBurned,
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	observability.LogEntriesCreated.WithLabelValues("activity-logs").Inc()
	return entry, nil
}

func (s *LogService) DeleteActivity(ctx context.Context, userID uint, documentID string) error {
	if strings.TrimSpace(documentID) == "" {
		return models.NewValidationError("Invalid document ID")
	}
	return s.activityRepo.DeleteByDocumentID(ctx, userID, documentID)
}
