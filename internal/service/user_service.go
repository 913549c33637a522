package service

import (
	"context"

	"caltrack/internal/models"
	"caltrack/internal/repository"
	"caltrack/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

// UpdateProfileInput carries a profile update. Nil pointer fields are left
// unchanged; the onboarding fields (age, weight, goal) are set when present.
type UpdateProfileInput struct {
	UserID   uint
	Username string
	Age      *int
	Weight   *float64
	Goal     *string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if in.Age != nil {
		if *in.Age <= 0 || *in.Age > 120 {
			return nil, models.NewValidationError("Age must be between 1 and 120")
		}
		user.Age = in.Age
	}
	if in.Weight != nil {
		if *in.Weight <= 0 {
			return nil, models.NewValidationError("Weight must be a positive number")
		}
		user.Weight = in.Weight
	}
	if in.Goal != nil {
		switch *in.Goal {
		case "lose", "maintain", "gain":
			user.Goal = in.Goal
		default:
			return nil, models.NewValidationError("Goal must be one of lose, maintain, gain")
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
