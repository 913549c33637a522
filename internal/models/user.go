// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. Age, Weight and Goal are the
// onboarding profile fields; they are pointers so an unset field is
// distinguishable from a zero value.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Age       *int           `json:"age,omitempty"`
	Weight    *float64       `json:"weight,omitempty"`
	Goal      *string        `json:"goal,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// OnboardingCompleted reports whether all three onboarding fields are set.
func (u *User) OnboardingCompleted() bool {
	return u.Age != nil && u.Weight != nil && u.Goal != nil
}
