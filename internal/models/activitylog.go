package models

import "time"

// ActivityLog is one logged activity, structurally analogous to FoodLog.
type ActivityLog struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	DocumentID      string    `gorm:"uniqueIndex;not null" json:"documentId"`
	UserID          uint      `gorm:"index;not null" json:"-"`
	Name            string    `gorm:"not null" json:"name"`
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"`
	CaloriesBurned  int       `json:"caloriesBurned"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
