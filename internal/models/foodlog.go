package models

import "time"

// Meal types accepted for a food log entry.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// ValidMealType reports whether s is one of the accepted meal types.
func ValidMealType(s string) bool {
	switch s {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// FoodLog is one logged meal. DocumentID is the stable external identifier
// clients use for lookups and deletion; the numeric ID is the database key.
type FoodLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DocumentID string    `gorm:"uniqueIndex;not null" json:"documentId"`
	UserID     uint      `gorm:"index;not null" json:"-"`
	Name       string    `gorm:"not null" json:"name"`
	Calories   int       `gorm:"not null" json:"calories"`
	MealType   string    `gorm:"not null" json:"mealType"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
