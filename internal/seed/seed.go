// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"caltrack/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	MaxDays     int
	ShouldClean bool
}

var (
	mealNames = map[string][]string{
		models.MealBreakfast: {
			"Oatmeal with berries", "Scrambled eggs", "Greek yogurt parfait",
			"Avocado toast", "Banana pancakes", "Breakfast burrito",
		},
		models.MealLunch: {
			"Chicken caesar salad", "Turkey sandwich", "Tomato soup",
			"Poke bowl", "Burrito bowl", "Grilled cheese",
		},
		models.MealSnack: {
			"Protein bar", "Trail mix", "Apple with peanut butter",
			"Hummus and carrots", "Cottage cheese",
		},
		models.MealDinner: {
			"Grilled salmon with rice", "Spaghetti bolognese", "Chicken stir fry",
			"Beef tacos", "Margherita pizza", "Vegetable curry",
		},
	}

	activityNames = []string{
		"Running", "Cycling", "Swimming", "Weight lifting", "Yoga",
		"HIIT workout", "Hiking", "Rowing", "Basketball", "Walking",
	}

	goals = []string{"lose", "maintain", "gain"}
)

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 30
	}
	gofakeit.Seed(time.Now().UnixNano())

	log.Printf("🌱 Starting database seeding with %d users...", opts.NumUsers)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	foodCount, err := createFoodLogs(db, users, opts.MaxDays)
	if err != nil {
		return fmt.Errorf("failed to create food logs: %w", err)
	}
	log.Printf("✓ %d food log entries created", foodCount)

	activityCount, err := createActivityLogs(db, users, opts.MaxDays)
	if err != nil {
		return fmt.Errorf("failed to create activity logs: %w", err)
	}
	log.Printf("✓ %d activity log entries created", activityCount)

	log.Println("🌱 Database seeding complete")
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	// One shared hash; bcrypt per user makes seeding painfully slow.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		username := strings.ToLower(fmt.Sprintf("%s.%s%d", first, last, rand.Intn(1000)))

		user := models.User{
			Username: username,
			Email:    strings.ToLower(fmt.Sprintf("%s@%s", username, gofakeit.DomainName())),
			Password: string(hashed),
		}

		// Most seeded users have completed onboarding; leave a few fresh.
		if rand.Intn(10) < 8 {
			age := 18 + rand.Intn(50)
			weight := 50 + rand.Float64()*60
			goal := goals[rand.Intn(len(goals))]
			user.Age = &age
			user.Weight = &weight
			user.Goal = &goal
		}

		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createFoodLogs(db *gorm.DB, users []models.User, maxDays int) (int, error) {
	mealTypes := []string{models.MealBreakfast, models.MealLunch, models.MealSnack, models.MealDinner}

	total := 0
	for _, user := range users {
		entries := 5 + rand.Intn(20)
		batch := make([]models.FoodLog, 0, entries)
		for i := 0; i < entries; i++ {
			mealType := mealTypes[rand.Intn(len(mealTypes))]
			names := mealNames[mealType]
			batch = append(batch, models.FoodLog{
				DocumentID: uuid.NewString(),
				UserID:     user.ID,
				Name:       names[rand.Intn(len(names))],
				Calories:   100 + rand.Intn(900),
				MealType:   mealType,
				CreatedAt:  randomTimestamp(maxDays),
			})
		}
		if err := db.Create(&batch).Error; err != nil {
			return total, err
		}
		total += len(batch)
	}
	return total, nil
}

func createActivityLogs(db *gorm.DB, users []models.User, maxDays int) (int, error) {
	total := 0
	for _, user := range users {
		entries := 3 + rand.Intn(12)
		batch := make([]models.ActivityLog, 0, entries)
		for i := 0; i < entries; i++ {
			duration := 10 + rand.Intn(110)
			batch = append(batch, models.ActivityLog{
				DocumentID:      uuid.NewString(),
				UserID:          user.ID,
				Name:            activityNames[rand.Intn(len(activityNames))],
				DurationMinutes: duration,
				CaloriesBurned:  duration * (4 + rand.Intn(8)),
				CreatedAt:       randomTimestamp(maxDays),
			})
		}
		if err := db.Create(&batch).Error; err != nil {
			return total, err
		}
		total += len(batch)
	}
	return total, nil
}

// randomTimestamp returns a time spread over the last maxDays days so seeded
// histories look like real usage.
func randomTimestamp(maxDays int) time.Time {
	daysBack := rand.Intn(maxDays)
	hoursBack := rand.Intn(24)
	minsBack := rand.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

func clearData(db *gorm.DB) error {
	// Children first to keep foreign keys happy.
	if err := db.Exec("DELETE FROM food_logs").Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM activity_logs").Error; err != nil {
		return err
	}
	return db.Exec("DELETE FROM users").Error
}
