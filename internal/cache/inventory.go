package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix         = "user:%d"
	FoodLogsKeyPrefix     = "food-logs:%d"
	ActivityLogsKeyPrefix = "activity-logs:%d"
)

const (
	UserTTL = 5 * time.Minute
	LogsTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func FoodLogsKey(userID uint) string {
	return fmt.Sprintf(FoodLogsKeyPrefix, userID)
}

func ActivityLogsKey(userID uint) string {
	return fmt.Sprintf(ActivityLogsKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateFoodLogs(ctx context.Context, userID uint) {
	Invalidate(ctx, FoodLogsKey(userID))
}

func InvalidateActivityLogs(ctx context.Context, userID uint) {
	Invalidate(ctx, ActivityLogsKey(userID))
}
