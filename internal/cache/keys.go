package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	SwapKeyPrefix        = "swap:%d"
	UserSwapsKeyPrefix   = "user:%d:swaps"
	UnreadCountKeyPrefix = "user:%d:unread"
)

const (
	UserTTL        = 5 * time.Minute
	SwapTTL        = 2 * time.Minute
	UnreadCountTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func SwapKey(swapID uint) string {
	return fmt.Sprintf(SwapKeyPrefix, swapID)
}

func UserSwapsKey(userID uint) string {
	return fmt.Sprintf(UserSwapsKeyPrefix, userID)
}

func UnreadCountKey(userID uint) string {
	return fmt.Sprintf(UnreadCountKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateSwap(ctx context.Context, swapID uint, participants ...uint) {
	Invalidate(ctx, SwapKey(swapID))
	for _, id := range participants {
		Invalidate(ctx, UserSwapsKey(id))
	}
}

func InvalidateUnreadCount(ctx context.Context, userID uint) {
	Invalidate(ctx, UnreadCountKey(userID))
}
