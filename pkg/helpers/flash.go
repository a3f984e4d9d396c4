package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Flash is the single-slot status channel: one ephemeral message per user,
// set after a mutating operation and consumed by the next profile render.
// Writing replaces any pending message; reading clears it.

const flashTTL = 5 * time.Minute

func flashKey(userID string) string {
	return "flash:" + userID
}

// FlashSet stores the pending status message for the user. No-op without Redis.
func FlashSet(ctx context.Context, rdb *redis.Client, userID, message string) {
	if rdb == nil || userID == "" {
		return
	}
	_ = rdb.Set(ctx, flashKey(userID), message, flashTTL).Err()
}

// FlashTake returns and clears the pending status message, or "" when none.
func FlashTake(ctx context.Context, rdb *redis.Client, userID string) string {
	if rdb == nil || userID == "" {
		return ""
	}
	msg, err := rdb.GetDel(ctx, flashKey(userID)).Result()
	if err != nil {
		// redis.Nil means no pending message; other errors degrade the same way.
		return ""
	}
	return msg
}
