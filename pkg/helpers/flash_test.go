package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flashTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestFlashSetTakeIsSingleRead(t *testing.T) {
	_, rdb := flashTestClient(t)
	ctx := context.Background()

	FlashSet(ctx, rdb, "u1", "Updated basic information successfully.")

	assert.Equal(t, "Updated basic information successfully.", FlashTake(ctx, rdb, "u1"))
	assert.Equal(t, "", FlashTake(ctx, rdb, "u1"), "second read must find the slot empty")
}

func TestFlashSetReplacesPendingMessage(t *testing.T) {
	_, rdb := flashTestClient(t)
	ctx := context.Background()

	FlashSet(ctx, rdb, "u1", "Unable to save basic information.")
	FlashSet(ctx, rdb, "u1", "Updated address information successfully.")

	assert.Equal(t, "Updated address information successfully.", FlashTake(ctx, rdb, "u1"))
	assert.Equal(t, "", FlashTake(ctx, rdb, "u1"))
}

func TestFlashIsScopedPerUser(t *testing.T) {
	_, rdb := flashTestClient(t)
	ctx := context.Background()

	FlashSet(ctx, rdb, "u1", "Updated basic information successfully.")

	assert.Equal(t, "", FlashTake(ctx, rdb, "u2"))
	assert.Equal(t, "Updated basic information successfully.", FlashTake(ctx, rdb, "u1"))
}

func TestFlashExpiresUnread(t *testing.T) {
	mr, rdb := flashTestClient(t)
	ctx := context.Background()

	FlashSet(ctx, rdb, "u1", "Unable to upload profile image,")
	require.True(t, mr.Exists("flash:u1"))

	mr.FastForward(flashTTL + time.Second)
	assert.Equal(t, "", FlashTake(ctx, rdb, "u1"))
}

func TestFlashTolerateNilClientAndEmptyUser(t *testing.T) {
	_, rdb := flashTestClient(t)
	ctx := context.Background()

	FlashSet(ctx, nil, "u1", "msg")
	assert.Equal(t, "", FlashTake(ctx, nil, "u1"))

	FlashSet(ctx, rdb, "", "msg")
	assert.Equal(t, "", FlashTake(ctx, rdb, ""))
}
