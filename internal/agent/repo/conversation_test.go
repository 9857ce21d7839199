package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, ttl time.Duration) (*RedisConversationRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisConversationRepository(rdb, ttl), mr
}

func TestAddAndLoadHistory(t *testing.T) {
	r, _ := newTestRepo(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, r.AddMessage(ctx, "conv-1", schema.UserMessage("I have $500, something romantic")))
	require.NoError(t, r.AddMessage(ctx, "conv-1", schema.AssistantMessage("✨ Santorini awaits!", nil)))

	history, err := r.LoadHistory(ctx, "conv-1")
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, schema.User, history.Messages[0].Role)
	assert.Equal(t, "I have $500, something romantic", history.Messages[0].Content)
	assert.Equal(t, schema.Assistant, history.Messages[1].Role)
}

func TestLoadHistoryEmptyConversation(t *testing.T) {
	r, _ := newTestRepo(t, time.Minute)

	history, err := r.LoadHistory(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Empty(t, history.Messages)
	assert.Equal(t, "never-seen", history.ConversationID)
}

func TestTTLIsSetOnTouch(t *testing.T) {
	r, mr := newTestRepo(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, r.AddMessage(ctx, "conv-ttl", schema.UserMessage("hi")))
	assert.Greater(t, mr.TTL("zodiac:conversation:conv-ttl:messages"), time.Duration(0))

	// History survives within TTL, expires after.
	mr.FastForward(30 * time.Second)
	history, err := r.LoadHistory(ctx, "conv-ttl")
	require.NoError(t, err)
	assert.Len(t, history.Messages, 1)

	mr.FastForward(time.Minute)
	history, err = r.LoadHistory(ctx, "conv-ttl")
	require.NoError(t, err)
	assert.Empty(t, history.Messages)
}

func TestClearHistory(t *testing.T) {
	r, _ := newTestRepo(t, 0)
	ctx := context.Background()

	require.NoError(t, r.AddMessage(ctx, "conv-2", schema.UserMessage("hello")))
	n, err := r.GetMessageCount(ctx, "conv-2")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, r.ClearHistory(ctx, "conv-2"))
	n, err = r.GetMessageCount(ctx, "conv-2")
	require.NoError(t, err)
	assert.Zero(t, n)
}
