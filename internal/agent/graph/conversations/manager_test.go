package conversations

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cloudwego/eino/schema"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zodiac-travel/server/internal/agent/model"
	"github.com/zodiac-travel/server/internal/agent/repo"
)

func newManager(t *testing.T, maxTurns int) *MessagesManager {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := model.ConversationConfig{}
	cfg.History.MaxTurns = maxTurns
	return NewMessagesManager(repo.NewRedisConversationRepository(rdb, time.Minute), cfg)
}

func TestBuildResponseContext(t *testing.T) {
	mm := newManager(t, 20)
	ctx := context.Background()

	require.NoError(t, mm.SaveUserMessage(ctx, "conv-1", "hello stars"))
	require.NoError(t, mm.SaveResponse(ctx, "conv-1", "✨ hello traveler"))

	msgs, err := mm.BuildResponseContext(ctx, "conv-1", "SYSTEM")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Equal(t, "SYSTEM", msgs[0].Content)
	assert.Equal(t, schema.User, msgs[1].Role)
	assert.Equal(t, schema.Assistant, msgs[2].Role)
}

func TestBuildResponseContextTrimsHistory(t *testing.T) {
	mm := newManager(t, 4)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, mm.SaveUserMessage(ctx, "conv-2", fmt.Sprintf("turn %d", i)))
	}

	msgs, err := mm.BuildResponseContext(ctx, "conv-2", "SYSTEM")
	require.NoError(t, err)
	require.Len(t, msgs, 5) // system + last 4 turns
	assert.Equal(t, "turn 6", msgs[1].Content)
	assert.Equal(t, "turn 9", msgs[4].Content)
}

func TestClearConversation(t *testing.T) {
	mm := newManager(t, 20)
	ctx := context.Background()

	require.NoError(t, mm.SaveUserMessage(ctx, "conv-3", "hi"))
	require.NoError(t, mm.ClearConversation(ctx, "conv-3"))

	msgs, err := mm.BuildResponseContext(ctx, "conv-3", "SYSTEM")
	require.NoError(t, err)
	assert.Len(t, msgs, 1) // system prompt only
}
