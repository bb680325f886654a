package redis

import (
	"context"
	"testing"

	redisV9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/go-sequence/pkg/sequence"
	"github.com/huynhanx03/go-sequence/pkg/sequence/bridge"
	"github.com/huynhanx03/go-sequence/pkg/settings"
)

func TestPump_ForwardsUntilChannelCloses(t *testing.T) {
	br := bridge.New[*redisV9.Message]()
	ch := make(chan *redisV9.Message, 3)

	msgs := []*redisV9.Message{
		{Channel: "events", Payload: "a"},
		{Channel: "events", Payload: "b"},
		{Channel: "events", Payload: "c"},
	}
	for _, m := range msgs {
		ch <- m
	}
	close(ch)

	pump(context.Background(), ch, br)
	br.Close()

	got, err := sequence.Collect(context.Background(), br)
	require.NoError(t, err)
	assert.Equal(t, msgs, got, "messages arrive in publish order")
}

func TestPump_StopsOnContextDone(t *testing.T) {
	br := bridge.New[*redisV9.Message]()
	ch := make(chan *redisV9.Message) // stays open

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pump(ctx, ch, br) // must return promptly instead of blocking forever
	br.Close()

	got, err := sequence.Collect(context.Background(), br)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSetDefaults(t *testing.T) {
	cfg := settings.Redis{Host: "localhost"}
	setDefaults(&cfg)

	assert.Equal(t, defaultPoolSize, cfg.PoolSize)
	assert.Equal(t, defaultMinIdleConns, cfg.MinIdleConns)
	assert.Equal(t, defaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, defaultMinRetryBackoff, cfg.MinRetryBackoff)
	assert.Equal(t, defaultMaxRetryBackoff, cfg.MaxRetryBackoff)
}

func TestSetDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := settings.Redis{PoolSize: 42, MaxRetries: 1}
	setDefaults(&cfg)

	assert.Equal(t, 42, cfg.PoolSize)
	assert.Equal(t, 1, cfg.MaxRetries)
}
