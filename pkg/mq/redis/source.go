// Package redis feeds Redis Pub/Sub messages into a bridge, exposing a pull
// sequence to a single consumer goroutine.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	redisV9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-sequence/pkg/sequence"
	"github.com/huynhanx03/go-sequence/pkg/sequence/bridge"
	"github.com/huynhanx03/go-sequence/pkg/settings"
	"github.com/huynhanx03/go-sequence/pkg/utils"
)

const (
	defaultPoolSize        = 10
	defaultMinIdleConns    = 5
	defaultPoolTimeout     = 5
	defaultDialTimeout     = 5
	defaultReadTimeout     = 3
	defaultWriteTimeout    = 3
	defaultMaxRetries      = 3
	defaultMinRetryBackoff = 300 // millis
	defaultMaxRetryBackoff = 500 // millis
)

// Source subscribes to Pub/Sub channels and pushes every received message
// into a bridge.
type Source struct {
	bridge   *bridge.Bridge[*redisV9.Message]
	client   *redisV9.Client
	channels []string
	log      *zap.Logger
}

// NewSource connects to Redis and prepares a subscription source for the
// given channels.
func NewSource(cfg settings.Redis, log *zap.Logger, channels ...string) (*Source, error) {
	setDefaults(&cfg)

	addr := cfg.Host
	if cfg.Port > 0 {
		addr = fmt.Sprintf("%s:%d", addr, cfg.Port)
	}

	client := redisV9.NewClient(&redisV9.Options{
		Addr:            addr,
		Password:        cfg.Password,
		DB:              cfg.Database,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		MaxRetries:      cfg.MaxRetries,
		DialTimeout:     utils.ToDuration(cfg.DialTimeout),
		ReadTimeout:     utils.ToDuration(cfg.ReadTimeout),
		WriteTimeout:    utils.ToDuration(cfg.WriteTimeout),
		PoolTimeout:     utils.ToDuration(cfg.PoolTimeout),
		MinRetryBackoff: utils.ToDurationMs(cfg.MinRetryBackoff),
		MaxRetryBackoff: utils.ToDurationMs(cfg.MaxRetryBackoff),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis: ping")
	}

	return &Source{
		bridge:   bridge.New[*redisV9.Message](),
		client:   client,
		channels: channels,
		log:      log,
	}, nil
}

// Sequence returns the pull side of the source.
func (s *Source) Sequence() sequence.Sequence[*redisV9.Message] {
	return s.bridge
}

// Run subscribes and pushes messages until ctx is cancelled or the
// subscription is torn down. The bridge is closed on return.
func (s *Source) Run(ctx context.Context) error {
	sub := s.client.Subscribe(ctx, s.channels...)
	defer func() {
		if err := sub.Close(); err != nil {
			s.log.Warn("redis: close subscription", zap.Error(err))
		}
		s.bridge.Close()
	}()

	pump(ctx, sub.Channel(), s.bridge)
	return nil
}

// Close releases the underlying client.
func (s *Source) Close() error {
	return errors.Wrap(s.client.Close(), "redis: close client")
}

// pump forwards messages from ch into br until ch closes or ctx is done.
func pump(ctx context.Context, ch <-chan *redisV9.Message, br *bridge.Bridge[*redisV9.Message]) {
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			br.Add(msg)
		case <-ctx.Done():
			return
		}
	}
}

func setDefaults(cfg *settings.Redis) {
	if cfg.PoolSize == 0 {
		cfg.PoolSize = defaultPoolSize
	}
	if cfg.MinIdleConns == 0 {
		cfg.MinIdleConns = defaultMinIdleConns
	}
	if cfg.PoolTimeout == 0 {
		cfg.PoolTimeout = defaultPoolTimeout
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.MinRetryBackoff == 0 {
		cfg.MinRetryBackoff = defaultMinRetryBackoff
	}
	if cfg.MaxRetryBackoff == 0 {
		cfg.MaxRetryBackoff = defaultMaxRetryBackoff
	}
}
