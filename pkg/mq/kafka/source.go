// Package kafka feeds Kafka consumer-group messages into a bridge, exposing
// a partition-ordered pull sequence to a single consumer goroutine.
package kafka

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-sequence/pkg/sequence"
	"github.com/huynhanx03/go-sequence/pkg/sequence/bridge"
	"github.com/huynhanx03/go-sequence/pkg/settings"
	"github.com/huynhanx03/go-sequence/pkg/utils"
)

// Source consumes a Kafka consumer group and pushes every received message
// into a bridge. The pull side is obtained from Sequence.
type Source struct {
	bridge *bridge.Bridge[*sarama.ConsumerMessage]
	group  sarama.ConsumerGroup
	topics []string
	log    *zap.Logger
}

// NewSource creates a consumer-group source from cfg.
func NewSource(cfg settings.Kafka, log *zap.Logger) (*Source, error) {
	sc := sarama.NewConfig()
	sc.Consumer.Offsets.Initial = sarama.OffsetOldest
	if cfg.Timeout > 0 {
		sc.Net.DialTimeout = utils.ToDuration(cfg.Timeout)
	}
	if cfg.MaxRetries > 0 {
		sc.Metadata.Retry.Max = cfg.MaxRetries
	}
	if cfg.RetryBackoff > 0 {
		sc.Metadata.Retry.Backoff = utils.ToDurationMs(cfg.RetryBackoff)
	}
	if cfg.MaxProcessingTime > 0 {
		sc.Consumer.MaxProcessingTime = utils.ToDurationMs(cfg.MaxProcessingTime)
	}

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, sc)
	if err != nil {
		return nil, errors.Wrap(err, "kafka: create consumer group")
	}

	return &Source{
		bridge: bridge.New[*sarama.ConsumerMessage](),
		group:  group,
		topics: cfg.Topics,
		log:    log,
	}, nil
}

// Sequence returns the pull side of the source.
func (s *Source) Sequence() sequence.Sequence[*sarama.ConsumerMessage] {
	return s.bridge
}

// Run joins the consumer group and pushes messages until ctx is cancelled or
// the group fails. The bridge is closed on return, so the pull side observes
// end-of-input after the last delivered message.
func (s *Source) Run(ctx context.Context) error {
	defer s.bridge.Close()

	handler := &pushHandler{bridge: s.bridge}
	for {
		if err := s.group.Consume(ctx, s.topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			s.log.Error("kafka: consume failed", zap.Error(err))
			return errors.Wrap(err, "kafka: consume")
		}
		// Rebalance: loop and rejoin unless we are shutting down.
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Close leaves the consumer group.
func (s *Source) Close() error {
	return errors.Wrap(s.group.Close(), "kafka: close consumer group")
}

// pushHandler adapts the consumer-group callback contract to bridge pushes.
type pushHandler struct {
	bridge *bridge.Bridge[*sarama.ConsumerMessage]
}

var _ sarama.ConsumerGroupHandler = (*pushHandler)(nil)

func (h *pushHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *pushHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *pushHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		h.bridge.Add(msg)
		sess.MarkMessage(msg, "")
	}
	return nil
}
