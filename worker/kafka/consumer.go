package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

var ErrEmptyJob = errors.New("job message has no id or files")

type MessageHandler func(ctx context.Context, msg *JobMessage) error

// JobMessage is the payload the API publishes for each submitted job.
type JobMessage struct {
	JobID          string   `json:"job_id"`
	TraceID        string   `json:"trace_id"`
	Files          []string `json:"files"`
	OutputDir      string   `json:"output_dir"`
	Format         string   `json:"format"`
	Preset         string   `json:"preset"`
	SkipAll        bool     `json:"skip_all"`
	SkipExtensions []string `json:"skip_extensions,omitempty"`
}

func DecodeJobMessage(data []byte) (*JobMessage, error) {
	var msg JobMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode job message: %w", err)
	}
	if msg.JobID == "" || len(msg.Files) == 0 {
		return nil, ErrEmptyJob
	}
	return &msg, nil
}

type Consumer struct {
	consumer sarama.ConsumerGroup
	logger   *zap.Logger
}

func NewConsumer(brokers []string, groupID string, logger *zap.Logger) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	c, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, err
	}

	return &Consumer{consumer: c, logger: logger}, nil
}

type consumerHandler struct {
	fn     MessageHandler
	ctx    context.Context
	logger *zap.Logger
}

func (h *consumerHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		jobMsg, err := DecodeJobMessage(msg.Value)
		if err != nil {
			h.logger.Warn("Dropping malformed message",
				zap.Int32("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			session.MarkMessage(msg, "")
			continue
		}
		if err := h.fn(h.ctx, jobMsg); err != nil {
			h.logger.Error("Failed to handle job",
				zap.String("job_id", jobMsg.JobID),
				zap.String("trace_id", jobMsg.TraceID),
				zap.Error(err),
			)
		}
		session.MarkMessage(msg, "")
	}
	return nil
}

// Consume blocks until ctx is done or the group fails. Consume on a
// consumer group returns after each rebalance, so it is called in a loop.
func (c *Consumer) Consume(ctx context.Context, topic string, handler MessageHandler) error {
	h := &consumerHandler{fn: handler, ctx: ctx, logger: c.logger}
	for {
		if err := c.consumer.Consume(ctx, []string{topic}, h); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *Consumer) Close() error {
	return c.consumer.Close()
}
