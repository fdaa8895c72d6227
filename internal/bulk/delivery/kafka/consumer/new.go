package consumer

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"ticket-srv/config"
	"ticket-srv/internal/bulk"
	bulkKafka "ticket-srv/internal/bulk/delivery/kafka"
	repo "ticket-srv/internal/bulk/repository"
	pkgKafka "ticket-srv/pkg/kafka"
	"ticket-srv/pkg/log"
)

// Config holds the configuration for the bulk consumer
type Config struct {
	Logger      log.Logger
	KafkaConfig config.KafkaConfig
	UseCase     bulk.UseCase
	Producer    bulk.Producer
	DeadLetters repo.DeadLetterRepository

	Concurrency   int
	RetryAttempts int
	RetryBackoff  time.Duration
}

// Consumer manages the Kafka consumer group for the bulk domain
type Consumer struct {
	l           log.Logger
	kafkaConfig config.KafkaConfig
	uc          bulk.UseCase
	producer    bulk.Producer
	deadLetters repo.DeadLetterRepository

	concurrency   int
	retryAttempts int
	retryBackoff  time.Duration

	bulkRequestsGroups []pkgKafka.IConsumer
	members            errgroup.Group
}

// New creates a new bulk consumer
func New(cfg Config) (*Consumer, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.UseCase == nil {
		return nil, fmt.Errorf("usecase is required")
	}
	if cfg.Producer == nil {
		return nil, fmt.Errorf("producer is required")
	}
	if cfg.DeadLetters == nil {
		return nil, fmt.Errorf("dead letter repository is required")
	}
	if len(cfg.KafkaConfig.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	if cfg.KafkaConfig.Topic == "" {
		cfg.KafkaConfig.Topic = bulkKafka.TopicBulkRequests
	}
	if cfg.KafkaConfig.ConsumerGroup == "" {
		cfg.KafkaConfig.ConsumerGroup = bulkKafka.ConsumerGroupBulkRequests
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 3
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = time.Second
	}

	return &Consumer{
		l:             cfg.Logger,
		kafkaConfig:   cfg.KafkaConfig,
		uc:            cfg.UseCase,
		producer:      cfg.Producer,
		deadLetters:   cfg.DeadLetters,
		concurrency:   cfg.Concurrency,
		retryAttempts: cfg.RetryAttempts,
		retryBackoff:  cfg.RetryBackoff,
	}, nil
}

// Close closes all consumer group members and waits for their sessions to
// drain.
func (c *Consumer) Close() error {
	var closeErr error
	for _, group := range c.bulkRequestsGroups {
		if err := group.Close(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to close bulk requests group: %w", err)
		}
	}
	_ = c.members.Wait()
	return closeErr
}

// createConsumerGroup creates a new Kafka consumer group
func (c *Consumer) createConsumerGroup(groupID string) (pkgKafka.IConsumer, error) {
	group, err := pkgKafka.NewConsumer(pkgKafka.ConsumerConfig{
		Brokers: c.kafkaConfig.Brokers,
		GroupID: groupID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group %s: %w", groupID, err)
	}
	return group, nil
}
