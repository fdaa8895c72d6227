package consumer

import (
	"context"
	"fmt"
	"time"

	bulkConsumer "ticket-srv/internal/bulk/delivery/kafka/consumer"
	bulkProducer "ticket-srv/internal/bulk/delivery/kafka/producer"
	bulkPostgre "ticket-srv/internal/bulk/repository/postgre"
	bulkRedis "ticket-srv/internal/bulk/repository/redis"
	bulkUsecase "ticket-srv/internal/bulk/usecase"
)

// domainConsumers holds references to all domain consumers for cleanup
type domainConsumers struct {
	bulkConsumer *bulkConsumer.Consumer
}

// setupDomains initializes all domain layers (repositories, usecases, consumers)
func (srv *ConsumerServer) setupDomains(ctx context.Context) (*domainConsumers, error) {
	trackingTTL := time.Duration(srv.bulkConfig.TrackingTTLHours) * time.Hour

	postgreRepo := bulkPostgre.New(srv.postgresDB, srv.l)
	tracker := bulkRedis.New(srv.redisClient, srv.l, trackingTTL)
	producer := bulkProducer.New(srv.l, srv.kafkaProducer, srv.kafkaConfig.DeadLetterTopic)

	// Consumers never archive uploads, no storage client needed
	uc := bulkUsecase.New(srv.l, postgreRepo, tracker, producer, nil, bulkUsecase.Config{
		ChunkSize:   srv.bulkConfig.ChunkSize,
		MaxRecords:  srv.bulkConfig.MaxRecords,
		MaxFileSize: srv.bulkConfig.MaxFileSizeMB << 20,
		TrackingTTL: trackingTTL,
	})

	bulkCons, err := bulkConsumer.New(bulkConsumer.Config{
		Logger:        srv.l,
		KafkaConfig:   srv.kafkaConfig,
		UseCase:       uc,
		Producer:      producer,
		DeadLetters:   postgreRepo,
		Concurrency:   srv.bulkConfig.ConsumerConcurrency,
		RetryAttempts: srv.bulkConfig.RetryAttempts,
		RetryBackoff:  time.Duration(srv.bulkConfig.RetryBackoffSeconds) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bulk consumer: %w", err)
	}

	srv.l.Infof(ctx, "Bulk domain initialized")

	return &domainConsumers{
		bulkConsumer: bulkCons,
	}, nil
}

// startConsumers starts all domain consumers in background goroutines
func (srv *ConsumerServer) startConsumers(ctx context.Context, consumers *domainConsumers) error {
	if err := consumers.bulkConsumer.ConsumeBulkRequests(ctx); err != nil {
		return fmt.Errorf("failed to start bulk consumer: %w", err)
	}

	srv.l.Infof(ctx, "All consumers started successfully")
	return nil
}

// stopConsumers gracefully stops all domain consumers
func (srv *ConsumerServer) stopConsumers(ctx context.Context, consumers *domainConsumers) {
	if consumers.bulkConsumer != nil {
		if err := consumers.bulkConsumer.Close(); err != nil {
			srv.l.Errorf(ctx, "Error closing bulk consumer: %v", err)
		}
	}

	srv.l.Infof(ctx, "All consumers stopped")
}
