package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	bulkHTTP "ticket-srv/internal/bulk/delivery/http"
	bulkProducer "ticket-srv/internal/bulk/delivery/kafka/producer"
	bulkPostgre "ticket-srv/internal/bulk/repository/postgre"
	bulkRedis "ticket-srv/internal/bulk/repository/redis"
	bulkUsecase "ticket-srv/internal/bulk/usecase"
)

// setupBulkDomain initializes the bulk domain (repo -> usecase -> delivery)
func (srv *HTTPServer) setupBulkDomain(r *gin.RouterGroup) error {
	trackingTTL := time.Duration(srv.config.Bulk.TrackingTTLHours) * time.Hour

	// Repositories
	postgreRepo := bulkPostgre.New(srv.postgresDB, srv.l)
	tracker := bulkRedis.New(srv.redisClient, srv.l, trackingTTL)

	// Kafka producer delivery
	producer := bulkProducer.New(srv.l, srv.kafkaProducer, srv.config.Kafka.DeadLetterTopic)

	// UseCase
	uc := bulkUsecase.New(srv.l, postgreRepo, tracker, producer, srv.minioClient, bulkUsecase.Config{
		ChunkSize:     srv.config.Bulk.ChunkSize,
		MaxRecords:    srv.config.Bulk.MaxRecords,
		MaxFileSize:   srv.config.Bulk.MaxFileSizeMB << 20,
		TrackingTTL:   trackingTTL,
		ArchiveBucket: srv.config.MinIO.Bucket,
	})
	srv.bulkUseCase = uc

	// HTTP handler
	handler := bulkHTTP.New(srv.l, uc)

	// Register routes
	handler.RegisterRoutes(r)

	srv.l.Infof(context.Background(), "Bulk domain registered")
	return nil
}
