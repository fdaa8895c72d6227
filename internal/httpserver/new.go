package httpserver

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"

	"ticket-srv/config"
	"ticket-srv/internal/bulk"
	pkgKafka "ticket-srv/pkg/kafka"
	"ticket-srv/pkg/log"
	pkgMinio "ticket-srv/pkg/minio"
	pkgRedis "ticket-srv/pkg/redis"
)

type HTTPServer struct {
	// Server Configuration
	gin         *gin.Engine
	l           log.Logger
	host        string
	port        int
	mode        string
	environment string

	// Application Configuration
	config *config.Config

	// Infrastructure clients
	postgresDB    *sql.DB
	redisClient   pkgRedis.IRedis
	kafkaProducer pkgKafka.IProducer
	minioClient   pkgMinio.IMinIO

	// Domain wiring (populated by mapHandlers)
	bulkUseCase bulk.UseCase
}

type Config struct {
	// Server Configuration
	Logger      log.Logger
	Host        string
	Port        int
	Mode        string
	Environment string

	// Application Configuration
	Config *config.Config

	// Infrastructure clients
	PostgresDB    *sql.DB
	RedisClient   pkgRedis.IRedis
	KafkaProducer pkgKafka.IProducer
	MinIOClient   pkgMinio.IMinIO
}

// New creates a new HTTPServer instance with the provided configuration.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.New(),
		host:        cfg.Host,
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,

		config: cfg.Config,

		postgresDB:    cfg.PostgresDB,
		redisClient:   cfg.RedisClient,
		kafkaProducer: cfg.KafkaProducer,
		minioClient:   cfg.MinIOClient,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	// host can be empty (listen on all interfaces)
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.config == nil {
		return errors.New("config is required")
	}
	if srv.postgresDB == nil {
		return errors.New("postgresDB is required")
	}
	if srv.redisClient == nil {
		return errors.New("redisClient is required")
	}
	if srv.kafkaProducer == nil {
		return errors.New("kafkaProducer is required")
	}
	// minioClient is optional; uploads are accepted without archiving
	return nil
}
