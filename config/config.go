package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig

	// Server Configuration
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// PostgreSQL - Ticket persistence, dead letters
	Postgres PostgresConfig

	// Redis - Batch progress tracking
	Redis RedisConfig

	// Kafka - Chunk transport
	Kafka KafkaConfig

	// MinIO - Accepted file archive
	MinIO MinIOConfig

	// Bulk - Ingestion pipeline tuning
	Bulk BulkConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// HTTPServerConfig is the configuration for the HTTP server
type HTTPServerConfig struct {
	Host string
	Port int
	Mode string
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// PostgresConfig is the configuration for Postgres
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Schema   string
}

// RedisConfig is the configuration for Redis
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// KafkaConfig is the configuration for Kafka
type KafkaConfig struct {
	Brokers         []string
	Topic           string
	DeadLetterTopic string
	ConsumerGroup   string
}

// MinIOConfig is the configuration for MinIO
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
}

// BulkConfig tunes the bulk ingestion pipeline.
type BulkConfig struct {
	ChunkSize           int
	MaxRecords          int
	MaxFileSizeMB       int64
	ConsumerConcurrency int
	RetryAttempts       int
	RetryBackoffSeconds int
	TrackingTTLHours    int
}

// Load loads configuration using Viper
func Load() (*Config, error) {
	// Set config file name and paths
	viper.SetConfigName("ticket-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/ticket/")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	setDefaults()

	// Read config file (optional - will use env vars if file not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Host = viper.GetString("http_server.host")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// PostgreSQL
	cfg.Postgres.Host = viper.GetString("postgres.host")
	cfg.Postgres.Port = viper.GetInt("postgres.port")
	cfg.Postgres.User = viper.GetString("postgres.user")
	cfg.Postgres.Password = viper.GetString("postgres.password")
	cfg.Postgres.DBName = viper.GetString("postgres.dbname")
	cfg.Postgres.SSLMode = viper.GetString("postgres.sslmode")
	cfg.Postgres.Schema = viper.GetString("postgres.schema")

	// Redis
	cfg.Redis.Host = viper.GetString("redis.host")
	cfg.Redis.Port = viper.GetInt("redis.port")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")

	// Kafka
	cfg.Kafka.Brokers = viper.GetStringSlice("kafka.brokers")
	cfg.Kafka.Topic = viper.GetString("kafka.topic")
	cfg.Kafka.DeadLetterTopic = viper.GetString("kafka.dead_letter_topic")
	cfg.Kafka.ConsumerGroup = viper.GetString("kafka.consumer_group")

	// MinIO
	cfg.MinIO.Endpoint = viper.GetString("minio.endpoint")
	cfg.MinIO.AccessKey = viper.GetString("minio.access_key")
	cfg.MinIO.SecretKey = viper.GetString("minio.secret_key")
	cfg.MinIO.UseSSL = viper.GetBool("minio.use_ssl")
	cfg.MinIO.Region = viper.GetString("minio.region")
	cfg.MinIO.Bucket = viper.GetString("minio.bucket")

	// Bulk pipeline
	cfg.Bulk.ChunkSize = viper.GetInt("bulk.chunk_size")
	cfg.Bulk.MaxRecords = viper.GetInt("bulk.max_records")
	cfg.Bulk.MaxFileSizeMB = viper.GetInt64("bulk.max_file_size_mb")
	cfg.Bulk.ConsumerConcurrency = viper.GetInt("bulk.consumer_concurrency")
	cfg.Bulk.RetryAttempts = viper.GetInt("bulk.retry_attempts")
	cfg.Bulk.RetryBackoffSeconds = viper.GetInt("bulk.retry_backoff_seconds")
	cfg.Bulk.TrackingTTLHours = viper.GetInt("bulk.tracking_ttl_hours")

	// Validate required fields
	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment.name", "production")

	// HTTP Server
	viper.SetDefault("http_server.host", "")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")

	// Logger
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// PostgreSQL
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.password", "postgres")
	viper.SetDefault("postgres.dbname", "postgres")
	viper.SetDefault("postgres.sslmode", "prefer")
	viper.SetDefault("postgres.schema", "tickets")

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Kafka
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.topic", "ticket.bulk.requests")
	viper.SetDefault("kafka.dead_letter_topic", "ticket.bulk.requests.DLT")
	viper.SetDefault("kafka.consumer_group", "ticket-bulk-consumers")

	// MinIO
	viper.SetDefault("minio.endpoint", "localhost:9000")
	viper.SetDefault("minio.access_key", "minioadmin")
	viper.SetDefault("minio.secret_key", "minioadmin")
	viper.SetDefault("minio.use_ssl", false)
	viper.SetDefault("minio.region", "us-east-1")
	viper.SetDefault("minio.bucket", "ticket-bulk-uploads")

	// Bulk pipeline
	viper.SetDefault("bulk.chunk_size", 100)
	viper.SetDefault("bulk.max_records", 10000)
	viper.SetDefault("bulk.max_file_size_mb", 10)
	viper.SetDefault("bulk.consumer_concurrency", 3)
	viper.SetDefault("bulk.retry_attempts", 3)
	viper.SetDefault("bulk.retry_backoff_seconds", 1)
	viper.SetDefault("bulk.tracking_ttl_hours", 24)
}

func validate(cfg *Config) error {
	if len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required")
	}
	if cfg.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required")
	}
	if cfg.Kafka.DeadLetterTopic == "" {
		return fmt.Errorf("kafka.dead_letter_topic is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return fmt.Errorf("kafka.consumer_group is required")
	}
	if cfg.Bulk.ChunkSize <= 0 {
		return fmt.Errorf("bulk.chunk_size must be positive")
	}
	if cfg.Bulk.MaxRecords <= 0 {
		return fmt.Errorf("bulk.max_records must be positive")
	}
	if cfg.Bulk.MaxFileSizeMB <= 0 {
		return fmt.Errorf("bulk.max_file_size_mb must be positive")
	}
	if cfg.Bulk.ConsumerConcurrency <= 0 {
		return fmt.Errorf("bulk.consumer_concurrency must be positive")
	}
	return nil
}
