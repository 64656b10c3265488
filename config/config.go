package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Settings struct {
	HTTPAddr string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	RedisHost   string
	RedisPort   string
	ActivityTTL time.Duration

	KafkaBroker       string
	KafkaTopic        string
	KafkaGroupID      string
	KafkaBatchTimeout time.Duration

	LogLevel  string
	LogFormat string

	PublicBaseURL           string
	StrictStatusTransitions bool
	NotificationChannel     string
}

func Load() Settings {
	return Settings{
		HTTPAddr:                getEnv("HTTP_ADDR", ":8081"),
		DBHost:                  getEnv("DB_HOST", "localhost"),
		DBPort:                  getEnv("DB_PORT", "5432"),
		DBName:                  getEnv("DB_NAME", "restaurant"),
		DBUser:                  getEnv("DB_USER", "postgres"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBSSLMode:               getEnv("DB_SSLMODE", "disable"),
		RedisHost:               getEnv("REDIS_HOST", "localhost"),
		RedisPort:               getEnv("REDIS_PORT", "6379"),
		ActivityTTL:             getDuration("ACTIVITY_TTL", 7*24*time.Hour),
		KafkaBroker:             getEnv("KAFKA_BROKER", "localhost:9092"),
		KafkaTopic:              getEnv("KAFKA_TOPIC", "restaurant-lifecycle"),
		KafkaGroupID:            getEnv("KAFKA_GROUP_ID", "notification-worker"),
		KafkaBatchTimeout:       getDuration("KAFKA_BATCH_TIMEOUT", 50*time.Millisecond),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFormat:               getEnv("LOG_FORMAT", "json"),
		PublicBaseURL:           getEnv("PUBLIC_BASE_URL", "http://localhost:8081"),
		StrictStatusTransitions: getBool("STRICT_STATUS_TRANSITIONS", false),
		NotificationChannel:     getEnv("NOTIFICATION_CHANNEL", "in_app"),
	}
}

func (s Settings) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.DBHost, s.DBPort, s.DBUser, s.DBPassword, s.DBName, s.DBSSLMode)
}

func MustInitPostgres(s Settings, logger *zap.Logger) *sql.DB {
	db, err := sql.Open("postgres", s.PostgresDSN())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err = db.Ping(); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(s Settings, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: s.RedisHost + ":" + s.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	return client
}

func NewKafkaReader(s Settings) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{s.KafkaBroker},
		Topic:   s.KafkaTopic,
		GroupID: s.KafkaGroupID,
	})
}

// NewKafkaWriter returns an async writer: WriteMessages only enqueues, and
// delivery failures surface through Completion.
func NewKafkaWriter(s Settings, logger *zap.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(s.KafkaBroker),
		Topic:        s.KafkaTopic,
		Balancer:     &kafka.Hash{},
		Async:        true,
		BatchTimeout: s.KafkaBatchTimeout,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warn("failed to deliver lifecycle events",
					zap.Int("messages", len(messages)), zap.Error(err))
			}
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
