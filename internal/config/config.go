package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// devJWTSecret — запасной секрет для локальной разработки.
// В любом реальном деплое JWT_SECRET обязан быть задан.
const devJWTSecret = "dev-secret"

// Config хранит все конфигурационные параметры приложения.
// Заполняется один раз при старте и дальше только читается.
type Config struct {
	DatabaseURL  string `env:"DATABASE_URL,required"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"eastlink"`
	ServerPort   string `env:"SERVER_PORT" envDefault:"8080"`

	JWTSecret      string        `env:"JWT_SECRET"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"168h"` // 7 дней
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Настройки для S3/MinIO (хранилище медиафайлов)
	Media struct {
		Endpoint        string `env:"MEDIA_ENDPOINT"`
		AccessKeyID     string `env:"MEDIA_ACCESS_KEY_ID"`
		SecretAccessKey string `env:"MEDIA_SECRET_ACCESS_KEY"`
		UseSSL          bool   `env:"MEDIA_USE_SSL"`
		BucketName      string `env:"MEDIA_BUCKET_NAME" envDefault:"eastlink-media"`
		Region          string `env:"MEDIA_REGION" envDefault:"us-east-1"`
		PublicBaseURL   string `env:"MEDIA_PUBLIC_BASE_URL"`
	}

	RabbitMQ struct {
		URL       string `env:"RABBITMQ_URL"`
		QueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"update_posted_queue"`
	}
}

// DevSecretInUse сообщает, что секрет подписи не был задан явно.
func (c *Config) DevSecretInUse() bool {
	return c.JWTSecret == devJWTSecret
}

// MediaEnabled — хранилище медиа сконфигурировано.
func (c *Config) MediaEnabled() bool {
	return c.Media.Endpoint != "" && c.Media.AccessKeyID != "" && c.Media.SecretAccessKey != ""
}

// QueueEnabled — брокер сообщений сконфигурирован.
func (c *Config) QueueEnabled() bool {
	return c.RabbitMQ.URL != ""
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = devJWTSecret
	}

	return &cfg, nil
}
