package app

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config описывает настройки приложения, читаемые из окружения
// с префиксом SHOP (например SHOP_HTTP_ADDR).
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	OpsAddr  string `envconfig:"OPS_ADDR" default:":9090"`

	PostgresDSN  string `envconfig:"POSTGRES_DSN"`
	RedisAddr    string `envconfig:"REDIS_ADDR"`
	KafkaBrokers string `envconfig:"KAFKA_BROKERS"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`

	MailFrom string `envconfig:"MAIL_FROM" default:"orders@shop.example"`
}

// LoadConfig читает конфигурацию из переменных окружения.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("shop", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig возвращает конфигурацию с базовыми адресами
// и in-memory зависимостями (без Postgres, Redis и Kafka).
func DefaultConfig() Config {
	return Config{
		HTTPAddr: ":8080",
		OpsAddr:  ":9090",
		SMTPPort: 587,
		MailFrom: "orders@shop.example",
	}
}
