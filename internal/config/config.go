package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	TelegramToken          string        `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN                  string        `mapstructure:"DB_DSN"`
	Environment            string        `mapstructure:"ENV"`
	MetricsAddr            string        `mapstructure:"METRICS_ADDR"`
	SlotWeeksAhead         int           `mapstructure:"SLOT_WEEKS_AHEAD"`
	SlotGenerationInterval time.Duration `mapstructure:"SLOT_GENERATION_INTERVAL"`
	TxMaxRetries           uint64        `mapstructure:"TX_MAX_RETRIES"`
	RateLimitPerMinute     int           `mapstructure:"RATE_LIMIT_PER_MINUTE"`
}

// Load читает конфигурацию из окружения, предварительно подгружая envFile если он есть
func Load(envFile string) (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(envFile); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	v := viper.New()

	// Дефолтные значения, заодно регистрируют ключи для AutomaticEnv
	v.SetDefault("TELEGRAM_TOKEN", "")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("ENV", "development")
	v.SetDefault("METRICS_ADDR", "")
	v.SetDefault("SLOT_WEEKS_AHEAD", 4)
	v.SetDefault("SLOT_GENERATION_INTERVAL", 24*time.Hour)
	v.SetDefault("TX_MAX_RETRIES", 5)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 30)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.DBDSN == "" {
		return errors.New("DB_DSN is required but not set")
	}

	if c.SlotWeeksAhead <= 0 {
		return errors.New("SLOT_WEEKS_AHEAD must be positive")
	}

	if c.SlotGenerationInterval <= 0 {
		return errors.New("SLOT_GENERATION_INTERVAL must be positive")
	}

	if c.RateLimitPerMinute <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be positive")
	}

	return nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}
