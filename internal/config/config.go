package config

import (
	"errors"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	TelegramToken   string
	TelegramDebug   bool
	BaseAdminChatID int64
	DatabaseURL     string
	LogLevel        string
	MetricsAddr     string

	// Производственный календарь
	CalendarFile   string
	CalendarRegion string

	// Правила проверки заявок
	LongRequestDays int
	PastGraceDays   int
}

var instance *Config
var once sync.Once

// GetConfig - конфиг бота; без токена бот не стартует
func GetConfig() *Config {
	once.Do(func() {
		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("error loading config: %s", err.Error())
		}

		if cfg.TelegramToken == "" {
			logrus.Fatal("could not get bot token")
		}

		instance = cfg
	})

	return instance
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %s", err.Error())
	}

	cfg := &Config{
		TelegramToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramDebug:   getEnvAsBool("TELEGRAM_DEBUG", false),
		BaseAdminChatID: getEnvAsInt("BASE_ADMIN_CHAT_ID", 0),
		DatabaseURL:     getEnv("DATABASE_URL", "vacation.db"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		MetricsAddr:     getEnv("METRICS_ADDR", ""),
		CalendarFile:    getEnv("CALENDAR_FILE", ""),
		CalendarRegion:  getEnv("CALENDAR_REGION", ""),
		LongRequestDays: int(getEnvAsInt("VACATION_LONG_REQUEST_DAYS", 15)),
		PastGraceDays:   int(getEnvAsInt("VACATION_PAST_GRACE_DAYS", 1)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("could not get db url")
	}
	if c.LongRequestDays <= 0 {
		return errors.New("VACATION_LONG_REQUEST_DAYS must be positive")
	}
	if c.PastGraceDays < 0 {
		return errors.New("VACATION_PAST_GRACE_DAYS must not be negative")
	}
	return nil
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
