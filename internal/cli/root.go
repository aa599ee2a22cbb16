package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"vacation-tracker/internal/config"
	"vacation-tracker/internal/models"
	"vacation-tracker/internal/repository"
	"vacation-tracker/internal/service"
	"vacation-tracker/pkg/logger"
)

// ─── vacationctl ────────────────────────────────────────────────────────────
// Административные операции движка отпусков без бота: календарь, политики,
// массовое назначение балансов, пересчет и проверка дат.

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides LOG_LEVEL)")
}

var rootCmd = &cobra.Command{
	Use:   "vacationctl",
	Short: "Vacation balance and request administration",
	Long: `vacationctl manages the vacation engine store directly: production calendar,
yearly policies, bulk balance assignment and recalculation. Configuration is read
from .env and the environment, the same way the bot reads it.`,
	SilenceUsage: true,
}

// Execute запускает корневую команду
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openService открывает базу и собирает движок; close закрывает соединение
func openService(cmd *cobra.Command) (*service.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if dsn, _ := cmd.Flags().GetString("db"); dsn != "" {
		cfg.DatabaseURL = dsn
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	log := logger.New(cfg.LogLevel)
	log.SetOutput(cmd.ErrOrStderr())

	db, err := repository.OpenSQLite(cfg.DatabaseURL, log)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("database handle: %w", err)
	}

	repo, err := repository.NewRepository(db, log)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("init repositories: %w", err)
	}

	svc := service.NewService(repo, service.Options{
		Region: cfg.CalendarRegion,
		Validator: service.ValidatorConfig{
			LongRequestDays: cfg.LongRequestDays,
			PastGraceDays:   cfg.PastGraceDays,
		},
		Logger: log,
	})

	return svc, func() { _ = sqlDB.Close() }, nil
}

func parseIDArg(name, value string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q: expected positive integer", name, value)
	}
	return uint(id), nil
}

func parseYearArg(value string) (int, error) {
	year, err := strconv.Atoi(value)
	if err != nil || year < 2000 || year > 2100 {
		return 0, fmt.Errorf("invalid year %q: expected 2000..2100", value)
	}
	return year, nil
}

func parseDateArg(value string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return models.DateOnly(t), nil
}
