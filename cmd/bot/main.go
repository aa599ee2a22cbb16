package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"vacation-tracker/internal/config"
	"vacation-tracker/internal/handler"
	"vacation-tracker/internal/metrics"
	"vacation-tracker/internal/repository"
	"vacation-tracker/internal/service"
	"vacation-tracker/pkg/logger"
	"vacation-tracker/pkg/telegram"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetConfig()
	logrus.Info("Config initialized...")

	log := logger.New(cfg.LogLevel)

	db, err := repository.OpenSQLite(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get database instance:", err)
	}

	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create repositories")
	}

	svc := service.NewService(repo, service.Options{
		Region: cfg.CalendarRegion,
		Validator: service.ValidatorConfig{
			LongRequestDays: cfg.LongRequestDays,
			PastGraceDays:   cfg.PastGraceDays,
		},
		Metrics: metrics.New(prometheus.DefaultRegisterer),
		Logger:  log,
	})

	// Загружаем производственный календарь, если он указан
	if cfg.CalendarFile != "" {
		count, err := svc.LoadCalendar(cfg.CalendarFile)
		if err != nil {
			log.Warnf("Failed to load calendar from %s: %v", cfg.CalendarFile, err)
		} else {
			log.Infof("Loaded %d calendar days from %s", count, cfg.CalendarFile)
		}
	}

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Infof("Metrics listening on %s", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("Metrics server stopped")
			}
		}()
	}

	// Создаем клиент Telegram
	client, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramDebug)
	if err != nil {
		log.Fatal("Failed to create Telegram client:", err)
	}

	log.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(client, svc, cfg, log)

	// Настраиваем канал обновлений
	updates := client.Bot.GetUpdatesChan(client.UpdateConfig)

	// Обработка сигналов для graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Запускаем обработку сообщений
	go botHandler.HandleUpdates(updates)

	log.Info("Bot started. Press Ctrl+C to stop.")
	<-stop

	client.Bot.StopReceivingUpdates()

	// Закрываем соединение с БД
	if err := sqlDB.Close(); err != nil {
		log.Infof("Error closing database: %v", err)
	}

	log.Info("Bot stopped gracefully")
}
