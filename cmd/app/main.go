package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/suchimauz/clinic-calendar/internal/adapters/in/http"
	"github.com/suchimauz/clinic-calendar/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/clinic-calendar/internal/adapters/out/cache"
	"github.com/suchimauz/clinic-calendar/internal/adapters/out/logger"
	"github.com/suchimauz/clinic-calendar/internal/config"
	"github.com/suchimauz/clinic-calendar/internal/core/calendar"
	"github.com/suchimauz/clinic-calendar/internal/core/ports/out"
	"github.com/suchimauz/clinic-calendar/internal/core/services"
)

func main() {
	// .env необязателен, переменные окружения имеют приоритет
	_ = godotenv.Load()

	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := newLogger(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	appLogger := mainLogger.WithModule("Main")

	appLogger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"referenceDate":   cfg.Clinic.ReferenceDate.String(),
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	var cachePort out.CachePort
	if cfg.Cache.Enabled {
		cacheAdapter, err := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
		if err != nil {
			appLogger.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cachePort = cacheAdapter
	}

	// Календарь живет все время работы процесса
	clinicCalendarService := services.NewClinicCalendarService(
		calendar.NewClinicCalendar(cfg.Clinic.ReferenceDate),
		cachePort,
		mainLogger,
	)

	// Настройка HTTP сервера
	router := gin.Default()
	controller := http.NewClinicCalendarController(
		clinicCalendarService,
		cfg,
		mainLogger.WithModule("HttpController"),
	)
	controller.RegisterRoutes(router)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Настройка RabbitMQ слушателя только если он включен
	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewAppointmentListener(
			clinicCalendarService,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			appLogger.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			appLogger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				appLogger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		appLogger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			appLogger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	appLogger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	if zapLogger, ok := mainLogger.(*logger.ZapLogger); ok {
		_ = zapLogger.Sync()
	}
}

func newLogger(cfg *config.Config) (out.LoggerPort, error) {
	if cfg.Log.Format == config.LogFormatJSON {
		return logger.NewProductionZapLogger(cfg.Log.Level)
	}
	return logger.NewConsoleLogger(cfg.App.Timezone, cfg.Log.Level)
}
