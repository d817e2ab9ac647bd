package config

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/caarlos0/env/v6"
	"github.com/suchimauz/clinic-calendar/internal/core/ports/out"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Europe/Moscow"`
	}

	Log struct {
		Format     LogFormat `env:"LOG_FORMAT" envDefault:"console"`
		LevelValue string    `env:"LOG_LEVEL" envDefault:"info"`
		Level      out.LogLevel
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Clinic struct {
		// Дата, которую календарь считает "сегодня", берется из конфига, а не из часов
		ReferenceDate civil.Date `env:"CLINIC_REFERENCE_DATE,required"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"clinic_calendar:clinic_calendar"`
		BasicClients       []ConfigBasicClient
	}

	RabbitMQ struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED"`
		URL      string `env:"RABBITMQ_URL"`
		Queue    string `env:"RABBITMQ_QUEUE" envDefault:"clinic-calendar.appointments"`
		Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"clinic"`
		Bind     string `env:"RABBITMQ_BIND" envDefault:"clinic.clinic-calendar.appointment.#"`
	}

	Cache struct {
		Enabled  bool `env:"CACHE_ENABLED"`
		DaysSize int  `env:"CACHE_DAYS_SIZE" envDefault:"366"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if !cfg.Clinic.ReferenceDate.IsValid() {
		return nil, fmt.Errorf("CLINIC_REFERENCE_DATE is not a valid date: %q", cfg.Clinic.ReferenceDate.String())
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))
	cfg.Log.Format = LogFormat(strings.ToLower(string(cfg.Log.Format)))

	if cfg.Log.Format != LogFormatConsole && cfg.Log.Format != LogFormatJSON {
		return nil, fmt.Errorf("unknown log format: %s", cfg.Log.Format)
	}

	level, err := out.ParseLogLevel(cfg.Log.LevelValue)
	if err != nil {
		return nil, err
	}
	cfg.Log.Level = level

	// Разделение клиентов basic auth
	cfg.Auth.BasicClients = []ConfigBasicClient{}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) == 2 && parts[0] != "" {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	if cfg.RabbitMQ.Enabled && cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL is required when RABBITMQ_ENABLED is set")
	}

	if cfg.Cache.Enabled && cfg.Cache.DaysSize <= 0 {
		return nil, fmt.Errorf("CACHE_DAYS_SIZE must be positive, got %d", cfg.Cache.DaysSize)
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
