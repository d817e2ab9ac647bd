package config

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/clinic-calendar/internal/core/ports/out"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("CLINIC_REFERENCE_DATE", "2018-08-26")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, civil.Date{Year: 2018, Month: 8, Day: 26}, cfg.Clinic.ReferenceDate)
	assert.Equal(t, EnvLocal, cfg.App.Env)
	assert.True(t, cfg.IsLocal())
	assert.Equal(t, LogFormatConsole, cfg.Log.Format)
	assert.Equal(t, out.LogLevelInfo, cfg.Log.Level)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, []ConfigBasicClient{{Username: "clinic_calendar", Password: "clinic_calendar"}}, cfg.Auth.BasicClients)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 366, cfg.Cache.DaysSize)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("CLINIC_REFERENCE_DATE", "2018-09-01")
	t.Setenv("APP_ENV", "PRODUCTION")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("AUTH_BASIC_CLIENTS", "desk:secret, nurse:pa:ss,broken")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_DAYS_SIZE", "31")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsNotLocal())
	assert.Equal(t, LogFormatJSON, cfg.Log.Format)
	assert.Equal(t, out.LogLevelDebug, cfg.Log.Level)
	assert.Equal(t, []ConfigBasicClient{
		{Username: "desk", Password: "secret"},
		{Username: "nurse", Password: "pa:ss"},
	}, cfg.Auth.BasicClients)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 31, cfg.Cache.DaysSize)
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing reference date", map[string]string{}},
		{"malformed reference date", map[string]string{"CLINIC_REFERENCE_DATE": "8/26/2018"}},
		{"unknown log format", map[string]string{"CLINIC_REFERENCE_DATE": "2018-08-26", "LOG_FORMAT": "xml"}},
		{"unknown log level", map[string]string{"CLINIC_REFERENCE_DATE": "2018-08-26", "LOG_LEVEL": "trace"}},
		{"rabbitmq without url", map[string]string{"CLINIC_REFERENCE_DATE": "2018-08-26", "RABBITMQ_ENABLED": "true"}},
		{"empty cache", map[string]string{"CLINIC_REFERENCE_DATE": "2018-08-26", "CACHE_ENABLED": "true", "CACHE_DAYS_SIZE": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CLINIC_REFERENCE_DATE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}
