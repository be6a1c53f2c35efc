package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 1000, cfg.PageSize)
	assert.Equal(t, "strict", cfg.ReferencePolicy)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Zero(t, cfg.SimulatedLatency)
	assert.Equal(t, []string{"Engineering", "Marketing", "Sales", "HR", "Finance"}, cfg.SeedDepartments)
	assert.Equal(t, "100-S", cfg.RateLimit)
	assert.Len(t, cfg.CORSAllowedOrigins, 2)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("SIMULATED_LATENCY", "250ms")
	v.Set("LOG_LEVEL", "DEBUG")
	v.Set("REFERENCE_POLICY", "Permissive")
	v.Set("SEED_DEPARTMENTS", " Ops , ,Legal ")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.SimulatedLatency)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "permissive", cfg.ReferencePolicy)
	assert.Equal(t, []string{"Ops", "Legal"}, cfg.SeedDepartments)
}

func TestFromViper_Invalid(t *testing.T) {
	cases := map[string]any{
		"SIMULATED_LATENCY": "soon",
		"LOG_LEVEL":         "chatty",
		"PAGE_SIZE":         0,
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(key, value)
			_, err := FromViper(v)
			assert.Error(t, err)
		})
	}

	v := viper.New()
	SetDefaults(v)
	v.Set("AUTH_ENABLED", true)
	v.Set("IS_PRODUCTION", true)
	_, err := FromViper(v)
	assert.ErrorContains(t, err, "JWT_SECRET")
}
