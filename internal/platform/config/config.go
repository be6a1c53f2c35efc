package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     slog.Level

	// Store
	PageSize         int
	SimulatedLatency time.Duration
	ReferencePolicy  string

	// Sample data
	SeedOnStart            bool
	SeedUsers              int
	SeedDepartments        []string
	SeedMinExpensesPerUser int
	SeedMaxExpensesPerUser int
	SeedRandomSeed         uint64

	// HTTP surface
	AuthEnabled        bool
	JWTSecret          string
	RateLimit          string
	CORSAllowedOrigins []string
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// SetDefaults registers every known key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PAGE_SIZE", 1000)
	v.SetDefault("SIMULATED_LATENCY", "0s")
	v.SetDefault("REFERENCE_POLICY", "strict")
	v.SetDefault("SEED_ON_START", false)
	v.SetDefault("SEED_USERS", 1000)
	v.SetDefault("SEED_DEPARTMENTS", "Engineering,Marketing,Sales,HR,Finance")
	v.SetDefault("SEED_MIN_EXPENSES_PER_USER", 5)
	v.SetDefault("SEED_MAX_EXPENSES_PER_USER", 15)
	v.SetDefault("SEED_RANDOM_SEED", 0)
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("RATE_LIMIT", "100-S")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	SetDefaults(viper.GetViper())
	viper.AutomaticEnv()
	return FromViper(viper.GetViper())
}

// FromViper builds a Config from the keys held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		PageSize:               v.GetInt("PAGE_SIZE"),
		ReferencePolicy:        strings.ToLower(v.GetString("REFERENCE_POLICY")),
		SeedOnStart:            v.GetBool("SEED_ON_START"),
		SeedUsers:              v.GetInt("SEED_USERS"),
		SeedDepartments:        splitList(v.GetString("SEED_DEPARTMENTS")),
		SeedMinExpensesPerUser: v.GetInt("SEED_MIN_EXPENSES_PER_USER"),
		SeedMaxExpensesPerUser: v.GetInt("SEED_MAX_EXPENSES_PER_USER"),
		SeedRandomSeed:         v.GetUint64("SEED_RANDOM_SEED"),
		AuthEnabled:            v.GetBool("AUTH_ENABLED"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		RateLimit:              v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	latency, err := time.ParseDuration(v.GetString("SIMULATED_LATENCY"))
	if err != nil {
		return nil, fmt.Errorf("invalid SIMULATED_LATENCY: %w", err)
	}
	cfg.SimulatedLatency = latency

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}
	if cfg.AuthEnabled && cfg.IsProduction && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set when AUTH_ENABLED is on in production")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
