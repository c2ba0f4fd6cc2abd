package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds runtime configuration for the regimen optimizer: database
// connectivity, default solve mode, solver weight overrides, and logging.
type Config struct {
	Env         string `mapstructure:"ENV"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	SolverMode  string `mapstructure:"SOLVER_MODE"`

	WeightCount     float64 `mapstructure:"WEIGHT_COUNT"`
	WeightDirect    float64 `mapstructure:"WEIGHT_DIRECT"`
	WeightMetabolic float64 `mapstructure:"WEIGHT_METABOLIC"`
	WeightSafety    float64 `mapstructure:"WEIGHT_SAFETY"`
	WeightPrice     float64 `mapstructure:"WEIGHT_PRICE"`
	WeightCover     float64 `mapstructure:"WEIGHT_COVER"`
	WeightConflict  float64 `mapstructure:"WEIGHT_CONFLICT"`
	WeightRoute     float64 `mapstructure:"WEIGHT_ROUTE"`
}

// Load reads configuration from environment variables (and an optional
// .env file in the working directory). Solver weight defaults match the
// reference weights: 1000/500/300/5.0/0.05 for the ILP objective and
// 1000/500/5.0/0.05 for the greedy score.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SOLVER_MODE", "ilp")
	v.SetDefault("WEIGHT_COUNT", 1000.0)
	v.SetDefault("WEIGHT_DIRECT", 500.0)
	v.SetDefault("WEIGHT_METABOLIC", 300.0)
	v.SetDefault("WEIGHT_SAFETY", 5.0)
	v.SetDefault("WEIGHT_PRICE", 0.05)
	v.SetDefault("WEIGHT_COVER", 1000.0)
	v.SetDefault("WEIGHT_CONFLICT", 500.0)
	v.SetDefault("WEIGHT_ROUTE", 0.0)

	for _, key := range []string{
		"ENV", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS", "LOG_LEVEL", "SOLVER_MODE",
		"WEIGHT_COUNT", "WEIGHT_DIRECT", "WEIGHT_METABOLIC", "WEIGHT_SAFETY", "WEIGHT_PRICE",
		"WEIGHT_COVER", "WEIGHT_CONFLICT", "WEIGHT_ROUTE",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	// Try reading .env file, but don't fail if missing.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is runnable.
func (c *Config) Validate() error {
	if c.SolverMode != "ilp" && c.SolverMode != "greedy" {
		return fmt.Errorf("SOLVER_MODE must be \"ilp\" or \"greedy\", got %q", c.SolverMode)
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns)
	}
	if c.IsDev() {
		log.Println("running with ENV=development")
	}
	return nil
}
