package config

import (
	"os"
	"strconv"

	"gerorank/domain/simulation"
	"gerorank/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Paths    PathConfig
	Analysis AnalysisConfig
}

// DatabaseConfig holds database connection settings. A blank URL
// disables run persistence.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds API server settings
type ServerConfig struct {
	Port string
}

// PathConfig holds file system paths
type PathConfig struct {
	InputFile string
	Sheet     string
	OutputDir string
}

// AnalysisConfig holds the tunable analysis parameters
type AnalysisConfig struct {
	Scheme           string
	IntervalParams   simulation.IntervalParams
	RobustnessParams simulation.RobustnessParams
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Paths: PathConfig{
			InputFile: getEnv("INPUT_FILE", "Intervention_scores.xlsx"),
			Sheet:     getEnv("INPUT_SHEET", "Scoring"),
			OutputDir: getEnv("OUTPUT_DIR", "."),
		},
	}

	analysisConfig, err := loadAnalysisConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load analysis configuration")
	}
	config.Analysis = *analysisConfig

	return config, nil
}

func loadAnalysisConfig() (*AnalysisConfig, error) {
	interval := simulation.DefaultIntervalParams()
	robustness := simulation.DefaultRobustnessParams()

	var err error
	if interval.Trials, err = getEnvInt("MC_TRIALS", interval.Trials); err != nil {
		return nil, err
	}
	if interval.Jitter, err = getEnvFloat("MC_JITTER", interval.Jitter); err != nil {
		return nil, err
	}
	if interval.Seed, err = getEnvInt64("MC_SCORE_SEED", interval.Seed); err != nil {
		return nil, err
	}
	if interval.ClampScores, err = getEnvBool("MC_CLAMP_SCORES", interval.ClampScores); err != nil {
		return nil, err
	}
	if robustness.Trials, err = getEnvInt("ROBUSTNESS_TRIALS", robustness.Trials); err != nil {
		return nil, err
	}
	if robustness.Perturbation, err = getEnvFloat("WEIGHT_PERTURBATION", robustness.Perturbation); err != nil {
		return nil, err
	}
	if robustness.Seed, err = getEnvInt64("MC_WEIGHT_SEED", robustness.Seed); err != nil {
		return nil, err
	}

	// Fail fast before any computation starts
	if err := interval.Validate(); err != nil {
		return nil, err
	}
	if err := robustness.Validate(); err != nil {
		return nil, err
	}

	return &AnalysisConfig{
		Scheme:           getEnv("WEIGHT_SCHEME", "baseline"),
		IntervalParams:   interval,
		RobustnessParams: robustness,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer, got " + value)
	}
	return parsed, nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer, got " + value)
	}
	return parsed, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be a number, got " + value)
	}
	return parsed, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.ConfigInvalid(key + " must be a boolean, got " + value)
	}
	return parsed, nil
}
