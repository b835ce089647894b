package config

import (
	"os"
	"strconv"

	"gomonte/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Lab    LabConfig
	Report ReportConfig
	Data   DataConfig
}

// LabConfig holds simulation defaults
type LabConfig struct {
	Seed          int64
	Draws         int
	SampleSizes   []int
	Replicates    int
	ScalingSizes  []int
	ScalingTrials int
	Workers       int64
}

// ReportConfig holds rendering settings
type ReportConfig struct {
	HistogramBins int
	BarWidth      int
	MarkdownPath  string
	HTMLPath      string
	JSONPath      string
}

// DataConfig holds dataset-loading settings
type DataConfig struct {
	File  string
	Sheet string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Lab: LabConfig{
			Seed:          getEnvInt64OrDefault("LAB_SEED", 42),
			Draws:         getEnvIntOrDefault("LAB_DRAWS", 100000),
			SampleSizes:   getEnvIntsOrDefault("LAB_SAMPLE_SIZES", []int{5, 30, 100}),
			Replicates:    getEnvIntOrDefault("LAB_REPLICATES", 2000),
			ScalingSizes:  getEnvIntsOrDefault("LAB_SCALING_SIZES", []int{16, 64, 256, 1024, 4096, 16384}),
			ScalingTrials: getEnvIntOrDefault("LAB_SCALING_TRIALS", 50),
			Workers:       int64(getEnvIntOrDefault("LAB_WORKERS", 4)),
		},
		Report: ReportConfig{
			HistogramBins: getEnvIntOrDefault("REPORT_BINS", 20),
			BarWidth:      getEnvIntOrDefault("REPORT_BAR_WIDTH", 50),
			MarkdownPath:  getEnvOrDefault("REPORT_MARKDOWN", ""),
			HTMLPath:      getEnvOrDefault("REPORT_HTML", ""),
			JSONPath:      getEnvOrDefault("REPORT_JSON", ""),
		},
		Data: DataConfig{
			File:  getEnvOrDefault("DATA_FILE", ""),
			Sheet: getEnvOrDefault("DATA_SHEET", "Sheet1"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Lab.Draws < 1 {
		return errors.ConfigInvalid("LAB_DRAWS must be at least 1")
	}
	if config.Lab.Replicates < 2 {
		return errors.ConfigInvalid("LAB_REPLICATES must be at least 2")
	}
	if config.Lab.ScalingTrials < 1 {
		return errors.ConfigInvalid("LAB_SCALING_TRIALS must be at least 1")
	}
	if config.Lab.Workers < 1 {
		return errors.ConfigInvalid("LAB_WORKERS must be at least 1")
	}
	if config.Report.HistogramBins < 1 {
		return errors.ConfigInvalid("REPORT_BINS must be at least 1")
	}
	if config.Report.BarWidth < 10 {
		return errors.ConfigInvalid("REPORT_BAR_WIDTH must be at least 10")
	}
	for _, n := range config.Lab.SampleSizes {
		if n < 2 {
			return errors.ConfigInvalid("LAB_SAMPLE_SIZES entries must be at least 2")
		}
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvIntsOrDefault parses a comma-separated list of integers.
func getEnvIntsOrDefault(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []int
	start := 0
	for i := 0; i <= len(value); i++ {
		if i == len(value) || value[i] == ',' {
			n, err := strconv.Atoi(value[start:i])
			if err != nil {
				return defaultValue
			}
			out = append(out, n)
			start = i + 1
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
