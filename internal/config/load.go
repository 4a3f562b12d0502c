package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. PMS_SERVER_PORT or PMS_STORAGE_DRIVER.
const EnvPrefix = "PMS"

// Load configuration from a .env file, environment variables and optionally
// a config.yaml in the working directory.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.file_path", "data/pms.json")
	v.SetDefault("storage.seed", true)
	v.SetDefault("database.url", "")
	v.SetDefault("import.max_upload_bytes", 10<<20)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints plus the driver-specific requirements.
func Validate(cfg *Config) error {
	validate := validator.New()
	validate.RegisterStructValidation(validateStorage, Config{})

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// validateStorage requires the settings each storage driver depends on.
func validateStorage(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)

	switch cfg.Storage.Driver {
	case DriverFile:
		if strings.TrimSpace(cfg.Storage.FilePath) == "" {
			sl.ReportError(cfg.Storage.FilePath, "Storage.FilePath", "FilePath", "required_for_file", "")
		}
	case DriverPostgres:
		if cfg.Database.URL == "" {
			sl.ReportError(cfg.Database.URL, "Database.URL", "URL", "required_for_postgres", "")
		}
	}
}
