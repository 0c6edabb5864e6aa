// Package config loads configuration from an optional file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"petdiary/internal/adapter/advisor"
	"petdiary/internal/app"
	"petdiary/internal/domain"
)

const (
	// DefaultConfigName is looked up without extension in the search paths.
	DefaultConfigName = "petdiary"
	// DefaultConfigDir is searched under the user's home directory.
	DefaultConfigDir = ".config/petdiary"
)

// Store types.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Load reads configuration. With an empty path, petdiary.{yaml,json,toml}
// is searched in the working directory and ~/.config/petdiary; a missing
// file is fine. An explicit path must exist. Environment variables override
// file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, DefaultConfigDir))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.web_dir", "web")

	v.SetDefault("access.key", "")
	v.SetDefault("access.key_bcrypt", "")

	v.SetDefault("store.type", StoreMemory)
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.sqlite_path", "data/petdiary.db")
	v.SetDefault("store.seed_on_start", false)
	v.SetDefault("store.seed_file", "")

	v.SetDefault("advisor.base_url", advisor.DefaultBaseURL)
	v.SetDefault("advisor.model", advisor.DefaultModel)
	v.SetDefault("advisor.api_key", "")
	v.SetDefault("advisor.timeout", advisor.DefaultTimeout)

	v.SetDefault("pet.name", "Finik")
	v.SetDefault("pet.species", "cat")
	v.SetDefault("pet.birth_date", "2025-07-31")
	v.SetDefault("pet.fallback_now", "2025-12-01")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.key", "")
}

// bindEnv maps PETDIARY_<SECTION>_<KEY> onto every key and keeps the short
// names used by existing deployments.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("PETDIARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("access.key", "ACCESS_KEY", "PETDIARY_ACCESS_KEY")
	_ = v.BindEnv("access.key_bcrypt", "ACCESS_KEY_BCRYPT", "PETDIARY_ACCESS_KEY_BCRYPT")
	_ = v.BindEnv("advisor.api_key", "API_KEY", "PETDIARY_ADVISOR_API_KEY")
	_ = v.BindEnv("store.database_url", "DATABASE_URL", "PETDIARY_STORE_DATABASE_URL")
	_ = v.BindEnv("store.type", "PETDIARY_STORE_TYPE")
	_ = v.BindEnv("store.sqlite_path", "PETDIARY_SQLITE_PATH", "PETDIARY_STORE_SQLITE_PATH")
	_ = v.BindEnv("server.addr", "PETDIARY_ADDR", "PETDIARY_SERVER_ADDR")
	_ = v.BindEnv("server.web_dir", "PETDIARY_WEB_DIR", "PETDIARY_SERVER_WEB_DIR")
	_ = v.BindEnv("client.key", "PETDIARY_KEY", "PETDIARY_CLIENT_KEY")
}

func validate(cfg *Config) error {
	switch cfg.Store.Type {
	case StoreMemory:
	case StorePostgres:
		if cfg.Store.DatabaseURL == "" {
			return fmt.Errorf("store.database_url is required when store.type is 'postgres'")
		}
	case StoreSQLite:
		if cfg.Store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path is required when store.type is 'sqlite'")
		}
	default:
		return fmt.Errorf("store.type must be 'memory', 'postgres' or 'sqlite', got '%s'", cfg.Store.Type)
	}

	if _, err := domain.ParseDay(cfg.Pet.BirthDate); err != nil {
		return fmt.Errorf("pet.birth_date: %w", err)
	}
	if _, err := domain.ParseDay(cfg.Pet.FallbackNow); err != nil {
		return fmt.Errorf("pet.fallback_now: %w", err)
	}

	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	if cfg.Advisor.Timeout < 0 {
		return fmt.Errorf("advisor.timeout must not be negative, got %s", cfg.Advisor.Timeout)
	}

	return nil
}

// Profile converts the pet section into the profile used by the services.
// The dates were checked by Load.
func (c *Config) Profile() app.Profile {
	birth, _ := domain.ParseDay(c.Pet.BirthDate)
	fallback, _ := domain.ParseDay(c.Pet.FallbackNow)
	return app.Profile{
		Name:        c.Pet.Name,
		Species:     c.Pet.Species,
		BirthDate:   birth,
		FallbackNow: fallback,
	}
}

// AdvisorClientConfig returns the settings for the advisor adapter.
func (c *Config) AdvisorClientConfig() advisor.Config {
	return advisor.Config{
		BaseURL: c.Advisor.BaseURL,
		Model:   c.Advisor.Model,
		APIKey:  c.Advisor.APIKey,
		Timeout: c.Advisor.Timeout,
	}
}
