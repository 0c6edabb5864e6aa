package config

import "time"

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Access  AccessConfig  `mapstructure:"access"`
	Store   StoreConfig   `mapstructure:"store"`
	Advisor AdvisorConfig `mapstructure:"advisor"`
	Pet     PetConfig     `mapstructure:"pet"`
	Log     LogConfig     `mapstructure:"log"`
	Client  ClientConfig  `mapstructure:"client"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr   string `mapstructure:"addr"`
	WebDir string `mapstructure:"web_dir"`
}

// AccessConfig holds the shared access key, plain or bcrypt hashed.
type AccessConfig struct {
	Key       string `mapstructure:"key"`
	KeyBcrypt string `mapstructure:"key_bcrypt"`
}

// StoreConfig selects and configures the record store.
type StoreConfig struct {
	Type        string `mapstructure:"type"` // memory, postgres or sqlite
	DatabaseURL string `mapstructure:"database_url"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	SeedOnStart bool   `mapstructure:"seed_on_start"`
	SeedFile    string `mapstructure:"seed_file"`
}

// AdvisorConfig configures the text-generation service.
type AdvisorConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// PetConfig describes the pet.
type PetConfig struct {
	Name      string `mapstructure:"name"`
	Species   string `mapstructure:"species"`
	BirthDate string `mapstructure:"birth_date"`
	// FallbackNow replaces the current time when the clock reads earlier
	// than the birth date.
	FallbackNow string `mapstructure:"fallback_now"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// ClientConfig configures the command-line client.
type ClientConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Key     string `mapstructure:"key"`
}
