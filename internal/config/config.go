package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Tokens TokensConfig `mapstructure:"tokens"`
	SMTP   SMTPConfig   `mapstructure:"smtp"`
	Clinic ClinicConfig `mapstructure:"clinic"`
	Log    LogConfig    `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL           string  `mapstructure:"base_url"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// TokensConfig selects where the credential pair is persisted. The
// backend is swappable: "file" keeps a JSON file under Path, "redis"
// keeps a single key on the given server.
type TokensConfig struct {
	Backend  string `mapstructure:"backend"`
	Path     string `mapstructure:"path"`
	RedisURL string `mapstructure:"redis_url"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// Enabled reports whether outgoing mail is configured; without it the
// contact flow falls back to printing a mailto draft.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

// ClinicConfig holds the clinic's public contact points shown across
// the contact flows.
type ClinicConfig struct {
	Email string `mapstructure:"email"`
	Phone string `mapstructure:"phone"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".clinicctl"))
	}

	viper.SetEnvPrefix("CLINICCTL")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional; defaults and env cover a
		// standard install.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Tokens.Path == "" {
		config.Tokens.Path = defaultTokenPath()
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("api.base_url", "http://localhost:8000/api")
	viper.SetDefault("api.timeout_seconds", 15)
	viper.SetDefault("api.requests_per_second", 5.0)
	viper.SetDefault("api.burst", 10)
	viper.SetDefault("tokens.backend", "file")
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("clinic.email", "MediCare@gmail.com")
	viper.SetDefault("clinic.phone", "+212661514131")
	viper.SetDefault("log.level", "info")
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tokens.json"
	}
	return filepath.Join(home, ".clinicctl", "tokens.json")
}
