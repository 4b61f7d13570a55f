package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds all application settings, loaded from a .env file or the
// environment. Alerts fields are optional; when AlertsFromEmail is empty the
// SES high-risk alert mailer stays disabled.
type Config struct {
	ServerPort      string `mapstructure:"SERVER_PORT"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	JWTSecret       string `mapstructure:"JWT_SECRET"`
	ClientOrigin    string `mapstructure:"CLIENT_ORIGIN"`
	Environment     string `mapstructure:"ENVIRONMENT"`
	AWSRegion       string `mapstructure:"AWS_REGION"`
	AlertsFromEmail string `mapstructure:"ALERTS_FROM_EMAIL"`
	AlertsToEmail   string `mapstructure:"ALERTS_TO_EMAIL"`
}

// configKeys lists every setting Unmarshal should see. Each key is bound to
// its environment variable explicitly: Unmarshal only picks up AutomaticEnv
// values for keys viper already knows about, so without the binding an
// env-only deployment would lose DATABASE_URL and JWT_SECRET.
var configKeys = []string{
	"SERVER_PORT",
	"DATABASE_URL",
	"JWT_SECRET",
	"CLIENT_ORIGIN",
	"ENVIRONMENT",
	"AWS_REGION",
	"ALERTS_FROM_EMAIL",
	"ALERTS_TO_EMAIL",
}

// LoadConfig reads configuration from a .env file in the given path, with
// environment variables taking precedence.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, err
		}
	}

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("CLIENT_ORIGIN", "http://localhost:5173")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("ALERTS_FROM_EMAIL", "")
	v.SetDefault("ALERTS_TO_EMAIL", "")

	if err := v.ReadInConfig(); err != nil {
		// A missing .env file is fine; everything can come from the environment.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}
