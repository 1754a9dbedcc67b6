package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ONSITE_SERVER_PORT.
const EnvPrefix = "ONSITE"

var keys = []string{
	"server.port",
	"server.log_level",
	"server.shutdown_timeout",
	"calculator.denominator_base",
	"interpreter.provider",
	"interpreter.gemini_api_key",
	"interpreter.model",
	"interpreter.timeout",
	"interpreter.max_text_length",
	"telemetry.service_name",
	"telemetry.export_logs",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("calculator.denominator_base", 16)
	v.SetDefault("interpreter.provider", "none")
	v.SetDefault("interpreter.gemini_api_key", "")
	v.SetDefault("interpreter.model", "gemini-2.0-flash")
	v.SetDefault("interpreter.timeout", "10s")
	v.SetDefault("interpreter.max_text_length", 220)
	v.SetDefault("telemetry.service_name", "onsite-calculator")
	v.SetDefault("telemetry.export_logs", false)
}

// Load reads configuration from config.yaml in the working directory, if
// present, and from environment variables, which take precedence.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches
// the working directory for config.yaml.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
