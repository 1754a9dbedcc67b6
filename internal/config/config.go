package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Calculator  CalculatorConfig  `mapstructure:"calculator" validate:"required"`
	Interpreter InterpreterConfig `mapstructure:"interpreter" validate:"required"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// CalculatorConfig controls measurement display.
type CalculatorConfig struct {
	DenominatorBase int `mapstructure:"denominator_base" validate:"required,oneof=2 4 8 16 32 64"`
}

// InterpreterConfig selects and configures the phrase translator.
// Provider "none" disables /calculator/interpret.
type InterpreterConfig struct {
	Provider      string        `mapstructure:"provider" validate:"required,oneof=none gemini"`
	GeminiAPIKey  string        `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
	Model         string        `mapstructure:"model" validate:"required"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxTextLength int           `mapstructure:"max_text_length" validate:"gt=0"`
}

// Enabled reports whether a translator should be built.
func (c InterpreterConfig) Enabled() bool {
	return c.Provider != "none"
}

// TelemetryConfig controls OTLP export. Traces and metrics follow the
// standard OTEL_* variables; log export is opt-in.
type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	ExportLogs  bool   `mapstructure:"export_logs"`
}
