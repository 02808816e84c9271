package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// ArchivePath enables the best-effort sqlite message archive when
	// non-empty.
	ArchivePath string `mapstructure:"archive_path" yaml:"archive_path"`

	// AuthSecret enables verification of externally issued HS256
	// tokens when non-empty.
	AuthSecret   string `mapstructure:"auth_secret" yaml:"auth_secret"`
	AuthIssuer   string `mapstructure:"auth_issuer" yaml:"auth_issuer"`
	AuthAudience string `mapstructure:"auth_audience" yaml:"auth_audience"`

	// Translation backends. Base URLs are overridable for tests and
	// proxies; empty keys leave a backend unavailable.
	TranslateTimeout time.Duration `mapstructure:"translate_timeout" yaml:"translate_timeout"`
	OpenAIAPIKey     string        `mapstructure:"openai_api_key" yaml:"openai_api_key"`
	OpenAIBaseURL    string        `mapstructure:"openai_base_url" yaml:"openai_base_url"`
	GeminiAPIKey     string        `mapstructure:"gemini_api_key" yaml:"gemini_api_key"`
	GeminiBaseURL    string        `mapstructure:"gemini_base_url" yaml:"gemini_base_url"`
	ClaudeAPIKey     string        `mapstructure:"claude_api_key" yaml:"claude_api_key"`
	ClaudeBaseURL    string        `mapstructure:"claude_base_url" yaml:"claude_base_url"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		TranslateTimeout:  20 * time.Second,
	}
}
