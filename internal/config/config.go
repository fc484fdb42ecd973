package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	CORS    CORSConfig
	Auth    AuthConfig
	Fetch   FetchConfig
	Raster  RasterConfig
	Model   ModelConfig
	Extract ExtractConfig
	S3      S3Config
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds API authentication settings. An empty APIKey disables
// authentication (development mode).
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// FetchConfig holds document download settings.
type FetchConfig struct {
	TimeoutSecs int   `mapstructure:"timeout_secs"`
	MaxSizeMB   int64 `mapstructure:"max_size_mb"`
}

// RasterConfig holds page rasterization settings.
type RasterConfig struct {
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

// ModelProviderConfig holds settings for a single vision model provider.
type ModelProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ModelConfig holds vision model settings with multi-provider support.
type ModelConfig struct {
	Primary   ModelProviderConfig `mapstructure:"primary"`
	Secondary ModelProviderConfig `mapstructure:"secondary"`
}

// PrimaryConfig returns the primary model provider config.
func (m *ModelConfig) PrimaryConfig() *ModelProviderConfig {
	return &m.Primary
}

// SecondaryConfig returns the secondary model provider config, or nil if not configured.
func (m *ModelConfig) SecondaryConfig() *ModelProviderConfig {
	if m.Secondary.Provider != "" {
		return &m.Secondary
	}
	return nil
}

// ExtractConfig holds pipeline settings.
type ExtractConfig struct {
	PageConcurrency int     `mapstructure:"page_concurrency"`
	NameThreshold   float64 `mapstructure:"name_threshold"`
	AmountTolerance float64 `mapstructure:"amount_tolerance"`
}

// S3Config holds AWS S3 settings for s3:// document fetches.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Load reads configuration from environment variables with the BILLEX_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Auth defaults
	v.SetDefault("auth.api_key", "")

	// Fetch defaults
	v.SetDefault("fetch.timeout_secs", 20)
	v.SetDefault("fetch.max_size_mb", 50)

	// Raster defaults
	v.SetDefault("raster.jpeg_quality", 85)

	// Model defaults
	v.SetDefault("model.primary.provider", "gemini")
	v.SetDefault("model.primary.api_key", "")
	v.SetDefault("model.primary.default_model", "gemini-2.5-flash")
	v.SetDefault("model.primary.timeout_secs", 120)
	v.SetDefault("model.secondary.provider", "")
	v.SetDefault("model.secondary.api_key", "")
	v.SetDefault("model.secondary.default_model", "")
	v.SetDefault("model.secondary.timeout_secs", 120)

	// Extract defaults
	v.SetDefault("extract.page_concurrency", 3)
	v.SetDefault("extract.name_threshold", 0.92)
	v.SetDefault("extract.amount_tolerance", 1.0)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "BILLEX_SERVER_PORT",
		"server.read_timeout":           "BILLEX_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "BILLEX_SERVER_WRITE_TIMEOUT",
		"server.environment":            "BILLEX_SERVER_ENVIRONMENT",
		"log.level":                     "BILLEX_LOG_LEVEL",
		"log.format":                    "BILLEX_LOG_FORMAT",
		"cors.allowed_origins":          "BILLEX_CORS_ALLOWED_ORIGINS",
		"auth.api_key":                  "BILLEX_AUTH_API_KEY",
		"fetch.timeout_secs":            "BILLEX_FETCH_TIMEOUT_SECS",
		"fetch.max_size_mb":             "BILLEX_FETCH_MAX_SIZE_MB",
		"raster.jpeg_quality":           "BILLEX_RASTER_JPEG_QUALITY",
		"model.primary.provider":        "BILLEX_MODEL_PRIMARY_PROVIDER",
		"model.primary.api_key":         "BILLEX_MODEL_PRIMARY_API_KEY",
		"model.primary.default_model":   "BILLEX_MODEL_PRIMARY_DEFAULT_MODEL",
		"model.primary.timeout_secs":    "BILLEX_MODEL_PRIMARY_TIMEOUT_SECS",
		"model.secondary.provider":      "BILLEX_MODEL_SECONDARY_PROVIDER",
		"model.secondary.api_key":       "BILLEX_MODEL_SECONDARY_API_KEY",
		"model.secondary.default_model": "BILLEX_MODEL_SECONDARY_DEFAULT_MODEL",
		"model.secondary.timeout_secs":  "BILLEX_MODEL_SECONDARY_TIMEOUT_SECS",
		"extract.page_concurrency":      "BILLEX_EXTRACT_PAGE_CONCURRENCY",
		"extract.name_threshold":        "BILLEX_EXTRACT_NAME_THRESHOLD",
		"extract.amount_tolerance":      "BILLEX_EXTRACT_AMOUNT_TOLERANCE",
		"s3.region":                     "BILLEX_S3_REGION",
		"s3.endpoint":                   "BILLEX_S3_ENDPOINT",
		"s3.access_key":                 "BILLEX_S3_ACCESS_KEY",
		"s3.secret_key":                 "BILLEX_S3_SECRET_KEY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLEX_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLEX_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Auth = AuthConfig{
		APIKey: v.GetString("auth.api_key"),
	}
	cfg.Fetch = FetchConfig{
		TimeoutSecs: v.GetInt("fetch.timeout_secs"),
		MaxSizeMB:   v.GetInt64("fetch.max_size_mb"),
	}
	cfg.Raster = RasterConfig{
		JPEGQuality: v.GetInt("raster.jpeg_quality"),
	}
	cfg.Model = ModelConfig{
		Primary: ModelProviderConfig{
			Provider:     v.GetString("model.primary.provider"),
			APIKey:       v.GetString("model.primary.api_key"),
			DefaultModel: v.GetString("model.primary.default_model"),
			TimeoutSecs:  v.GetInt("model.primary.timeout_secs"),
		},
		Secondary: ModelProviderConfig{
			Provider:     v.GetString("model.secondary.provider"),
			APIKey:       v.GetString("model.secondary.api_key"),
			DefaultModel: v.GetString("model.secondary.default_model"),
			TimeoutSecs:  v.GetInt("model.secondary.timeout_secs"),
		},
	}
	cfg.Extract = ExtractConfig{
		PageConcurrency: v.GetInt("extract.page_concurrency"),
		NameThreshold:   v.GetFloat64("extract.name_threshold"),
		AmountTolerance: v.GetFloat64("extract.amount_tolerance"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}

	return cfg, nil
}
