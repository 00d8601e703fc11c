// Package config loads the application configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, database connection,
// cache, AI provider, analysis pipeline and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response.
		// It must stay well above the AI timeout so streamed chat responses are not cut off.
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"5m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"navhub" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// Redis configures the cache used for extracted website metadata.
	Redis struct {
		// Addr is the redis server address. Leave empty to disable caching.
		Addr string `env:"REDIS_ADDR" env-default:"" yaml:"addr"`
		// Password authenticates against the redis server when set
		Password string `env:"REDIS_PASSWORD" env-default:"" yaml:"password"`
		// DB selects the redis logical database
		DB int `env:"REDIS_DB" env-default:"0" yaml:"db"`
		// ExtractTTL is how long extracted metadata stays cached
		ExtractTTL time.Duration `env:"REDIS_EXTRACT_TTL" env-default:"1h" yaml:"extractTTL"`
	} `yaml:"redis"`

	// AI configures the chat-completion provider used for categorization and
	// the assistant.
	AI struct {
		// APIKey is the bearer token for the provider
		APIKey string `env:"AI_API_KEY" env-default:"" yaml:"apiKey"`
		// BaseURL overrides the provider endpoint. Empty uses the public endpoint.
		BaseURL string `env:"AI_BASE_URL" env-default:"" yaml:"baseURL"`
		// Model is the chat model name
		Model string `env:"AI_MODEL" env-default:"glm-4-flash" yaml:"model"`
		// Timeout bounds a single completion request
		Timeout time.Duration `env:"AI_TIMEOUT" env-default:"60s" yaml:"timeout"`
	} `yaml:"ai"`

	// Extractor configures page metadata extraction.
	Extractor struct {
		// FetchTimeout bounds a page fetch
		FetchTimeout time.Duration `env:"EXTRACTOR_FETCH_TIMEOUT" env-default:"10s" yaml:"fetchTimeout"`
		// FaviconProbeTimeout bounds each favicon existence probe
		FaviconProbeTimeout time.Duration `env:"EXTRACTOR_FAVICON_PROBE_TIMEOUT" env-default:"5s" yaml:"faviconProbeTimeout"` //nolint: lll
	} `yaml:"extractor"`

	// Analyzer tunes the categorization pipeline.
	Analyzer struct {
		// CategoryMatchThreshold is the minimum keyword overlap for snapping an
		// unknown AI category onto an existing one (0..1)
		CategoryMatchThreshold float64 `env:"ANALYZER_CATEGORY_MATCH_THRESHOLD" env-default:"0.3" yaml:"categoryMatchThreshold"` //nolint: lll
		// SimilarityThreshold is the minimum name similarity for suggesting
		// existing categories instead of creating a new one (0..1)
		SimilarityThreshold float64 `env:"ANALYZER_SIMILARITY_THRESHOLD" env-default:"0.6" yaml:"similarityThreshold"`
		// MaxTags caps the number of tags kept per website
		MaxTags int `env:"ANALYZER_MAX_TAGS" env-default:"5" yaml:"maxTags"`
	} `yaml:"analyzer"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
