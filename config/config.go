package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Jobs        JobsConfig
	Tracing     TracingConfig
	Environment string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JobsConfig struct {
	PollInterval      time.Duration
	BatchSize         int
	MaxConcurrent     int64
	MaxRuntime        time.Duration
	ProcessingTimeout time.Duration
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// Trace exporter configuration
	TraceExporter string // "jaeger" or "none"

	// Jaeger settings
	JaegerEndpoint string
	AgentEndpoint  string

	// Metrics exporter configuration
	MetricsExporter string // "prometheus" or "none"
	PrometheusPort  int
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "altocrm")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	// Background jobs defaults
	v.SetDefault("JOBS_POLL_INTERVAL", 2)
	v.SetDefault("JOBS_BATCH_SIZE", 10)
	v.SetDefault("JOBS_MAX_CONCURRENT", 5)
	v.SetDefault("JOBS_MAX_RUNTIME", 50)
	v.SetDefault("JOBS_PROCESSING_TIMEOUT", 5)

	// Default tracing config
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "altocrm-api")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_AGENT_ENDPOINT", "localhost:6831")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PORT", 9464)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("PORT"),
			Host: v.GetString("SERVER_HOST"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Jobs: JobsConfig{
			PollInterval:      time.Duration(v.GetInt("JOBS_POLL_INTERVAL")) * time.Second,
			BatchSize:         v.GetInt("JOBS_BATCH_SIZE"),
			MaxConcurrent:     v.GetInt64("JOBS_MAX_CONCURRENT"),
			MaxRuntime:        time.Duration(v.GetInt("JOBS_MAX_RUNTIME")) * time.Second,
			ProcessingTimeout: time.Duration(v.GetInt("JOBS_PROCESSING_TIMEOUT")) * time.Minute,
		},
		Tracing: TracingConfig{
			Enabled:             v.GetBool("TRACING_ENABLED"),
			ServiceName:         v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability: v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			TraceExporter:       v.GetString("TRACING_TRACE_EXPORTER"),
			JaegerEndpoint:      v.GetString("TRACING_JAEGER_ENDPOINT"),
			AgentEndpoint:       v.GetString("TRACING_AGENT_ENDPOINT"),
			MetricsExporter:     v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:      v.GetInt("TRACING_PROMETHEUS_PORT"),
		},
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	// DATABASE_URL takes precedence over the discrete DB_* settings
	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		if err := config.Database.applyURL(dbURL); err != nil {
			return nil, fmt.Errorf("error parsing DATABASE_URL: %w", err)
		}
	}

	if config.Jobs.PollInterval <= 0 {
		return nil, fmt.Errorf("JOBS_POLL_INTERVAL must be positive")
	}
	if config.Jobs.MaxConcurrent <= 0 {
		return nil, fmt.Errorf("JOBS_MAX_CONCURRENT must be positive")
	}

	return config, nil
}

// applyURL fills the database settings from a postgres:// connection URL.
func (c *DatabaseConfig) applyURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	if u.User != nil {
		c.User = u.User.Username()
		if password, ok := u.User.Password(); ok {
			c.Password = password
		}
	}
	if host := u.Hostname(); host != "" {
		c.Host = host
	}
	if portStr := u.Port(); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid port %q", portStr)
		}
		c.Port = port
	}
	if dbName := strings.TrimPrefix(u.Path, "/"); dbName != "" {
		c.DBName = dbName
	}
	if sslMode := u.Query().Get("sslmode"); sslMode != "" {
		c.SSLMode = sslMode
	}
	return nil
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
