package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the planner
type Config struct {
	Database    DatabaseConfig    `mapstructure:"database" yaml:"database"`
	Server      ServerConfig      `mapstructure:"server" yaml:"server"`
	Generation  GenerationConfig  `mapstructure:"generation" yaml:"generation"`
	Auth        AuthConfig        `mapstructure:"auth" yaml:"auth"`
	Validation  ValidationConfig  `mapstructure:"validation" yaml:"validation"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
	Application ApplicationConfig `mapstructure:"application" yaml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `mapstructure:"dir" yaml:"dir" env:"PLANNER_DB_DIR"`
	Filename       string        `mapstructure:"filename" yaml:"filename" env:"PLANNER_DB_FILENAME"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout" yaml:"query_timeout" env:"PLANNER_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `mapstructure:"dir_permissions" yaml:"dir_permissions" env:"PLANNER_DB_DIR_PERMISSIONS"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr" env:"PLANNER_SERVER_ADDR"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" env:"PLANNER_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" env:"PLANNER_SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" env:"PLANNER_SERVER_SHUTDOWN_TIMEOUT"`
	MaxBodyBytes    int           `mapstructure:"max_body_bytes" yaml:"max_body_bytes" env:"PLANNER_SERVER_MAX_BODY_BYTES"`
}

// GenerationConfig holds text-generation provider configuration
type GenerationConfig struct {
	Provider    string        `mapstructure:"provider" yaml:"provider" env:"PLANNER_GENERATION_PROVIDER"`
	BaseURL     string        `mapstructure:"base_url" yaml:"base_url" env:"PLANNER_GENERATION_BASE_URL"`
	APIKey      string        `mapstructure:"api_key" yaml:"api_key" env:"PLANNER_GENERATION_API_KEY"`
	Model       string        `mapstructure:"model" yaml:"model" env:"PLANNER_GENERATION_MODEL"`
	Temperature float64       `mapstructure:"temperature" yaml:"temperature" env:"PLANNER_GENERATION_TEMPERATURE"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout" env:"PLANNER_GENERATION_TIMEOUT"`
	StaticFile  string        `mapstructure:"static_file" yaml:"static_file" env:"PLANNER_GENERATION_STATIC_FILE"`
}

// AuthConfig holds session configuration
type AuthConfig struct {
	TokenTTL   time.Duration `mapstructure:"token_ttl" yaml:"token_ttl" env:"PLANNER_AUTH_TOKEN_TTL"`
	CookieName string        `mapstructure:"cookie_name" yaml:"cookie_name" env:"PLANNER_AUTH_COOKIE_NAME"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	MaxTitleLength       int `mapstructure:"max_title_length" yaml:"max_title_length" env:"PLANNER_VALIDATION_MAX_TITLE"`
	MaxDescriptionLength int `mapstructure:"max_description_length" yaml:"max_description_length" env:"PLANNER_VALIDATION_MAX_DESCRIPTION"`
	MaxPromptLength      int `mapstructure:"max_prompt_length" yaml:"max_prompt_length" env:"PLANNER_VALIDATION_MAX_PROMPT"`
	MaxExistingSubtasks  int `mapstructure:"max_existing_subtasks" yaml:"max_existing_subtasks" env:"PLANNER_VALIDATION_MAX_SUBTASKS"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Env  string `mapstructure:"env" yaml:"env" env:"PLANNER_ENV"`
	File string `mapstructure:"file" yaml:"file" env:"PLANNER_LOG_FILE"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" env:"PLANNER_APP_TIMEOUT"`
	Verbose bool          `mapstructure:"verbose" yaml:"verbose" env:"PLANNER_APP_VERBOSE"`
}

// Provider names accepted by generation.provider
const (
	ProviderOpenAI = "openai"
	ProviderStatic = "static"
)

// Logging environments accepted by logging.env
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".planner")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "planner.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Generation: GenerationConfig{
			Provider:    ProviderOpenAI,
			BaseURL:     "https://api.groq.com/openai/v1",
			Model:       "mistral-saba-24b",
			Temperature: 0.7,
			Timeout:     60 * time.Second,
		},
		Auth: AuthConfig{
			TokenTTL:   5 * 24 * time.Hour,
			CookieName: "session",
		},
		Validation: ValidationConfig{
			MaxTitleLength:       255,
			MaxDescriptionLength: 2000,
			MaxPromptLength:      2000,
			MaxExistingSubtasks:  100,
		},
		Logging: LoggingConfig{
			Env: EnvLocal,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if c.Database.Filename == ":memory:" {
		return c.Database.Filename
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("PLANNER_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("PLANNER_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("PLANNER_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if perms := os.Getenv("PLANNER_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Server configuration
	if addr := os.Getenv("PLANNER_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if timeout := os.Getenv("PLANNER_SERVER_READ_TIMEOUT"); timeout != "" {
		c.Server.ReadTimeout = ParseDurationWithFallback(timeout, c.Server.ReadTimeout)
	}
	if timeout := os.Getenv("PLANNER_SERVER_WRITE_TIMEOUT"); timeout != "" {
		c.Server.WriteTimeout = ParseDurationWithFallback(timeout, c.Server.WriteTimeout)
	}
	if timeout := os.Getenv("PLANNER_SERVER_SHUTDOWN_TIMEOUT"); timeout != "" {
		c.Server.ShutdownTimeout = ParseDurationWithFallback(timeout, c.Server.ShutdownTimeout)
	}
	if n := os.Getenv("PLANNER_SERVER_MAX_BODY_BYTES"); n != "" {
		c.Server.MaxBodyBytes = ParseIntWithFallback(n, c.Server.MaxBodyBytes)
	}

	// Generation configuration
	if provider := os.Getenv("PLANNER_GENERATION_PROVIDER"); provider != "" {
		c.Generation.Provider = provider
	}
	if baseURL := os.Getenv("PLANNER_GENERATION_BASE_URL"); baseURL != "" {
		c.Generation.BaseURL = baseURL
	}
	if apiKey := os.Getenv("PLANNER_GENERATION_API_KEY"); apiKey != "" {
		c.Generation.APIKey = apiKey
	} else if apiKey := os.Getenv("GROQ_API_KEY"); apiKey != "" && c.Generation.APIKey == "" {
		c.Generation.APIKey = apiKey
	}
	if model := os.Getenv("PLANNER_GENERATION_MODEL"); model != "" {
		c.Generation.Model = model
	}
	if temperature := os.Getenv("PLANNER_GENERATION_TEMPERATURE"); temperature != "" {
		if f, err := strconv.ParseFloat(temperature, 64); err == nil {
			c.Generation.Temperature = f
		}
	}
	if timeout := os.Getenv("PLANNER_GENERATION_TIMEOUT"); timeout != "" {
		c.Generation.Timeout = ParseDurationWithFallback(timeout, c.Generation.Timeout)
	}
	if staticFile := os.Getenv("PLANNER_GENERATION_STATIC_FILE"); staticFile != "" {
		c.Generation.StaticFile = staticFile
	}

	// Auth configuration
	if ttl := os.Getenv("PLANNER_AUTH_TOKEN_TTL"); ttl != "" {
		c.Auth.TokenTTL = ParseDurationWithFallback(ttl, c.Auth.TokenTTL)
	}
	if cookie := os.Getenv("PLANNER_AUTH_COOKIE_NAME"); cookie != "" {
		c.Auth.CookieName = cookie
	}

	// Validation configuration
	if n := os.Getenv("PLANNER_VALIDATION_MAX_TITLE"); n != "" {
		c.Validation.MaxTitleLength = ParseIntWithFallback(n, c.Validation.MaxTitleLength)
	}
	if n := os.Getenv("PLANNER_VALIDATION_MAX_DESCRIPTION"); n != "" {
		c.Validation.MaxDescriptionLength = ParseIntWithFallback(n, c.Validation.MaxDescriptionLength)
	}
	if n := os.Getenv("PLANNER_VALIDATION_MAX_PROMPT"); n != "" {
		c.Validation.MaxPromptLength = ParseIntWithFallback(n, c.Validation.MaxPromptLength)
	}
	if n := os.Getenv("PLANNER_VALIDATION_MAX_SUBTASKS"); n != "" {
		c.Validation.MaxExistingSubtasks = ParseIntWithFallback(n, c.Validation.MaxExistingSubtasks)
	}

	// Logging configuration
	if env := os.Getenv("PLANNER_ENV"); env != "" {
		c.Logging.Env = env
	}
	if file := os.Getenv("PLANNER_LOG_FILE"); file != "" {
		c.Logging.File = file
	}

	// Application configuration
	if timeout := os.Getenv("PLANNER_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("PLANNER_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" && c.Database.Filename != ":memory:" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.WriteTimeout > 0 && c.Server.WriteTimeout <= c.Generation.Timeout {
		return &ConfigError{Field: "server.write_timeout", Message: "write timeout must exceed the generation timeout"}
	}
	if c.Server.MaxBodyBytes < 1 {
		return &ConfigError{Field: "server.max_body_bytes", Message: "request body limit must be positive"}
	}

	// Validate generation configuration
	switch c.Generation.Provider {
	case ProviderOpenAI:
		if c.Generation.BaseURL == "" {
			return &ConfigError{Field: "generation.base_url", Message: "base URL cannot be empty"}
		}
		if c.Generation.Model == "" {
			return &ConfigError{Field: "generation.model", Message: "model cannot be empty"}
		}
	case ProviderStatic:
	default:
		return &ConfigError{Field: "generation.provider", Message: "provider must be one of: openai, static"}
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		return &ConfigError{Field: "generation.temperature", Message: "temperature must be between 0 and 2"}
	}
	if c.Generation.Timeout <= 0 {
		return &ConfigError{Field: "generation.timeout", Message: "generation timeout must be positive"}
	}

	// Validate auth configuration
	if c.Auth.TokenTTL <= 0 {
		return &ConfigError{Field: "auth.token_ttl", Message: "token TTL must be positive"}
	}
	if c.Auth.CookieName == "" {
		return &ConfigError{Field: "auth.cookie_name", Message: "cookie name cannot be empty"}
	}

	// Validate validation configuration
	if c.Validation.MaxTitleLength < 1 {
		return &ConfigError{Field: "validation.max_title_length", Message: "maximum title length must be at least 1"}
	}
	if c.Validation.MaxDescriptionLength < 0 {
		return &ConfigError{Field: "validation.max_description_length", Message: "maximum description length cannot be negative"}
	}
	if c.Validation.MaxPromptLength < 0 {
		return &ConfigError{Field: "validation.max_prompt_length", Message: "maximum prompt length cannot be negative"}
	}
	if c.Validation.MaxExistingSubtasks < 0 {
		return &ConfigError{Field: "validation.max_existing_subtasks", Message: "maximum existing subtasks cannot be negative"}
	}

	// Validate logging configuration
	switch c.Logging.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return &ConfigError{Field: "logging.env", Message: "env must be one of: local, dev, prod"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// Redacted returns a copy safe to print, with secrets masked
func (c *Config) Redacted() *Config {
	copied := *c
	if copied.Generation.APIKey != "" {
		copied.Generation.APIKey = "********"
	}
	return &copied
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
