package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the nomura-home API configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Redis   RedisConfig   `yaml:"redis"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Cache   CacheConfig   `yaml:"embedding_cache"`
	Search  SearchConfig  `yaml:"search"`
	Cart    CartConfig    `yaml:"cart"`
	Users   UsersConfig   `yaml:"users"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// RedisConfig holds database connection settings.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// OpenAIConfig holds embedding provider settings.
type OpenAIConfig struct {
	APIKey     string       `yaml:"api_key"`
	APIKeyPath string       `yaml:"api_key_path"`
	BaseURL    string       `yaml:"base_url"`
	Model      string       `yaml:"model"`
	Dimensions int          `yaml:"dimensions"` // 0 = model default
	Budget     BudgetConfig `yaml:"budget"`
}

// BudgetConfig holds token budget settings.
type BudgetConfig struct {
	DailyTokenLimit      int64   `yaml:"daily_token_limit"`       // 0 = unlimited
	MonthlyTokenLimit    int64   `yaml:"monthly_token_limit"`     // 0 = unlimited
	CostPerMillionTokens float64 `yaml:"cost_per_million_tokens"` // for the usage dashboard
	Action               string  `yaml:"action"`                  // "reject" | "warn" (default)
}

// CacheConfig holds embedding cache settings.
type CacheConfig struct {
	Enabled  bool `yaml:"enabled"`
	TTLHours int  `yaml:"ttl_hours"`
}

// SearchConfig holds hybrid search tuning. Zero values mean "use the
// ranker's built-in defaults".
type SearchConfig struct {
	SemanticWeight float64 `yaml:"semantic_weight"`
	KeywordWeight  float64 `yaml:"keyword_weight"`
	CategoryWeight float64 `yaml:"category_weight"`
	ScoreCutoff    float64 `yaml:"score_cutoff"`
	FuzzyThreshold int     `yaml:"fuzzy_threshold"`
}

// CartConfig holds cart lifecycle settings.
type CartConfig struct {
	TTLHours int `yaml:"ttl_hours"`
}

// UsersConfig holds account settings.
type UsersConfig struct {
	ResetTokenTTLMin int `yaml:"reset_token_ttl_min"`
}

// AuthConfig holds API authentication settings for admin routes.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Load reads configuration from a YAML file by environment name
// (development, production, local).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting
// to "development".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "development"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Server.ReadTimeoutSec <= 0 {
		c.Server.ReadTimeoutSec = 10
	}
	if c.Server.WriteTimeoutSec <= 0 {
		c.Server.WriteTimeoutSec = 10
	}
	if c.Server.ShutdownSec <= 0 {
		c.Server.ShutdownSec = 10
	}
	if c.Redis.ReadinessTimeout <= 0 {
		c.Redis.ReadinessTimeout = 10
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "text-embedding-3-small"
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24
	}
	if c.Cart.TTLHours <= 0 {
		c.Cart.TTLHours = 72
	}
	if c.Users.ResetTokenTTLMin <= 0 {
		c.Users.ResetTokenTTLMin = 30
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if len(c.Redis.Addrs) == 0 {
		return fmt.Errorf("redis.addrs is required")
	}
	switch c.OpenAI.Budget.Action {
	case "", "warn", "reject":
		// ok
	default:
		return fmt.Errorf(
			"openai.budget.action must be \"warn\" or \"reject\", got %q",
			c.OpenAI.Budget.Action,
		)
	}
	for name, w := range map[string]float64{
		"search.semantic_weight": c.Search.SemanticWeight,
		"search.keyword_weight":  c.Search.KeywordWeight,
		"search.category_weight": c.Search.CategoryWeight,
		"search.score_cutoff":    c.Search.ScoreCutoff,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %v", name, w)
		}
	}
	if c.Search.FuzzyThreshold < 0 || c.Search.FuzzyThreshold > 100 {
		return fmt.Errorf("search.fuzzy_threshold must be within [0, 100], got %d", c.Search.FuzzyThreshold)
	}
	return nil
}

// ResolveAPIKey returns the OpenAI API key from the config, reading the
// key file when only a path is configured. Environment variables are
// already expanded at load time, so an `api_key: ${OPENAI_API_KEY:-}`
// entry resolves before the file path is consulted.
func (c *OpenAIConfig) ResolveAPIKey() (string, error) {
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	if c.APIKeyPath == "" {
		return "", fmt.Errorf("openai api key not configured: set api_key or api_key_path")
	}
	data, err := os.ReadFile(filepath.Clean(c.APIKeyPath))
	if err != nil {
		return "", fmt.Errorf("read api key file %s: %w", c.APIKeyPath, err)
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("api key file %s is empty", c.APIKeyPath)
	}
	return key, nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
