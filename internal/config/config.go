package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

// ConfigFileEnv names the environment variable pointing at an optional YAML file.
const ConfigFileEnv = "CONFIG_FILE"

type Config struct {
	PostgresAddress  string `koanf:"postgres_address"`
	PostgresPort     string `koanf:"postgres_port"`
	PostgresDB       string `koanf:"postgres_db"`
	PostgresUsername string `koanf:"postgres_username"`
	PostgresPassword string `koanf:"postgres_password"`

	HTTPPort        string        `koanf:"http_port"`
	JWTSecret       string        `koanf:"jwt_secret"`
	JWTTTL          time.Duration `koanf:"jwt_ttl"`
	OperatorWorkers int           `koanf:"operator_workers"`
	MemcacheHosts   []string      `koanf:"memcache_hosts"`
	LogLevel        string        `koanf:"log_level"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

// In all cases the default behavior should be for the docker compose setup
var defaults = map[string]interface{}{
	"postgres_address":  "localhost",
	"postgres_port":     "5433",
	"postgres_db":       "postgres",
	"postgres_username": "postgres",
	"postgres_password": "testpassword",
	"http_port":         "9446",
	"jwt_secret":        "local-development-secret",
	"jwt_ttl":           "720h",
	"operator_workers":  4,
	"memcache_hosts":    []string{},
	"log_level":         "info",
	"auto_migrate":      false,
}

// ProcessEnvironmentVariables layers defaults, the optional CONFIG_FILE and
// the environment, in that order.
func ProcessEnvironmentVariables() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	envProvider := env.ProviderWithValue("", ".", func(name string, value string) (string, interface{}) {
		key := strings.ToLower(name)
		if _, known := defaults[key]; !known {
			return "", nil
		}
		if key == "memcache_hosts" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return &cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var problems []string

	for name, port := range map[string]string{"http_port": c.HTTPPort, "postgres_port": c.PostgresPort} {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			problems = append(problems, fmt.Sprintf("invalid %s '%s': must be between 1 and 65535", name, port))
		}
	}

	if c.JWTSecret == "" {
		problems = append(problems, "jwt_secret cannot be empty")
	}
	if c.JWTTTL <= 0 {
		problems = append(problems, "jwt_ttl must be positive")
	}
	if c.OperatorWorkers < 1 {
		problems = append(problems, fmt.Sprintf("invalid operator_workers %d: must be at least 1", c.OperatorWorkers))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log_level '%s'", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func (c *Config) PostgresDSN() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
