// Package config reads the runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/moneymate/backend/internal/money"
)

type Config struct {
	// HTTP server
	APIURL           string
	Port             string
	GinMode          string
	CORSAllowOrigins []string
	EnablePprof      bool

	// Logging. Empty means human readable in debug mode, JSON otherwise.
	LogFormat string

	// Database
	DBPath string

	// Display
	Currency string
	Language string
}

// Load reads a .env file from the working directory if there is one and
// builds the configuration from the environment. Variables that are already
// set take precedence over the .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIURL:           getEnv("API_URL", "http://localhost:8080"),
		Port:             getEnv("PORT", "8080"),
		GinMode:          getEnv("GIN_MODE", "release"),
		CORSAllowOrigins: strings.Fields(getEnv("CORS_ALLOW_ORIGINS", "")),
		EnablePprof:      getEnvBool("ENABLE_PPROF", false),
		LogFormat:        getEnv("LOG_FORMAT", ""),
		DBPath:           getEnv("DB_PATH", "data/gorm.db"),
		Currency:         getEnv("CURRENCY", "KRW"),
		Language:         getEnv("LANGUAGE", "ko"),
	}
}

// BaseURL returns the parsed API_URL.
func (c *Config) BaseURL() (*url.URL, error) {
	return url.Parse(c.APIURL)
}

// Validate checks the configuration and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string

	if u, err := c.BaseURL(); err != nil {
		problems = append(problems, fmt.Sprintf("invalid API_URL '%s': %v", c.APIURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		problems = append(problems, fmt.Sprintf("invalid API_URL '%s': scheme must be 'http' or 'https'", c.APIURL))
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		problems = append(problems, fmt.Sprintf("invalid gin mode '%s': must be one of debug, release, test", c.GinMode))
	}

	switch c.LogFormat {
	case "", "human", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be 'human' or 'json'", c.LogFormat))
	}

	if c.DBPath == "" {
		problems = append(problems, "database path cannot be empty")
	}

	if _, err := money.NewFormatter(c.Currency, c.Language); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed: " + strings.Join(problems, "; "))
	}

	return nil
}

// HumanLogs reports whether logs are written for humans instead of as JSON.
func (c *Config) HumanLogs() bool {
	if c.LogFormat == "" {
		return c.GinMode == "debug"
	}

	return c.LogFormat == "human"
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
