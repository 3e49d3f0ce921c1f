// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Joe-Costa/qumulo-usage-report/internal/models"
)

// Output formats for the report.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputCSV  = "csv"
)

// Default values
const defaultPort = 8000

// Config holds one invocation's settings. Flags take precedence; env vars
// (optionally loaded from .env files) fill in host, port and credentials.
type Config struct {
	Host        string
	Port        int
	Token       string
	TokenFile   string
	Start       time.Time
	End         time.Time
	Granularity models.Granularity
	Output      string
	InsecureTLS bool
}

// Load returns a Config pre-populated from .env files and environment
// variables. Flag values are applied on top by the CLI layer.
func Load() *Config {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	return &Config{
		Host:      getEnvString("QUMULO_HOST", ""),
		Port:      getEnvInt("QUMULO_PORT", defaultPort),
		Token:     getEnvString("QUMULO_ACCESS_TOKEN", ""),
		TokenFile: getEnvString("QUMULO_TOKEN_FILE", ""),
		Output:    OutputText,
	}
}

// ValidateConnection checks the cluster address and credential settings
// shared by every command that talks to the API.
func (c *Config) ValidateConnection() error {
	if c.Host == "" {
		return fmt.Errorf("cluster host is required (flag --host or QUMULO_HOST)")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Token == "" && c.TokenFile == "" {
		return fmt.Errorf("an access token is required (--access-token or --token-file)")
	}
	if c.Token != "" && c.TokenFile != "" {
		return fmt.Errorf("--access-token and --token-file are mutually exclusive")
	}
	return nil
}

// Validate checks the settings that must hold before any network call.
func (c *Config) Validate() error {
	if err := c.ValidateConnection(); err != nil {
		return err
	}
	if c.Start.IsZero() || c.End.IsZero() {
		return fmt.Errorf("both --start and --end dates are required")
	}
	if c.End.Before(c.Start) {
		return fmt.Errorf("end date %s is before start date %s",
			c.End.Format("2006-01-02"), c.Start.Format("2006-01-02"))
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputCSV:
	default:
		return fmt.Errorf("invalid output format %q (expected text, json or csv)", c.Output)
	}
	return nil
}

// ResolveToken returns the bearer token, reading the token file when one
// was configured. A missing or unreadable file is a configuration error.
func (c *Config) ResolveToken() (string, error) {
	if c.TokenFile == "" {
		return c.Token, nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		return "", fmt.Errorf("failed to read token file %s: %w", c.TokenFile, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", c.TokenFile)
	}
	return token, nil
}

// dateLayouts are the accepted forms for --start/--end, most common first.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseDate parses a CLI date argument in local time.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (expected e.g. 2006-01-02)", s)
}

// ResolveGranularity maps the four mutually exclusive switches to a
// granularity. More than one set is a configuration error.
func ResolveGranularity(hourly, daily, weekly, monthly bool) (models.Granularity, error) {
	var (
		g     = models.GranularityNone
		count int
	)
	if hourly {
		g = models.GranularityHourly
		count++
	}
	if daily {
		g = models.GranularityDaily
		count++
	}
	if weekly {
		g = models.GranularityWeekly
		count++
	}
	if monthly {
		g = models.GranularityMonthly
		count++
	}
	if count > 1 {
		return models.GranularityNone, fmt.Errorf("only one of --hourly, --daily, --weekly, --monthly may be given")
	}
	return g, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "qusage", ".env"),
			filepath.Join(home, ".qumulo", ".env"),
		)
	}

	return paths
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
