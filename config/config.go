package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultTargetURL = "https://ackodrive.com/collection/tata-cars/"

// Fetch modes.
const (
	FetchModeHTTP   = "http"
	FetchModeChrome = "chrome"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	TargetURL     string
	CSVOutputPath string

	ProbeTimeoutMs int
	FetchTimeoutMs int
	FetchMode      string
	ChromeBin      string
	UserAgent      string

	SkipIncomplete bool
	LogLevel       string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	MaxRetries       int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		TargetURL:     getEnv("TARGET_URL", DefaultTargetURL),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/car_listings.csv"),

		ProbeTimeoutMs: getEnvInt("PROBE_TIMEOUT_MS", 5000),
		FetchTimeoutMs: getEnvInt("FETCH_TIMEOUT_MS", 30000),
		FetchMode:      strings.ToLower(getEnv("FETCH_MODE", FetchModeHTTP)),
		ChromeBin:      getEnv("CHROME_BIN", ""),
		UserAgent:      getEnv("USER_AGENT", ""),

		SkipIncomplete: getEnvBool("SKIP_INCOMPLETE", false),
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "cars_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),
	}
}

// ProbeTimeout returns the reachability probe deadline.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutMs) * time.Millisecond
}

// FetchTimeout returns the full-page fetch deadline.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMs) * time.Millisecond
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
