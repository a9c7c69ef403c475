package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Source names accepted by SURVEY_SOURCE.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	SurveySource     string
	SurveyCSVPath    string
	TrafficCSVPaths  []string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	PostgresTable    string
	MaxRetries       int

	PlotEnabled    bool
	PlotOutputPath string
	CurveCSVPath   string

	ColorOutput bool
	LogLevel    string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		SurveySource:    strings.ToLower(getEnv("SURVEY_SOURCE", SourceCSV)),
		SurveyCSVPath:   getEnv("SURVEY_CSV_PATH", "data/init-survey.csv"),
		TrafficCSVPaths: getEnvList("TRAFFIC_CSV_PATHS", []string{"data/thurs-m.csv", "data/thurs-a.csv"}),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "survey"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "survey123"),
		PostgresDB:       getEnv("POSTGRES_DB", "congestion_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTable:    getEnv("POSTGRES_TABLE", "survey_responses"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),

		PlotEnabled:    getEnvBool("PLOT_ENABLED", false),
		PlotOutputPath: getEnv("PLOT_OUTPUT_PATH", "./output/elasticity.png"),
		CurveCSVPath:   os.Getenv("CURVE_CSV_PATH"),

		ColorOutput: getEnvBool("COLOR_OUTPUT", true),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
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

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// EnvInt reads an integer environment variable, returning fallback when it
// is unset or malformed.
func EnvInt(key string, fallback int) int {
	return getEnvInt(key, fallback)
}

// Env reads a string environment variable, returning fallback when unset.
func Env(key, fallback string) string {
	return getEnv(key, fallback)
}
