package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	CSVPath    string
	ExportPath string

	StorageDriver string // "postgres" or "sqlite"
	TableName     string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SQLitePath string

	HTTPAddr   string
	MaxRetries int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		CSVPath:    getEnv("CSV_PATH", "./data/cleaned_data.csv"),
		ExportPath: getEnv("EXPORT_PATH", ""),

		StorageDriver: getEnv("STORAGE_DRIVER", "postgres"),
		TableName:     getEnv("TABLE_NAME", "cars"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "cars"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "cars123"),
		PostgresDB:       getEnv("POSTGRES_DB", "car_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SQLitePath: getEnv("SQLITE_PATH", "./data/cars.db"),

		HTTPAddr:   getEnv("HTTP_ADDR", ":8080"),
		MaxRetries: getEnvInt("MAX_RETRIES", 10),
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
