package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DriverMySQL selects the MySQL-backed project store.
	DriverMySQL = "mysql"
	// DriverSQLite selects the embedded SQLite project store.
	DriverSQLite = "sqlite"

	envProduction = "production"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	Environment string

	DBDriver   string
	MySQLDSN   string
	SQLitePath string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret         string
	AdminEmail        string
	AdminPassword     string
	AdminPasswordHash string
	SessionRevocation bool

	FrontendOrigin   string
	ProjectsCacheTTL int
	SwaggerHost      string
}

// Load builds Config from an optional .env file and the environment, then validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "3000"),
		Environment:       getEnv("APP_ENV", "development"),
		DBDriver:          strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
		MySQLDSN:          getEnv("MYSQL_DSN", ""),
		SQLitePath:        getEnv("SQLITE_PATH", "portfolio.db"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SessionRevocation: getEnvBool("SESSION_REVOCATION", false),
		FrontendOrigin:    getEnv("FRONTEND_ORIGIN", "http://localhost:5173"),
		ProjectsCacheTTL:  getEnvInt("PROJECTS_CACHE_TTL", 60),
		SwaggerHost:       os.Getenv("SWAGGER_HOST"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run safely with.
func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.AdminEmail == "" {
		return fmt.Errorf("ADMIN_EMAIL is required")
	}
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	switch c.DBDriver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDriver == DriverMySQL && c.MySQLDSN == "" {
		return fmt.Errorf("MYSQL_DSN is required when DB_DRIVER=mysql")
	}
	if c.ProjectsCacheTTL < 0 {
		return fmt.Errorf("PROJECTS_CACHE_TTL must not be negative")
	}
	return nil
}

// IsProduction reports whether cookies must carry the Secure flag.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, envProduction)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
