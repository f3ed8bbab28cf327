package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/sirupsen/logrus"
)

type DatabaseConfig struct {
	Driver string
	DSN    string
	Name   string
}

type Config struct {
	Port         string
	GinMode      string
	CORSOrigins  []string
	LogLevel     logrus.Level
	LogFormat    string
	Location     *time.Location
	APIKeyHash   string
	SeedDemoData bool
	Database     DatabaseConfig
}

// Load reads the process environment. Call godotenv.Load first if a .env file
// should be honoured.
func Load() (*Config, error) {
	level, err := logrus.ParseLevel(envOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}

	format := strings.ToLower(envOrDefault("LOG_FORMAT", "text"))
	if format != "text" && format != "json" {
		return nil, fmt.Errorf("config: LOG_FORMAT must be text or json, got %q", format)
	}

	loc, err := time.LoadLocation(envOrDefault("HOTEL_TIMEZONE", "America/Sao_Paulo"))
	if err != nil {
		return nil, fmt.Errorf("config: HOTEL_TIMEZONE: %w", err)
	}

	seed, err := strconv.ParseBool(envOrDefault("SEED_DEMO_DATA", "false"))
	if err != nil {
		return nil, fmt.Errorf("config: SEED_DEMO_DATA: %w", err)
	}

	db, err := resolveDatabase()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:         envOrDefault("PORT", "8080"),
		GinMode:      envOrDefault("GIN_MODE", "release"),
		CORSOrigins:  parseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		LogLevel:     level,
		LogFormat:    format,
		Location:     loc,
		APIKeyHash:   strings.TrimSpace(os.Getenv("API_KEY_HASH")),
		SeedDemoData: seed,
		Database:     db,
	}, nil
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func resolveDatabase() (DatabaseConfig, error) {
	driver := strings.ToLower(envOrDefault("DB_DRIVER", "mysql"))
	switch driver {
	case "mysql":
		dsn, name, err := resolveMySQLDSN()
		if err != nil {
			return DatabaseConfig{}, fmt.Errorf("config: mysql dsn: %w", err)
		}
		return DatabaseConfig{Driver: driver, DSN: dsn, Name: name}, nil
	case "postgres":
		dsn, name := resolvePostgresDSN()
		return DatabaseConfig{Driver: driver, DSN: dsn, Name: name}, nil
	case "sqlite":
		dsn := envOrDefault("DATABASE_URL", "file:hotel.db?_pragma=foreign_keys(1)")
		return DatabaseConfig{Driver: driver, DSN: dsn}, nil
	default:
		return DatabaseConfig{}, fmt.Errorf("config: DB_DRIVER must be mysql, postgres or sqlite, got %q", driver)
	}
}

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, dbName, nil
}

func resolveMySQLDSN() (string, string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, strings.TrimSpace(os.Getenv("DB_NAME")), nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := os.Getenv("DB_PASS")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_db")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	)
	return dsn, dbName, nil
}

func resolvePostgresDSN() (string, string) {
	if raw := strings.TrimSpace(os.Getenv("DATABASE_URL")); raw != "" {
		return raw, strings.TrimSpace(os.Getenv("DB_NAME"))
	}

	dbName := envOrDefault("DB_NAME", "hotel_db")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		envOrDefault("DB_HOST", "127.0.0.1"),
		envOrDefault("DB_USER", "postgres"),
		os.Getenv("DB_PASS"),
		dbName,
		envOrDefault("DB_PORT", "5432"),
		envOrDefault("DB_SSLMODE", "disable"),
	)
	return dsn, dbName
}
