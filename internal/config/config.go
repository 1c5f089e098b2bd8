package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
)

const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

// Config holds the settings of the user-api server.
type Config struct {
	Port         string
	Storage      string
	DBUser       string
	DBPass       string
	DBHost       string
	DBPort       string
	DBName       string
	RedisAddr    string
	CacheTTL     time.Duration
	KafkaBrokers []string
	KafkaTopic   string
	CORSOrigin   string
	JWTSecret    string
	RateLimit    float64
	RateBurst    int
	LogFormat    string
	LogLevel     string
}

// New reads a .env file when present, then environment variables, then the given
// command line arguments. Flags win over environment variables.
func New(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	fs := flag.NewFlagSet("user-api", flag.ContinueOnError)

	fs.StringVar(&cfg.Port, "port", getEnv("PORT", "8080"), "Port to listen on")
	fs.StringVar(&cfg.Storage, "storage", getEnv("STORAGE", StorageMySQL), "Where users are kept: mysql or memory")
	fs.StringVar(&cfg.DBUser, "db-user", getEnv("DB_USER", "root"), "MySQL user")
	fs.StringVar(&cfg.DBPass, "db-pass", os.Getenv("DB_PASS"), "MySQL password")
	fs.StringVar(&cfg.DBHost, "db-host", getEnv("DB_HOST", "127.0.0.1"), "MySQL host")
	fs.StringVar(&cfg.DBPort, "db-port", getEnv("DB_PORT", "3306"), "MySQL port")
	fs.StringVar(&cfg.DBName, "db-name", getEnv("DB_NAME", "sample_db"), "MySQL database name")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", os.Getenv("REDIS_ADDR"), "Redis address, empty disables the list cache")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", durationEnv("CACHE_TTL", 5*time.Minute), "How long the user list stays cached")
	fs.StringSliceVar(&cfg.KafkaBrokers, "kafka-brokers", splitEnv("KAFKA_BROKERS", ","), "Kafka brokers (comma separated), empty disables user events")
	fs.StringVar(&cfg.KafkaTopic, "kafka-topic", getEnv("KAFKA_TOPIC", DefaultKafkaTopic), "Kafka topic for user events")
	fs.StringVar(&cfg.CORSOrigin, "cors-origin", getEnv("CORS_ORIGIN", "*"), "Allowed CORS origin")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", os.Getenv("JWT_SECRET"), "HS256 secret guarding mutating routes, empty disables auth")
	fs.Float64Var(&cfg.RateLimit, "rate-limit", floatEnv("RATE_LIMIT", 10), "Requests per second allowed per client")
	fs.IntVar(&cfg.RateBurst, "rate-burst", intEnv("RATE_BURST", 20), "Burst size of the per client rate limiter")
	fs.StringVar(&cfg.LogFormat, "log-format", getEnv("LOG_FORMAT", "json"), "which log format to use")
	fs.StringVar(&cfg.LogLevel, "log-level", getEnv("LOG_LEVEL", "info"), "which log level to output")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.Storage != StorageMySQL && cfg.Storage != StorageMemory {
		return nil, fmt.Errorf("invalid storage: %q", cfg.Storage)
	}

	return cfg, nil
}

// DSN builds the MySQL data source name for the configured database.
func (c *Config) DSN() string {
	m := mysql.NewConfig()
	m.User = c.DBUser
	m.Passwd = c.DBPass
	m.Net = "tcp"
	m.Addr = net.JoinHostPort(c.DBHost, c.DBPort)
	m.DBName = c.DBName
	m.ParseTime = true
	m.Loc = time.Local
	m.Params = map[string]string{"charset": "utf8mb4"}
	return m.FormatDSN()
}

func getEnv(key, fallback string) string {
	if env := os.Getenv(key); env != "" {
		return env
	}
	return fallback
}

func splitEnv(key, sep string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(value, sep) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

func floatEnv(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if i, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return i
	}
	return fallback
}
