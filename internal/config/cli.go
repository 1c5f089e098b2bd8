package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// DefaultAPIBase is where usercli looks for the user API when nothing else is configured.
const DefaultAPIBase = "http://localhost:8080/api"

// CLIConfig holds the settings of usercli.
type CLIConfig struct {
	APIBase      string        `yaml:"apiBase,omitempty"`
	Token        string        `yaml:"token,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
	KafkaBrokers []string      `yaml:"kafkaBrokers,omitempty"`
	KafkaTopic   string        `yaml:"kafkaTopic,omitempty"`
	JWTSecret    string        `yaml:"jwtSecret,omitempty"`
	LogLevel     string        `yaml:"logLevel,omitempty"`
}

// LoadFile attempts to read usercli.yml or usercli.yaml from the given directory.
// Returns a zero-value config (not an error) if no config file exists.
func LoadFile(dir string) (*CLIConfig, error) {
	for _, name := range []string{"usercli.yml", "usercli.yaml"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var cfg CLIConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &CLIConfig{}, nil
}

// NewCLI registers the usercli flags on fs. Defaults come from, in increasing
// priority: built-in values, the config file in dir, the environment. The caller
// parses fs, which makes flags win over everything else.
func NewCLI(fs *flag.FlagSet, dir string) (*CLIConfig, error) {
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	file, err := LoadFile(dir)
	if err != nil {
		return nil, err
	}

	cfg := &CLIConfig{}
	fs.StringVar(&cfg.APIBase, "api-base", getEnv("API_BASE", orDefault(file.APIBase, DefaultAPIBase)), "Base URL of the user API")
	fs.StringVar(&cfg.Token, "token", getEnv("API_TOKEN", file.Token), "Bearer token sent with every request")
	fs.DurationVar(&cfg.Timeout, "timeout", durationEnv("API_TIMEOUT", file.Timeout), "Per request timeout, 0 waits forever")
	fs.StringSliceVar(&cfg.KafkaBrokers, "kafka-brokers", orDefaultSlice(splitEnv("KAFKA_BROKERS", ","), file.KafkaBrokers), "Kafka brokers used by watch")
	fs.StringVar(&cfg.KafkaTopic, "kafka-topic", getEnv("KAFKA_TOPIC", orDefault(file.KafkaTopic, DefaultKafkaTopic)), "Kafka topic used by watch")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", getEnv("JWT_SECRET", file.JWTSecret), "HS256 secret used by token")
	fs.StringVar(&cfg.LogLevel, "log-level", getEnv("LOG_LEVEL", orDefault(file.LogLevel, "warn")), "which log level to output")

	return cfg, nil
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func orDefaultSlice(v, fallback []string) []string {
	if len(v) > 0 {
		return v
	}
	return fallback
}
