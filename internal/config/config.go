package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends
const (
	BackendMemory    = "memory"
	BackendRedis     = "redis"
	BackendCassandra = "cassandra"
	BackendSQLite    = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Host  string
	Port  string
	Debug bool

	StoreBackend string
	Redis        RedisConfig
	Cassandra    CassandraConfig
	SQLitePath   string

	// CatalogPath optionally replaces the built-in definitions table with a YAML file.
	CatalogPath string

	Game GameConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration // 0 = saves never expire
}

// CassandraConfig holds Cassandra-specific configuration
type CassandraConfig struct {
	Hosts       []string
	Keyspace    string
	Username    string
	Password    string
	Consistency string
	Timeout     time.Duration
}

// GameConfig holds the pacing of running games.
type GameConfig struct {
	FrameInterval    time.Duration
	AutosaveInterval time.Duration
	StreamInterval   time.Duration
	ClickRate        float64 // clicks per second allowed per game
	ClickBurst       int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	host := getEnv("HOST", "0.0.0.0")
	port := getEnv("PORT", "8080")

	debug, err := strconv.ParseBool(getEnv("LOG_DEBUG", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_DEBUG value: %w", err)
	}

	backend := strings.ToLower(getEnv("STORE_BACKEND", BackendMemory))
	switch backend {
	case BackendMemory, BackendRedis, BackendCassandra, BackendSQLite:
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND value: %q", backend)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}
	// 0 keeps saves forever
	saveTTL, err := nonNegativeInt("SAVE_TTL_SECONDS", "0")
	if err != nil {
		return nil, err
	}

	cassandraTimeout, err := positiveInt("CASSANDRA_TIMEOUT_SECONDS", "5")
	if err != nil {
		return nil, err
	}

	frameMs, err := positiveInt("FRAME_MS", "100")
	if err != nil {
		return nil, err
	}
	autosaveSeconds, err := positiveInt("AUTOSAVE_SECONDS", "20")
	if err != nil {
		return nil, err
	}
	streamMs, err := positiveInt("STREAM_MS", "1000")
	if err != nil {
		return nil, err
	}
	clickBurst, err := positiveInt("CLICK_BURST", "40")
	if err != nil {
		return nil, err
	}
	clickRate, err := strconv.ParseFloat(getEnv("CLICK_RATE", "20"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CLICK_RATE value: %w", err)
	}
	if clickRate <= 0 {
		return nil, fmt.Errorf("invalid CLICK_RATE value: must be positive")
	}

	return &Config{
		Host:         host,
		Port:         port,
		Debug:        debug,
		StoreBackend: backend,
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			TTL:      time.Duration(saveTTL) * time.Second,
		},
		Cassandra: CassandraConfig{
			Hosts:       parseHosts(getEnv("CASSANDRA_HOSTS", "localhost:9042")),
			Keyspace:    getEnv("CASSANDRA_KEYSPACE", "quantum_forge"),
			Username:    getEnv("CASSANDRA_USERNAME", ""),
			Password:    getEnv("CASSANDRA_PASSWORD", ""),
			Consistency: getEnv("CASSANDRA_CONSISTENCY", "QUORUM"),
			Timeout:     time.Duration(cassandraTimeout) * time.Second,
		},
		SQLitePath:  getEnv("SQLITE_PATH", "data/saves.db"),
		CatalogPath: getEnv("CATALOG_PATH", ""),
		Game: GameConfig{
			FrameInterval:    time.Duration(frameMs) * time.Millisecond,
			AutosaveInterval: time.Duration(autosaveSeconds) * time.Second,
			StreamInterval:   time.Duration(streamMs) * time.Millisecond,
			ClickRate:        clickRate,
			ClickBurst:       clickBurst,
		},
	}, nil
}

// Address returns the full address (host:port)
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func positiveInt(key, defaultValue string) (int, error) {
	n, err := strconv.Atoi(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s value: must be positive", key)
	}
	return n, nil
}

func nonNegativeInt(key, defaultValue string) (int, error) {
	n, err := strconv.Atoi(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s value: must not be negative", key)
	}
	return n, nil
}

// parseHosts parses a comma-separated list of hosts
func parseHosts(hostsStr string) []string {
	parts := strings.Split(hostsStr, ",")
	hosts := make([]string, 0, len(parts))
	for _, part := range parts {
		host := strings.TrimSpace(part)
		if host != "" {
			hosts = append(hosts, host)
		}
	}
	if len(hosts) == 0 {
		return []string{"localhost:9042"}
	}
	return hosts
}
