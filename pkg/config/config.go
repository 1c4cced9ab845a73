package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	UsageStoreRedis    = "redis"
	UsageStorePostgres = "postgres"
	UsageStoreMemory   = "memory"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Matching MatchingConfig
	Usage    UsageConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisDB       int
	PoolSize      int
	MinIdleConns  int
}

// MatchingConfig holds duplicate detection weights and search limits.
type MatchingConfig struct {
	NameWeight        float64
	EmailWeight       float64
	PhoneWeight       float64
	WebsiteWeight     float64
	NameSimilarityMin float64
	Threshold         float64
	DefaultLimit      int
	MaxLimit          int
}

type UsageConfig struct {
	Store      string
	MaxRecords int
	TTL        time.Duration
	LockTTL    time.Duration
	LockWait   time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs []error
	intVal := func(key string, def int) int {
		v, err := getEnvInt(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	floatVal := func(key string, def float64) float64 {
		v, err := getEnvFloat(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	durationVal := func(key string, def time.Duration) time.Duration {
		v, err := getEnvDuration(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "myBizHub"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "mybizhub"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisUsername: getEnv("REDIS_USERNAME", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       intVal("REDIS_DB", 0),
			PoolSize:      intVal("REDIS_POOL_SIZE", 10),
			MinIdleConns:  intVal("REDIS_MIN_IDLE_CONNS", 2),
		},
		Matching: MatchingConfig{
			NameWeight:        floatVal("MATCH_NAME_WEIGHT", 0.4),
			EmailWeight:       floatVal("MATCH_EMAIL_WEIGHT", 0.3),
			PhoneWeight:       floatVal("MATCH_PHONE_WEIGHT", 0.2),
			WebsiteWeight:     floatVal("MATCH_WEBSITE_WEIGHT", 0.1),
			NameSimilarityMin: floatVal("MATCH_NAME_SIMILARITY_MIN", 0.7),
			Threshold:         floatVal("MATCH_THRESHOLD", 0.5),
			DefaultLimit:      intVal("SEARCH_DEFAULT_LIMIT", 10),
			MaxLimit:          intVal("SEARCH_MAX_LIMIT", 50),
		},
		Usage: UsageConfig{
			Store:      getEnv("USAGE_STORE", UsageStoreRedis),
			MaxRecords: intVal("USAGE_MAX_RECORDS", 50),
			TTL:        durationVal("USAGE_TTL", 0),
			LockTTL:    durationVal("USAGE_LOCK_TTL", 5*time.Second),
			LockWait:   durationVal("USAGE_LOCK_WAIT", 2*time.Second),
		},
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail later at request time.
func (c *Config) Validate() error {
	if c.JWT.SecretKey == "" {
		return errors.New("missing jwt secret")
	}

	if c.Database.Password == "" && c.Usage.Store == UsageStorePostgres {
		return errors.New("missing database password")
	}

	switch c.Usage.Store {
	case UsageStoreRedis, UsageStorePostgres, UsageStoreMemory:
	default:
		return fmt.Errorf("unknown usage store %q", c.Usage.Store)
	}

	if c.Redis.PoolSize <= 0 || c.Redis.MinIdleConns < 0 || c.Redis.MinIdleConns > c.Redis.PoolSize {
		return errors.New("redis pool must satisfy 0 <= min idle <= pool size, pool size > 0")
	}

	if c.Usage.MaxRecords < 0 {
		return errors.New("usage max records must not be negative")
	}

	m := c.Matching
	for name, w := range map[string]float64{
		"name":    m.NameWeight,
		"email":   m.EmailWeight,
		"phone":   m.PhoneWeight,
		"website": m.WebsiteWeight,
	} {
		if w < 0 {
			return fmt.Errorf("%s weight must not be negative", name)
		}
	}
	if sum := m.NameWeight + m.EmailWeight + m.PhoneWeight + m.WebsiteWeight; math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("match weights must sum to 1, got %g", sum)
	}
	if m.Threshold < 0 || m.Threshold > 1 {
		return errors.New("match threshold must be within [0, 1]")
	}
	if m.NameSimilarityMin < 0 || m.NameSimilarityMin > 1 {
		return errors.New("name similarity minimum must be within [0, 1]")
	}
	if m.DefaultLimit <= 0 || m.MaxLimit < m.DefaultLimit {
		return errors.New("search limits must satisfy 0 < default <= max")
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
