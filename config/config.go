package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	AutoMigrate     bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// ProviderConfig holds the endpoint of one game launcher.
type ProviderConfig struct {
	BaseURL    string
	OperatorID string
	LobbyURL   string
}

type Config struct {
	Host string
	Port string

	Database DatabaseConfig
	RedisURL string

	WorkerConcurrency   int
	AdminLoginRateLimit int

	LogLevel  string
	LogFormat string

	MasterAgentCode   string
	MasterAgentSecret string

	AdminJWTSecret string
	AdminTokenTTL  time.Duration

	SkipSignVerification bool
	StrictWinReference   bool
	PragmaticSecretKey   string

	SessionTTL             time.Duration
	BalanceCacheTTL        time.Duration
	CallbackLogRetention   time.Duration
	KYCRequiredForWithdraw bool

	Providers map[string]ProviderConfig
}

// LauncherNames lists the providers whose endpoints are read from the environment.
var LauncherNames = []string{"gitslotpark", "pragmatic", "spadegaming", "evolution"}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using system env")
	}

	cfg := &Config{
		Host: GetEnv("HOST", "127.0.0.1"),
		Port: GetEnv("PORT", "3000"),
		Database: DatabaseConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", ""),
			Name:            GetEnv("DB_NAME", "gamewallet"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			AutoMigrate:     GetBoolEnv("DB_AUTO_MIGRATE", false),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		RedisURL:               GetEnv("REDIS_URL", ""),
		WorkerConcurrency:      GetIntEnv("WORKER_CONCURRENCY", 10),
		AdminLoginRateLimit:    GetIntEnv("ADMIN_LOGIN_RATE_LIMIT", 5),
		LogLevel:               GetEnv("LOG_LEVEL", "info"),
		LogFormat:              GetEnv("LOG_FORMAT", "text"),
		MasterAgentCode:        GetEnv("MASTER_AGENT_CODE", ""),
		MasterAgentSecret:      GetEnv("MASTER_AGENT_SECRET", ""),
		AdminJWTSecret:         GetEnv("ADMIN_JWT_SECRET", ""),
		AdminTokenTTL:          GetDurationEnv("ADMIN_TOKEN_TTL", 8*time.Hour),
		SkipSignVerification:   GetBoolEnv("SEAMLESS_SKIP_SIGN", false),
		StrictWinReference:     GetBoolEnv("SEAMLESS_STRICT_WIN_REFERENCE", false),
		PragmaticSecretKey:     GetEnv("PRAGMATIC_SECRET_KEY", ""),
		SessionTTL:             GetDurationEnv("SESSION_TTL", 24*time.Hour),
		BalanceCacheTTL:        GetDurationEnv("BALANCE_CACHE_TTL", 30*time.Second),
		CallbackLogRetention:   GetDurationEnv("CALLBACK_LOG_RETENTION", 30*24*time.Hour),
		KYCRequiredForWithdraw: GetBoolEnv("KYC_REQUIRED_FOR_WITHDRAW", false),
		Providers:              map[string]ProviderConfig{},
	}

	for _, name := range LauncherNames {
		prefix := strings.ToUpper(name)
		cfg.Providers[name] = ProviderConfig{
			BaseURL:    GetEnv(prefix+"_BASE_URL", ""),
			OperatorID: GetEnv(prefix+"_OPERATOR_ID", ""),
			LobbyURL:   GetEnv(prefix+"_LOBBY_URL", ""),
		}
	}

	return cfg
}

func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func GetEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("invalid value for %s: %s", key, value)
		return defaultValue
	}
	return n
}

func GetBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		logrus.Warnf("invalid value for %s: %s", key, value)
		return defaultValue
	}
	return b
}

// GetDurationEnv accepts Go durations ("90s", "24h").
func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logrus.Warnf("invalid value for %s: %s", key, value)
		return defaultValue
	}
	return d
}
