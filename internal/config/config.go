package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Catalog     CatalogConfig
	Recency     RecencyConfig
	Persistence PersistenceConfig
	Events      EventsConfig
	Keys        APIKeys
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	OtelEnabled        bool
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
}

type CatalogConfig struct {
	Source            string // "file", "postgres" or "default"
	ManifestPath      string
	MatcherTablesPath string
	AssetLocalDir     string
}

type RecencyConfig struct {
	GlobalCapacity   int
	CategoryCapacity int
}

type PersistenceConfig struct {
	DurableStore  string // "redis", "postgres" or "none"
	RedisURL      string
	StateKey      string
	StateTTL      time.Duration
	LocalStateDir string
	Timeout       time.Duration
	LogFilePath   string
}

type EventsConfig struct {
	Topic       string
	NatsEnabled bool
	NatsURL     string
}

type APIKeys struct {
	JwtSecret string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Catalog: CatalogConfig{
			Source:            getEnv("CATALOG_SOURCE", "file"),
			ManifestPath:      getEnv("CATALOG_MANIFEST_PATH", "assets/manifest.json"),
			MatcherTablesPath: getEnv("MATCHER_TABLES_PATH", ""),
			AssetLocalDir:     getEnv("ASSET_LOCAL_DIR", os.TempDir()),
		},
		Recency: RecencyConfig{
			GlobalCapacity:   getEnvAsInt("RECENCY_GLOBAL_CAPACITY", 50),
			CategoryCapacity: getEnvAsInt("RECENCY_CATEGORY_CAPACITY", 10),
		},
		Persistence: PersistenceConfig{
			DurableStore:  getEnv("DURABLE_STORE", "redis"),
			RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			StateKey:      getEnv("STATE_KEY", "asset_selector:recency_state"),
			StateTTL:      getEnvAsDuration("STATE_TTL", 0),
			LocalStateDir: getEnv("LOCAL_STATE_DIR", ""),
			Timeout:       getEnvAsDuration("PERSIST_TIMEOUT", 3*time.Second),
			LogFilePath:   getEnv("PERSIST_LOG_FILE", ""),
		},
		Events: EventsConfig{
			Topic:       getEnv("SELECTION_TOPIC", "asset_selected"),
			NatsEnabled: getEnvAsBool("NATS_ENABLED", false),
			NatsURL:     getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Keys: APIKeys{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
