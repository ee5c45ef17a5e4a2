package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreRedis = "redis"
	StoreMongo = "mongo"
)

// Config is read once at startup and passed by value to whoever needs
// it; components never reach for the environment themselves.
type Config struct {
	Port        string
	Env         string
	FrontendURL string

	MySQLDSN      string
	SessionSecret string
	SessionTTL    time.Duration

	SessionStore string
	RedisAddr    string
	MongoURI     string
	MongoDBName  string
}

// Load reads the env file named by START (".env-local" for a local run,
// ".env.docker" under docker) and fails fast on anything required.
func Load() *Config {
	if err := godotenv.Load(os.Getenv("START")); err != nil {
		log.Fatalf("Env file not found")
	}

	cfg := &Config{
		Port:          getenv("PORT", "5000"),
		Env:           getenv("APP_ENV", "development"),
		FrontendURL:   getenv("FRONTEND_URL", "http://localhost:5173"),
		MySQLDSN:      os.Getenv("MYSQL_DSN"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionStore:  getenv("SESSION_STORE", StoreRedis),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDBName:   os.Getenv("MONGO_DB_NAME"),
		SessionTTL:    14 * 24 * time.Hour,
	}

	if cfg.MySQLDSN == "" {
		log.Fatalf("MYSQL_DSN is not set in environment")
	}
	if cfg.SessionSecret == "" {
		log.Fatalf("SESSION_SECRET is not set in environment")
	}

	switch cfg.SessionStore {
	case StoreRedis:
		if cfg.RedisAddr == "" {
			log.Fatalf("REDIS_ADDR is not set in environment")
		}
	case StoreMongo:
		if cfg.MongoURI == "" {
			log.Fatalf("MONGO_URI is not set in environment")
		}
		if cfg.MongoDBName == "" {
			log.Fatalf("MONGO_DB_NAME is not set in environment")
		}
	default:
		log.Fatalf("SESSION_STORE must be %q or %q", StoreRedis, StoreMongo)
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			log.Fatalf("SESSION_TTL is not a valid duration: %q", ttl)
		}
		cfg.SessionTTL = d
	}

	return cfg
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
