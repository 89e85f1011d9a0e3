package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	AppEnv         string
	MongoURI       string
	MongoDB        string
	RedisURL       string
	KafkaBrokers   []string
	KafkaTopic     string
	JWTSecret      string
	AdminEnforce   bool
	SeedOnStart    bool
	RequestTimeout time.Duration
	CacheTTL       time.Duration
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           getEnv("PORT", "8080"),
		AppEnv:         getEnv("APP_ENV", "development"),
		MongoURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "food-order-app"),
		RedisURL:       getEnv("REDIS_URL", ""),
		KafkaBrokers:   splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "order.created"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AdminEnforce:   getEnv("ADMIN_ENFORCE", "false") == "true",
		SeedOnStart:    getEnv("SEED_ON_START", "false") == "true",
		RequestTimeout: 15 * time.Second,
		CacheTTL:       5 * time.Minute,
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func splitList(val string) []string {
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
