package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Server
	Port string
	Host string
	Env  string

	// MongoDB
	MongoURI     string
	DatabaseName string
	MongoTimeout int // seconds

	// JWT
	JWTSecret     string
	JWTExpiration int // hours

	// Rate limiting for the auth routes
	RateLimit  int
	RateWindow int // seconds
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Host:          getEnv("HOST", "0.0.0.0"),
		Env:           getEnv("ENV", "development"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName:  getEnv("DATABASE_NAME", "ngo_management"),
		MongoTimeout:  getEnvAsInt("MONGO_TIMEOUT", 10),
		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiration: getEnvAsInt("JWT_EXPIRATION", 24),
		RateLimit:     getEnvAsInt("RATE_LIMIT", 30),
		RateWindow:    getEnvAsInt("RATE_WINDOW", 60),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
