package config

import "os"

// Config carries everything the API process needs from the environment.
// `.env` files are loaded by main via godotenv before Load runs.
type Config struct {
	Addr           string
	DatabaseURL    string
	MigrationsPath string
	RedisAddr      string
	RedisPassword  string
	JWTSecret      string
	AdminEmail     string
	AdminPassword  string
	WhatsAppPhone  string
	LogFile        string
	Locale         string
}

func Load() Config {
	return Config{
		Addr:           getenv("STOREFRONT_ADDR", ":8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: getenv("MIGRATIONS_PATH", "db/migrations"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		WhatsAppPhone:  getenv("WHATSAPP_PHONE", "+5491158102407"),
		LogFile:        getenv("LOG_FILE", "./logs/app.log"),
		Locale:         getenv("STORE_LOCALE", "es-AR"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
