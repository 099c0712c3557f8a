package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		// URL selects the Postgres backend when non-empty; otherwise the
		// embedded SQLite store at SQLitePath is used.
		URL        string `mapstructure:"url"`
		SQLitePath string `mapstructure:"sqlite_path"`
	} `mapstructure:"database"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Admin struct {
		// Password seeds the default admin account on first init.
		Password string `mapstructure:"password"`
	} `mapstructure:"admin"`

	Upload struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"upload"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Authorization", "Content-Type"})
	v.SetDefault("database.sqlite_path", "data/app.db")
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "laundry-backend")
	v.SetDefault("admin.password", "admin123")
	v.SetDefault("upload.dir", "data/uploads")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Presence of DATABASE_URL selects the Postgres backend
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if path := os.Getenv("SQLITE_PATH"); path != "" {
		cfg.Database.SQLitePath = path
	}
	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Server.Port = n
		}
	}
	if pw := os.Getenv("ADMIN_PASSWORD"); pw != "" {
		cfg.Admin.Password = pw
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		cfg.Upload.Dir = dir
	}

	// Override JWT secret from environment if not set
	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		if cfg.JWT.Secret == "" {
			cfg.JWT.Secret = "laundry-dev-secret"
			log.Printf("[Config] JWT_SECRET not set, using development default")
		}
	}

	return &cfg
}
