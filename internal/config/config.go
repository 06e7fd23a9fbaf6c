package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           string        `envconfig:"PORT" default:"3001"`
	DBDriver       string        `envconfig:"DB_DRIVER" default:"sqlite"` // sqlite | postgres
	DBDSN          string        `envconfig:"DB_DSN"`                     // empty: in-memory only
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"5s"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFile        string        `envconfig:"LOG_FILE"`
	CORSOrigins    string        `envconfig:"CORS_ORIGINS" default:"*"`
	BodyLimit      int           `envconfig:"BODY_LIMIT" default:"1048576"`
	LoginRateMax   int           `envconfig:"LOGIN_RATE_MAX" default:"20"`
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using process environment")
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	log.Printf("[config] PORT=%s DB_DRIVER=%s DB_DSN set=%t LOG_LEVEL=%s", cfg.Port, cfg.DBDriver, cfg.DBDSN != "", cfg.LogLevel)
	return cfg, nil
}
