package app

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env       string   `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr  string   `envconfig:"HTTP_ADDR" default:":8080"`
	PublicURL string   `envconfig:"PUBLIC_URL" default:"http://localhost:8080"`
	CORSAllow []string `envconfig:"CORS_ALLOW" default:"*"`

	// Room lifecycle tunables
	RoomTTL       time.Duration `envconfig:"ROOM_TTL" default:"300s"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"30s"`
}

// LoadConfig reads configuration from the environment
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
