package config

import (
	"log"
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds the tunable settings for the server. Secrets (DATABASE_URL,
// OPENWEATHER_API_KEY) stay in the environment and are read where needed.
type Config struct {
	Port            string   `yaml:"port"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	BcryptCost      int      `yaml:"bcrypt_cost"`
	SessionTTLHours int      `yaml:"session_ttl_hours"`
	LoginRPS        float64  `yaml:"login_rps"`
	LoginBurst      int      `yaml:"login_burst"`
}

func defaults() Config {
	return Config{
		Port: "5050",
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:8000",
		},
		BcryptCost:      10,
		SessionTTLHours: 6,
		LoginRPS:        5,
		LoginBurst:      10,
	}
}

// Load reads config.yaml if present and overlays it on the defaults.
// PORT from the environment wins over both.
func Load() Config {
	cfg := defaults()

	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatal("Failed to parse config.yaml: ", err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	return cfg
}
