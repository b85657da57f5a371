package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort        string `env:"HTTP_PORT" envDefault:"8000"`
	StorePath       string `env:"STORE_PATH" envDefault:"mock_users.json"`
	DatabaseURL     string `env:"DATABASE_URL"`
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`
	TokenTTLSeconds int    `env:"TOKEN_TTL_SECONDS" envDefault:"3600"`
	DefaultUserName string `env:"DEFAULT_USER_NAME" envDefault:"New User"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
