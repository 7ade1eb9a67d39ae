package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis      Redis  `yaml:"redis"`
	Board      Board  `yaml:"board"`
	Bot        Bot    `yaml:"bot"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	// TTL of stored games and players, 0 keeps them forever.
	TTL time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"24h"`
}

type Board struct {
	Rows         int    `yaml:"rows" env:"BOARD_ROWS" env-default:"6"`
	MaxRowLength uint8  `yaml:"max-row-length" env:"BOARD_MAX_ROW_LENGTH" env-default:"8"`
	LayoutPath   string `yaml:"layout-path" env:"BOARD_LAYOUT_PATH"`
}

type Bot struct {
	// Seed of the bot and board generator, 0 seeds from the clock.
	Seed uint64 `yaml:"seed" env:"BOT_SEED" env-default:"0"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
