// config загружает настройки CLI-клиента.
// Единственный параметр ядра - базовый URL бэкенда; остальное - окружение
// (уровень логов) и каталог для хранения токенов.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DefaultFile - файл конфигурации клиента в текущем каталоге.
const DefaultFile = "fitness.yaml"

type Config struct {
	Env       string `yaml:"env" env:"FITNESS_ENV" env-default:"prod"`
	APIURL    string `yaml:"api_url" env:"FITNESS_API_URL" env-default:"http://localhost:8000"`
	StorePath string `yaml:"store_path" env:"FITNESS_STORE_PATH"`
}

// Load читает конфигурацию с приоритетом:
// path (--config) > FITNESS_CONFIG > ./fitness.yaml > только ENV.
// Пустой StorePath заменяется на <UserConfigDir>/fitness/session.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	var cfg Config

	read := func(p string) error {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("config file %q stat failed: %w", p, err)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		return nil
	}

	var err error
	switch {
	case path != "":
		err = read(path)
	case os.Getenv("FITNESS_CONFIG") != "":
		err = read(os.Getenv("FITNESS_CONFIG"))
	default:
		if _, statErr := os.Stat(DefaultFile); statErr == nil {
			err = read(DefaultFile)
		} else {
			err = cleanenv.ReadEnv(&cfg)
		}
	}
	if err != nil {
		return nil, err
	}

	if cfg.StorePath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("store_path is empty and user config dir is unknown: %w", err)
		}
		cfg.StorePath = filepath.Join(dir, "fitness", "session")
	}

	return &cfg, nil
}
