package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_BASE_DIR pins scenario rooms to a fixed directory; empty means a
	// per-test temporary directory.
	BaseDir string `envconfig:"E2E_BASE_DIR"`
	Room    string `envconfig:"E2E_ROOM" default:"general"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
