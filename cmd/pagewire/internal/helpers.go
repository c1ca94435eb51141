package internal

import (
	"os"
	"path/filepath"

	"github.com/pagewire/pagewire/pkg/config"
)

var version = "dev"

func GetVersion() string { return version }

func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pagewire", "config.json")
}

func LoadConfig() (*config.Config, error) {
	return config.LoadConfig(GetConfigPath())
}
