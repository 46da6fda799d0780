package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataPath string
	DBPath   string

	// DevMode enables the deterministic synthetic day source and the seed
	// book catalog. Read from config.yml, overridable by the --dev flag.
	DevMode bool `yaml:"dev_mode"`

	// DefaultExamType is used by CLI flows when no exam type is given.
	DefaultExamType string `yaml:"default_exam_type"`
}

// New resolves the data directory and merges config.yml when present.
// A missing config file is not an error.
func New(dataPath string) (Config, error) {
	if dataPath == "" {
		return Config{}, fmt.Errorf("data path is required")
	}
	cfg := Config{
		DataPath:        dataPath,
		DBPath:          filepath.Join(dataPath, ".etut", "etut.db"),
		DefaultExamType: "TYT",
	}
	raw, err := os.ReadFile(filepath.Join(dataPath, ".etut", "config.yml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.DataPath = dataPath
	cfg.DBPath = filepath.Join(dataPath, ".etut", "etut.db")
	if cfg.DefaultExamType == "" {
		cfg.DefaultExamType = "TYT"
	}
	return cfg, nil
}
