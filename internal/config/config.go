package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppConfig holds the non-database settings of the core service, read
// from a YAML file. Database connection parameters come from the
// environment instead (see LoadDBConfig).
type AppConfig struct {
	Logging struct {
		LogPath  string `yaml:"logPath"`
		LogLevel string `yaml:"logLevel"` // trace, debug, info, warn, error, fatal, panic
	} `yaml:"logging"`
	Scheduler struct {
		// How often the background slot generator wakes up, in minutes.
		GenerateIntervalMin int `yaml:"generateIntervalMin"`
	} `yaml:"scheduler"`
}

func defaultAppConfig() AppConfig {
	var conf AppConfig
	conf.Logging.LogPath = "logs/core.log"
	conf.Logging.LogLevel = "info"
	conf.Scheduler.GenerateIntervalMin = 60
	return conf
}

// ParseAppConfig reads path and overlays it on the defaults. A missing
// file is not an error: the defaults are returned as-is.
func ParseAppConfig(path string) (AppConfig, error) {
	conf := defaultAppConfig()
	file, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return conf, nil
	}
	if err != nil {
		return conf, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(file, &conf); err != nil {
		return conf, fmt.Errorf("unmarshal config: %w", err)
	}
	if conf.Scheduler.GenerateIntervalMin <= 0 {
		conf.Scheduler.GenerateIntervalMin = 60
	}
	return conf, nil
}
