package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "bikecity.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.bikecity/configs/bikecity.yaml -> ./configs/bikecity.yaml -> embedded default
//
// Files are decoded over DefaultConfig, so a file only needs the keys it changes.
func Load(customPath string) (GameConfig, error) {
	return LoadWithTraffic(customPath, "")
}

// LoadWithTraffic is Load with the traffic preset replaced by traffic when it
// is not empty.
func LoadWithTraffic(customPath, traffic string) (GameConfig, error) {
	cfg, err := load(customPath, traffic)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func load(customPath, traffic string) (GameConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data, traffic)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data, traffic); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parse(data, traffic); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML, traffic)
	if err != nil {
		// A bad override is the caller's mistake, not the embed's.
		if traffic != "" {
			return cfg, err
		}
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and applies the traffic preset it names.
func Parse(data []byte) (GameConfig, error) {
	return parse(data, "")
}

func parse(data []byte, traffic string) (GameConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}

	name := string(cfg.Traffic.Preset)
	if traffic != "" {
		name = traffic
	}
	preset, err := ParseTrafficPreset(name)
	if err != nil {
		return cfg, err
	}
	ApplyTrafficPreset(&cfg, preset)
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bikecity", "configs", filename)
}
