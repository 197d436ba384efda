package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const gemsFile = "gems.yaml"

// LoadGems loads the gems game configuration.
// Search order: customPath -> ~/.triplejoy/configs/gems.yaml -> ./configs/gems.yaml -> embedded default
//
// Files only need to carry the keys they change; everything else keeps its
// default. A custom path that cannot be read or parsed is an error, the
// other locations are skipped when missing or broken.
func LoadGems(customPath string) (GemsConfig, error) {
	cfg := DefaultGemsConfig()

	// Embedded defaults first so partial files inherit them
	if err := yaml.Unmarshal(defaultGemsYAML, &cfg); err != nil {
		cfg = DefaultGemsConfig() // Fallback to hardcoded if embed fails
	}

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range searchPaths(gemsFile) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := cfg
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			continue
		}
		if candidate.Validate() != nil {
			continue
		}
		return candidate, nil
	}

	return cfg, nil
}

// searchPaths lists the non-custom locations for filename in priority order.
func searchPaths(filename string) []string {
	var paths []string
	if p := userConfigPath(filename); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", filename))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".triplejoy", "configs", filename)
}
