package config

import "fmt"

// Plugin wraps the final configuration before a run starts. Plugins are
// applied in order and each receives the output of the previous one.
type Plugin func(cfg *Configuration) (*Configuration, error)

func ApplyPlugins(cfg *Configuration, plugins ...Plugin) (*Configuration, error) {
	for i, p := range plugins {
		next, err := p(cfg)
		if err != nil {
			return nil, fmt.Errorf("plugin %d failed: %w", i, err)
		}
		if next != nil {
			cfg = next
		}
	}
	return cfg, nil
}

// CIBuildPlugin stamps the CI build id (CI_BUILD_ID) into the run settings
// unless one is already configured.
func CIBuildPlugin(getenv func(string) string) Plugin {
	return func(cfg *Configuration) (*Configuration, error) {
		if cfg.Run.CIBuildID != "" {
			return cfg, nil
		}
		if id := getenv("CI_BUILD_ID"); id != "" {
			cfg.Run.CIBuildID = id
		}
		return cfg, nil
	}
}
