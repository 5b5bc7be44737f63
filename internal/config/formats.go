package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

func decodeINI(path string) (*ini.File, error) {
	return ini.LoadSources(ini.LoadOptions{Insensitive: true}, path)
}

func decodeTOML(path string) (*ini.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return flatten(doc)
}

func decodeYAML(path string) (*ini.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return flatten(doc)
}

// flatten turns a two-level document into ini sections of scalar strings.
// Top-level scalars land in the default section.
func flatten(doc map[string]any) (*ini.File, error) {
	cfg := newINI()
	put := func(section, key string, v any) error {
		_, err := cfg.Section(section).NewKey(key, fmt.Sprint(v))
		return err
	}
	for name, v := range doc {
		switch sec := v.(type) {
		case map[string]any:
			for k, val := range sec {
				if !isScalar(val) {
					return nil, fmt.Errorf("%s.%s: nested values are not supported", name, k)
				}
				if err := put(name, k, val); err != nil {
					return nil, fmt.Errorf("%s.%s: %w", name, k, err)
				}
			}
		default:
			if !isScalar(sec) {
				return nil, fmt.Errorf("%s: nested values are not supported", name)
			}
			if err := put(ini.DefaultSection, name, sec); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return cfg, nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool, int, int64, uint64, float64:
		return true
	}
	return false
}
