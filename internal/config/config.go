package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// Source is a flat section/key store with typed lookups. Absent or unparseable
// values fall back to the supplied default.
type Source interface {
	GetInteger(section, key string, def int) int
	GetReal(section, key string, def float64) float64
	GetBoolean(section, key string, def bool) bool
	GetString(section, key, def string) string
}

// File is a Source backed by a decoded config file. Every format ends up in
// an ini.File so typed lookups share ini's parsing rules.
type File struct {
	path string
	cfg  *ini.File
}

// Load reads path and decodes it according to its extension.
func Load(path string) (*File, error) {
	decode, err := decoderFor(path)
	if err != nil {
		return nil, err
	}
	cfg, err := decode(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &File{path: path, cfg: cfg}, nil
}

// FromMap builds a File from already decoded values. Section and key names are
// matched case-insensitively.
func FromMap(sections map[string]map[string]string) *File {
	cfg := newINI()
	for name, keys := range sections {
		sec := cfg.Section(name)
		for k, v := range keys {
			_, _ = sec.NewKey(k, v)
		}
	}
	return &File{cfg: cfg}
}

func newINI() *ini.File {
	return ini.Empty(ini.LoadOptions{Insensitive: true})
}

func (f *File) Path() string { return f.path }

func (f *File) key(section, name string) (*ini.Key, bool) {
	sec, err := f.cfg.GetSection(section)
	if err != nil {
		return nil, false
	}
	k, err := sec.GetKey(name)
	if err != nil {
		return nil, false
	}
	return k, true
}

func (f *File) GetString(section, key, def string) string {
	if k, ok := f.key(section, key); ok {
		return k.String()
	}
	return def
}

func (f *File) GetInteger(section, key string, def int) int {
	if k, ok := f.key(section, key); ok {
		return k.MustInt(def)
	}
	return def
}

func (f *File) GetReal(section, key string, def float64) float64 {
	if k, ok := f.key(section, key); ok {
		return k.MustFloat64(def)
	}
	return def
}

// GetBoolean understands true/false, yes/no, on/off and 1/0.
func (f *File) GetBoolean(section, key string, def bool) bool {
	if k, ok := f.key(section, key); ok {
		return k.MustBool(def)
	}
	return def
}

type decoder func(path string) (*ini.File, error)

func decoderFor(path string) (decoder, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ini", "":
		return decodeINI, nil
	case ".toml":
		return decodeTOML, nil
	case ".yaml", ".yml":
		return decodeYAML, nil
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
}
