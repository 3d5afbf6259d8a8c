// Package manifest loads class-hierarchy manifests from rtgen.toml
// files and arms the declared classes in a universe. A manifest declares
// parameters with their variance, then classes with their parameter
// lists and parent expressions:
//
//	[params.T]
//	variance = "covariant"
//
//	[params.Ts]
//	variadic = true
//
//	[classes.Foo]
//	params = ["T"]
//
//	[classes.Bar]
//	params = ["T"]
//	extends = ["Foo[T]"]
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"
)

// FileName is the manifest file looked up by Find.
const FileName = "rtgen.toml"

// Config mirrors the TOML document structure.
type Config struct {
	Params  map[string]ParamConfig `toml:"params"`
	Classes map[string]ClassConfig `toml:"classes"`
}

// ParamConfig declares one generic parameter.
type ParamConfig struct {
	Variance string `toml:"variance"`
	Variadic bool   `toml:"variadic"`
}

// ClassConfig declares one parametrizable class.
type ClassConfig struct {
	Params  []string `toml:"params"`
	Extends []string `toml:"extends"`
}

// Manifest is a parsed manifest plus the declaration order recovered
// from the document, which decides registration order.
type Manifest struct {
	Path    string
	Root    string
	Config  Config
	classes []string // declaration order
	params  []string
}

// Find walks up from startDir looking for an rtgen.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads and decodes a manifest file.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return newManifest(path, cfg, meta)
}

// Parse decodes manifest text without touching the filesystem.
func Parse(text string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.Decode(text, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return newManifest("", cfg, meta)
}

func newManifest(path string, cfg Config, meta toml.MetaData) (*Manifest, error) {
	m := &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: normalizeConfig(cfg),
	}
	// TOML tables are unordered after decoding; the document key order
	// is the registration order, so parents can rely on being declared
	// before their children.
	for _, key := range meta.Keys() {
		parts := key
		if len(parts) != 2 {
			continue
		}
		switch parts[0] {
		case "classes":
			m.classes = append(m.classes, norm.NFC.String(parts[1]))
		case "params":
			m.params = append(m.params, norm.NFC.String(parts[1]))
		}
	}
	if len(m.classes) != len(m.Config.Classes) {
		return nil, fmt.Errorf("%s: duplicate class declarations", path)
	}
	return m, nil
}

// normalizeConfig re-keys all identifiers into NFC so that visually
// identical names written in different Unicode compositions collide
// instead of silently declaring twins.
func normalizeConfig(cfg Config) Config {
	out := Config{
		Params:  make(map[string]ParamConfig, len(cfg.Params)),
		Classes: make(map[string]ClassConfig, len(cfg.Classes)),
	}
	for name, p := range cfg.Params {
		out.Params[norm.NFC.String(name)] = p
	}
	for name, c := range cfg.Classes {
		out.Classes[norm.NFC.String(name)] = c
	}
	return out
}

// ClassNames returns the declared classes in document order.
func (m *Manifest) ClassNames() []string {
	out := make([]string, len(m.classes))
	copy(out, m.classes)
	return out
}

// ParamNames returns the declared parameters in document order.
func (m *Manifest) ParamNames() []string {
	out := make([]string, len(m.params))
	copy(out, m.params)
	return out
}
