// Package config loads dialect overrides for scripts whose library does not
// use the frosts names.
//
// The configuration is a JSON file named permafrost.json or .permafrostrc,
// or a YAML file named permafrost.yaml, searched for in the script's
// directory and its parents.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/frosts/permafrost/compile"
)

// Config mirrors compile.Dialect. Every field is optional; unset fields keep
// the default dialect's value.
type Config struct {
	// NamespaceMarker is the text of the line that opens the library block
	NamespaceMarker string `json:"namespaceMarker,omitempty" yaml:"namespaceMarker,omitempty"`

	// PublicAlias is the identifier user code calls the library through
	PublicAlias string `json:"publicAlias,omitempty" yaml:"publicAlias,omitempty"`

	SelfKeyword        string `json:"selfKeyword,omitempty" yaml:"selfKeyword,omitempty"`
	ConstructorKeyword string `json:"constructorKeyword,omitempty" yaml:"constructorKeyword,omitempty"`

	// RecordConstructor is the expression that creates a record, e.g. "new DataFrame"
	RecordConstructor string `json:"recordConstructor,omitempty" yaml:"recordConstructor,omitempty"`

	ReservedFields       []string `json:"reservedFields,omitempty" yaml:"reservedFields,omitempty"`
	EscapeHatches        []string `json:"escapeHatches,omitempty" yaml:"escapeHatches,omitempty"`
	ProblematicFunctions []string `json:"problematicFunctions,omitempty" yaml:"problematicFunctions,omitempty"`

	// RootAliases are merged over the defaults key by key
	RootAliases map[string][]string `json:"rootAliases,omitempty" yaml:"rootAliases,omitempty"`

	// GenericMethods are merged over the defaults key by key
	GenericMethods map[string]string `json:"genericMethods,omitempty" yaml:"genericMethods,omitempty"`
}

// ConfigFileNames are the names searched for config files, in order of preference.
var ConfigFileNames = []string{
	"permafrost.json",
	".permafrostrc",
	".permafrostrc.json",
	"permafrost.yaml",
	"permafrost.yml",
}

// Load searches for a config file starting from the given directory
// and walking up to parent directories. Returns nil if no config file is found.
func Load(startDir string) (*Config, string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, "", err
	}
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				cfg, err := LoadFile(path)
				return cfg, path, err
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", nil
		}
		dir = parent
	}
}

// LoadFile loads configuration from a specific file path. Files ending in
// .yaml or .yml are read as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

// Apply overlays the configured fields on d. A nil Config returns d unchanged.
func (c *Config) Apply(d compile.Dialect) compile.Dialect {
	if c == nil {
		return d
	}

	setString(&d.NamespaceMarker, c.NamespaceMarker)
	setString(&d.PublicAlias, c.PublicAlias)
	setString(&d.SelfKeyword, c.SelfKeyword)
	setString(&d.ConstructorKeyword, c.ConstructorKeyword)
	setString(&d.RecordConstructor, c.RecordConstructor)

	if c.ReservedFields != nil {
		d.ReservedFields = append([]string(nil), c.ReservedFields...)
	}
	if c.EscapeHatches != nil {
		d.EscapeHatches = append([]string(nil), c.EscapeHatches...)
	}
	if c.ProblematicFunctions != nil {
		d.ProblematicFunctions = append([]string(nil), c.ProblematicFunctions...)
	}

	if len(c.RootAliases) > 0 {
		merged := make(map[string][]string, len(d.RootAliases)+len(c.RootAliases))
		for k, v := range d.RootAliases {
			merged[k] = v
		}
		for k, v := range c.RootAliases {
			merged[k] = v
		}
		d.RootAliases = merged
	}
	if len(c.GenericMethods) > 0 {
		merged := make(map[string]string, len(d.GenericMethods)+len(c.GenericMethods))
		for k, v := range d.GenericMethods {
			merged[k] = v
		}
		for k, v := range c.GenericMethods {
			merged[k] = v
		}
		d.GenericMethods = merged
	}

	return d
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
