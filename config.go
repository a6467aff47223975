package crml

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Config describes a batch build, read from crml.yaml or crml.json.
//
//	root_dir: ./templates
//	output_dir: ./views
//	include:
//	  - [index, IndexProps]
//	  - {template: other, type: OtherProps}
type Config struct {
	RootDir    string   `yaml:"root_dir"`
	OutputDir  string   `yaml:"output_dir"`
	OutputFile string   `yaml:"output_file"`
	Package    string   `yaml:"package"`
	Ext        string   `yaml:"ext"`
	Imports    []string `yaml:"imports"`
	MaxDepth   int      `yaml:"max_depth"`
	Include    []Entry  `yaml:"include"`
}

// DefaultConfigFiles are tried in order by FindConfig
var DefaultConfigFiles = []string{"crml.yaml", "crml.yml", "crml.json"}

// LoadConfig reads and decodes the config file at path. Relative folders are
// resolved against the file's directory.
func LoadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.UnmarshalStrict(content, cfg); err != nil {
		return nil, fmt.Errorf("crml: parse %s: %w", path, err)
	}

	cfg.setDefaults(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("crml: %s: %w", path, err)
	}

	return cfg, nil
}

// FindConfig returns the first default config file found in dir.
func FindConfig(dir string) (string, error) {
	for _, name := range DefaultConfigFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("crml: no config file (%v) in %s", DefaultConfigFiles, dir)
}

func (c *Config) setDefaults(base string) {
	if c.RootDir == "" {
		c.RootDir = "templates"
	}
	if c.OutputDir == "" {
		c.OutputDir = "crml"
	}
	if !filepath.IsAbs(c.RootDir) {
		c.RootDir = filepath.Join(base, c.RootDir)
	}
	if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(base, c.OutputDir)
	}
	if c.OutputFile == "" {
		c.OutputFile = "crml.go"
	}
	if c.Package == "" {
		c.Package = filepath.Base(c.OutputDir)
	}
	if c.Ext == "" {
		c.Ext = "crml"
	}
}

// Validate reports entries missing a template or data type.
func (c *Config) Validate() error {
	for i, e := range c.Include {
		if e.Template == "" || e.DataType == "" {
			return fmt.Errorf("include[%d]: template and type are required", i)
		}
	}

	return nil
}

// OutputPath is where the generated file is written
func (c *Config) OutputPath() string {
	return filepath.Join(c.OutputDir, c.OutputFile)
}

// Compiler returns a compiler reading from the configured root folder
func (c *Config) Compiler() *Compiler {
	return New(c.RootDir, c.Ext).MaxDepth(c.MaxDepth)
}

// UnmarshalYAML accepts `[template, Type]` pairs as well as
// `{template: name, type: Type}` maps.
func (e *Entry) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var pair []string
	if err := unmarshal(&pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("include entry %v: want [template, type]", pair)
		}
		e.Template, e.DataType = pair[0], pair[1]
		return nil
	}

	var m struct {
		Template string `yaml:"template"`
		Type     string `yaml:"type"`
	}
	if err := unmarshal(&m); err != nil {
		return err
	}
	e.Template, e.DataType = m.Template, m.Type

	return nil
}
