package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the optional config keys are absent.
const (
	defaultURLCheckTimeout = 1 * time.Second
	defaultWebserverPort   = 1233
)

// ConfigError reports a missing or invalid configuration key.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Key, e.Reason)
}

// Config is the fully resolved deck configuration, immutable after loading.
type Config struct {
	MasterDeckName       string
	ModelName            string
	ModelNameDescriptive string
	Fields               []string
	URLCheckEnabled      bool
	URLCheckTimeout      time.Duration
	WebserverEnabled     bool
	WebserverPort        int
}

// rawConfig mirrors the YAML document. Pointer fields distinguish an
// absent key from an explicit false/zero so defaults only fill gaps.
type rawConfig struct {
	MasterDeckName       string   `yaml:"masterDeckName"`
	ModelName            string   `yaml:"modelName"`
	ModelNameDescriptive string   `yaml:"modelNameDescriptive"`
	Fields               []string `yaml:"fields"`
	URLCheck             struct {
		Enabled *bool    `yaml:"enabled"`
		Timeout *float64 `yaml:"timeout"`
	} `yaml:"urlCheck"`
	Webserver struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"webserver"`
	WebserverPort int `yaml:"webserverPort"`
}

// LoadConfig reads and validates the YAML configuration at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML configuration document, applies defaults and
// validates the result.
func ParseConfig(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	cfg := &Config{
		MasterDeckName:       raw.MasterDeckName,
		ModelName:            raw.ModelName,
		ModelNameDescriptive: raw.ModelNameDescriptive,
		Fields:               raw.Fields,
		URLCheckEnabled:      true,
		URLCheckTimeout:      defaultURLCheckTimeout,
		WebserverEnabled:     raw.Webserver.Enabled,
		WebserverPort:        raw.WebserverPort,
	}
	if raw.URLCheck.Enabled != nil {
		cfg.URLCheckEnabled = *raw.URLCheck.Enabled
	}
	if raw.URLCheck.Timeout != nil {
		cfg.URLCheckTimeout = time.Duration(*raw.URLCheck.Timeout * float64(time.Second))
	}
	if cfg.WebserverPort == 0 {
		cfg.WebserverPort = defaultWebserverPort
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MasterDeckName == "" {
		return &ConfigError{Key: "masterDeckName", Reason: "required key is missing or empty"}
	}
	if c.ModelName == "" {
		return &ConfigError{Key: "modelName", Reason: "required key is missing or empty"}
	}
	if c.ModelNameDescriptive == "" {
		return &ConfigError{Key: "modelNameDescriptive", Reason: "required key is missing or empty"}
	}
	if len(c.Fields) == 0 {
		return &ConfigError{Key: "fields", Reason: "at least one field is required"}
	}

	seen := make(map[string]bool, len(c.Fields))
	for _, field := range c.Fields {
		if field == "" {
			return &ConfigError{Key: "fields", Reason: "field names must not be empty"}
		}
		if seen[field] {
			return &ConfigError{Key: "fields", Reason: fmt.Sprintf("duplicate field %q", field)}
		}
		seen[field] = true

		// A name matching both media tokens has no defined classification;
		// reject it here so the pipeline never has to guess.
		lower := strings.ToLower(field)
		if strings.Contains(lower, "image") && strings.Contains(lower, "audio") {
			return &ConfigError{
				Key:    "fields",
				Reason: fmt.Sprintf("field %q matches both image and audio", field),
			}
		}
	}

	if c.URLCheckTimeout <= 0 {
		return &ConfigError{Key: "urlCheck.timeout", Reason: "timeout must be positive"}
	}
	if c.WebserverPort < 1 || c.WebserverPort > 65535 {
		return &ConfigError{Key: "webserverPort", Reason: fmt.Sprintf("invalid port %d", c.WebserverPort)}
	}
	return nil
}
