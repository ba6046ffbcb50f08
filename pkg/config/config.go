// Package config loads jmconj settings from a YAML file and JMCONJ_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. JMCONJ_INGEST_WORKERS.
const EnvPrefix = "JMCONJ"

// ConfigFileEnv names the variable holding the config file path.
const ConfigFileEnv = EnvPrefix + "_CONFIG_FILE"

// Config is the root configuration.
type Config struct {
	Database    DatabaseConfig    `json:"database" yaml:"database"`
	Dictionary  DictionaryConfig  `json:"dictionary" yaml:"dictionary"`
	Ingest      IngestConfig      `json:"ingest" yaml:"ingest"`
	Conjugation ConjugationConfig `json:"conjugation" yaml:"conjugation"`
	Log         LogConfig         `json:"log" yaml:"log"`
}

// DatabaseConfig points at the SQLite file.
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// DictionaryConfig selects the JMdict source.
type DictionaryConfig struct {
	Path         string `json:"path" yaml:"path"`
	Format       string `json:"format" yaml:"format"`
	AutoDownload bool   `json:"auto_download" yaml:"auto_download"`
}

// IngestConfig tunes the batch driver.
type IngestConfig struct {
	Workers       int           `json:"workers" yaml:"workers"`
	BatchSize     int           `json:"batch_size" yaml:"batch_size"`
	FlushInterval time.Duration `json:"flush_interval" yaml:"flush_interval"`
}

// ConjugationConfig holds engine options.
type ConjugationConfig struct {
	NegationStyle string `json:"negation_style" yaml:"negation_style"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `json:"level" yaml:"level"`
	Development bool   `json:"development" yaml:"development"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Database:    DatabaseConfig{Path: "jmconj.db"},
		Dictionary:  DictionaryConfig{Path: "jmdict-eng-common.json", Format: "auto", AutoDownload: true},
		Ingest:      IngestConfig{Workers: 4, BatchSize: 1000, FlushInterval: time.Second},
		Conjugation: ConjugationConfig{NegationStyle: "ja"},
		Log:         LogConfig{Level: "info"},
	}
}

// Load reads path (or the file named by JMCONJ_CONFIG_FILE when path is
// empty) over the defaults, applies environment overrides and validates the
// result. With no file at all only defaults and environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.overrideFromEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills zero values left by an explicit empty setting.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Database.Path == "" {
		c.Database.Path = d.Database.Path
	}
	if c.Dictionary.Path == "" {
		c.Dictionary.Path = d.Dictionary.Path
	}
	if c.Dictionary.Format == "" {
		c.Dictionary.Format = d.Dictionary.Format
	}
	if c.Ingest.Workers == 0 {
		c.Ingest.Workers = d.Ingest.Workers
	}
	if c.Ingest.BatchSize == 0 {
		c.Ingest.BatchSize = d.Ingest.BatchSize
	}
	if c.Conjugation.NegationStyle == "" {
		c.Conjugation.NegationStyle = d.Conjugation.NegationStyle
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Ingest.Workers < 0 {
		errs = append(errs, fmt.Errorf("ingest.workers must not be negative, got %d", c.Ingest.Workers))
	}
	if c.Ingest.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("ingest.batch_size must not be negative, got %d", c.Ingest.BatchSize))
	}
	if c.Ingest.FlushInterval < 0 {
		errs = append(errs, fmt.Errorf("ingest.flush_interval must not be negative, got %s", c.Ingest.FlushInterval))
	}
	switch strings.ToLower(c.Dictionary.Format) {
	case "", "auto", "json", "xml":
	default:
		errs = append(errs, fmt.Errorf("dictionary.format must be auto, json or xml, got %q", c.Dictionary.Format))
	}
	switch c.Conjugation.NegationStyle {
	case "", "ja", "dewa":
	default:
		errs = append(errs, fmt.Errorf("conjugation.negation_style must be ja or dewa, got %q", c.Conjugation.NegationStyle))
	}
	return errors.Join(errs...)
}

// overrideFromEnv overrides config values with environment variables using reflection
func (c *Config) overrideFromEnv() {
	overrideStructFromEnvWithPrefix(c, EnvPrefix)
}

var durationType = reflect.TypeOf(time.Duration(0))

// overrideStructFromEnvWithPrefix recursively overrides struct fields with environment variables
func overrideStructFromEnvWithPrefix(v interface{}, prefix string) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		if !field.CanSet() {
			continue
		}

		yamlTag := strings.Split(fieldType.Tag.Get("yaml"), ",")[0]
		if yamlTag == "" || yamlTag == "-" {
			continue
		}

		envKey := strings.ToUpper(strings.ReplaceAll(yamlTag, "-", "_"))
		if prefix != "" {
			envKey = prefix + "_" + envKey
		}

		if field.Type() == durationType {
			if envVal := os.Getenv(envKey); envVal != "" {
				if d, err := time.ParseDuration(envVal); err == nil {
					field.SetInt(int64(d))
				}
			}
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if envVal := os.Getenv(envKey); envVal != "" {
				field.SetString(envVal)
			}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if envVal := os.Getenv(envKey); envVal != "" {
				if intVal, err := strconv.ParseInt(envVal, 10, 64); err == nil {
					field.SetInt(intVal)
				}
			}
		case reflect.Bool:
			if envVal := os.Getenv(envKey); envVal != "" {
				if boolVal, err := strconv.ParseBool(envVal); err == nil {
					field.SetBool(boolVal)
				}
			}
		case reflect.Struct:
			if field.CanAddr() {
				overrideStructFromEnvWithPrefix(field.Addr().Interface(), envKey)
			}
		}
	}
}
