package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read when present and no config file is named explicitly.
const DefaultFile = "tabsum.yaml"

// Load builds the configuration from defaults, the YAML file at path, and
// the environment, then applies overrides in order and validates the result.
// An empty path reads DefaultFile if it exists; a named file must exist.
func Load(path string, overrides ...func(*Config)) (*Config, error) {
	cfg := &Config{}

	if err := walkFields(reflect.ValueOf(cfg).Elem(), applyDefault); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	if err := loadFile(cfg, path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	if err := walkFields(reflect.ValueOf(cfg).Elem(), applyEnv); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	for _, o := range overrides {
		o(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadFile decodes YAML into cfg, leaving fields absent from the file as they are.
func loadFile(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

type fieldFunc func(field reflect.StructField, v reflect.Value) error

// walkFields calls fn for every settable leaf field, recursing into nested structs.
func walkFields(v reflect.Value, fn fieldFunc) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		// Skip unexported fields
		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := walkFields(fieldVal, fn); err != nil {
				return err
			}
			continue
		}

		if err := fn(field, fieldVal); err != nil {
			return err
		}
	}

	return nil
}

func applyDefault(field reflect.StructField, v reflect.Value) error {
	value, ok := field.Tag.Lookup("default")
	if !ok || value == "" {
		return nil
	}
	if err := setField(v, value); err != nil {
		return fmt.Errorf("invalid default for %s=%q: %w", field.Name, value, err)
	}
	return nil
}

func applyEnv(field reflect.StructField, v reflect.Value) error {
	envName := field.Tag.Get("env")
	if envName == "" {
		return nil
	}
	value, ok := os.LookupEnv(envName)
	if !ok || value == "" {
		return nil
	}
	if err := setField(v, value); err != nil {
		return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
	}
	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int:
		i, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(int64(i))

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type().Elem().Kind())
		}
		// Split comma-separated values, trim whitespace
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				result = append(result, p)
			}
		}
		field.Set(reflect.ValueOf(result))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Input.Path) == "" {
		errs = append(errs, "input path must not be empty")
	}

	validFormats := map[string]bool{"auto": true, "csv": true, "xlsx": true}
	if !validFormats[strings.ToLower(c.Input.Format)] {
		errs = append(errs, fmt.Sprintf("format (%q) must be one of: auto, csv, xlsx", c.Input.Format))
	}

	if _, err := c.Input.Comma(); err != nil {
		errs = append(errs, fmt.Sprintf("delimiter: %v", err))
	}

	if c.Aggregate.CategoryField == "" {
		errs = append(errs, "category field must not be empty")
	}
	if c.Aggregate.ValueField == "" {
		errs = append(errs, "value field must not be empty")
	}
	if c.Aggregate.CategoryField != "" && c.Aggregate.CategoryField == c.Aggregate.ValueField {
		errs = append(errs, fmt.Sprintf("category and value fields must differ (both %q)", c.Aggregate.ValueField))
	}
	if c.Aggregate.PreviewRows < 0 {
		errs = append(errs, fmt.Sprintf("preview rows (%d) must be non-negative", c.Aggregate.PreviewRows))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("log level (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validLogFormats := map[string]bool{"console": true, "json": true}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("log format (%q) must be one of: console, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
