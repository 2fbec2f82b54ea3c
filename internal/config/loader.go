package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables read by the loader.
const EnvPrefix = "CTORGEN_"

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = ".ctor-generator.yaml"

// Loader merges configuration sources. Later sources win: defaults, the
// YAML file, the environment, then explicit overrides.
type Loader struct {
	koanf     *koanf.Koanf
	validator *validator.Validate
}

// NewLoader creates a Loader with the custom validators registered.
func NewLoader() (*Loader, error) {
	v := validator.New()
	if err := RegisterCustomValidators(v); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	return &Loader{koanf: koanf.New("."), validator: v}, nil
}

// Load reads the configuration. An empty path tries DefaultFile and ignores
// its absence; an explicit path must exist. Overrides use dotted keys, e.g.
// "generate.output".
func (l *Loader) Load(path string, overrides map[string]any) (*Config, error) {
	l.koanf = koanf.New(".")

	if err := l.koanf.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := l.loadFile(path); err != nil {
		return nil, err
	}

	if err := l.loadEnvironment(); err != nil {
		return nil, err
	}

	for key, value := range overrides {
		if err := l.koanf.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set key %s: %w", key, err)
		}
	}

	return l.unmarshalAndValidate()
}

func (l *Loader) loadFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Set merges key by key so absent keys keep their defaults.
	for key, value := range flattenMap("", raw) {
		if err := l.koanf.Set(key, value); err != nil {
			return fmt.Errorf("failed to set key %s from %s: %w", key, path, err)
		}
	}

	return nil
}

func (l *Loader) loadEnvironment() error {
	err := l.koanf.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return transformEnvKey(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil)
	if err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}

	return nil
}

// transformEnvKey converts environment variable names to koanf paths:
// GENERATE_BUILD_TAGS -> generate.build_tags.
func transformEnvKey(s string) string {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '_'
	})

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return parts[0] + "." + strings.Join(parts[1:], "_")
	}
}

// flattenMap flattens a nested map into dot-notation keys
func flattenMap(prefix string, m map[string]any) map[string]any {
	result := make(map[string]any)

	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		if nested, ok := v.(map[string]any); ok {
			for fk, fv := range flattenMap(key, nested) {
				result[fk] = fv
			}
		} else {
			result[key] = v
		}
	}

	return result
}

func (l *Loader) unmarshalAndValidate() (*Config, error) {
	var cfg Config

	if err := l.koanf.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := l.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func (l *Loader) Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("configuration cannot be nil")
	}

	return l.validator.Struct(cfg)
}
