package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/eduverse/internal/anim"
	"github.com/san-kum/eduverse/internal/scene"
	"github.com/san-kum/eduverse/internal/validate"
)

const (
	DefaultKind     = "atom"
	DefaultScale    = 1.0
	DefaultFPS      = 60
	DefaultDuration = 10.0
	DefaultDataDir  = "./runs"
	DefaultAddr     = ":8080"
	DefaultLogLevel = "info"
	DefaultTheme    = "classroom"
)

// Environment variables read by LoadEnv.
const (
	EnvAddr        = "EDUVERSE_ADDR"
	EnvDatabaseURL = "EDUVERSE_DATABASE_URL"
	EnvLogLevel    = "EDUVERSE_LOG_LEVEL"
	EnvDataDir     = "EDUVERSE_DATA_DIR"
	EnvTTSCommand  = "EDUVERSE_TTS_COMMAND"
)

type Config struct {
	Kind     string  `yaml:"kind" json:"kind" validate:"required"`
	Scale    float64 `yaml:"scale" json:"scale" validate:"gte=0"`
	Seed     int64   `yaml:"seed" json:"seed"`
	FPS      int     `yaml:"fps" json:"fps" validate:"gt=0,lte=240"`
	Duration float64 `yaml:"duration" json:"duration" validate:"gte=0"`
	Theme    string  `yaml:"theme" json:"theme"`
	DataDir  string  `yaml:"data_dir" json:"data_dir"`
	LogLevel string  `yaml:"log_level" json:"log_level" validate:"omitempty,oneof=debug info warn warning error off none"`

	Addr        string `yaml:"addr" json:"addr"`
	DatabaseURL string `yaml:"database_url" json:"database_url"`
	TTSCommand  string `yaml:"tts_command" json:"tts_command"`

	Params scene.Params `yaml:"params" json:"params"`
	// Bindings replaces the stock animation of a kind when present.
	Bindings map[string][]anim.Spec `yaml:"bindings,omitempty" json:"bindings,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Kind:     DefaultKind,
		Scale:    DefaultScale,
		FPS:      DefaultFPS,
		Duration: DefaultDuration,
		Theme:    DefaultTheme,
		DataDir:  DefaultDataDir,
		LogLevel: DefaultLogLevel,
		Addr:     DefaultAddr,
		Params:   scene.DefaultParams(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadEnv loads the given dotenv files (missing files are ignored) into the
// process environment, then applies EDUVERSE_* overrides to c. Variables
// already set in the environment win over dotenv values.
func (c *Config) LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "config: load %s", f)
		}
	}
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := os.LookupEnv(k); ok && v != "" {
				*dst = v
				return
			}
		}
	}
	set(&c.Addr, EnvAddr)
	set(&c.DatabaseURL, EnvDatabaseURL, "DATABASE_URL")
	set(&c.LogLevel, EnvLogLevel, "LOG_LEVEL")
	set(&c.DataDir, EnvDataDir)
	set(&c.TTSCommand, EnvTTSCommand)
	return nil
}

func (c *Config) Validate() error {
	v := validate.New()
	if err := v.Struct(c); err != nil {
		return errors.Wrap(err, "config")
	}
	_, err := scene.ParseKind(c.Kind)
	return err
}

func (c *Config) Descriptor() (scene.Descriptor, error) {
	k, err := scene.ParseKind(c.Kind)
	if err != nil {
		return scene.Descriptor{}, err
	}
	return scene.Descriptor{Kind: k, ScaleFactor: c.Scale}, nil
}

// SceneParams returns the generator parameters with the configured seed.
func (c *Config) SceneParams() scene.Params {
	return c.Params.WithSeed(c.Seed)
}

// AnimBindings returns the configured bindings for k, or its defaults.
func (c *Config) AnimBindings(k scene.Kind) ([]anim.Binding, error) {
	if specs, ok := c.Bindings[string(k)]; ok {
		return anim.Bindings(specs)
	}
	return anim.DefaultBindings(k), nil
}
