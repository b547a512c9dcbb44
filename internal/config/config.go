package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. FLOWRIBBON_SHADER_NUM.
const EnvPrefix = "FLOWRIBBON"

type ProjectionConfig struct {
	Scale float64 `json:"scale" mapstructure:"scale"`
}

type ExtrudeConfig struct {
	Depth float64 `json:"depth" mapstructure:"depth"`
}

type ShaderConfig struct {
	Color string  `json:"color" mapstructure:"color"`
	Num   float64 `json:"num" mapstructure:"num"`
}

type FrameConfig struct {
	TimeStep float64 `json:"timeStep" mapstructure:"timeStep"`
	FPS      int     `json:"fps" mapstructure:"fps"`
}

type CameraConfig struct {
	Fov float64 `json:"fov" mapstructure:"fov"`
}

type LogConfig struct {
	Level   string `json:"level" mapstructure:"level"`
	File    string `json:"file" mapstructure:"file"`
	Console bool   `json:"console" mapstructure:"console"`
}

// Config is the full runtime configuration.
type Config struct {
	Dataset    string           `json:"dataset" mapstructure:"dataset"`
	Projection ProjectionConfig `json:"projection" mapstructure:"projection"`
	Extrude    ExtrudeConfig    `json:"extrude" mapstructure:"extrude"`
	Shader     ShaderConfig     `json:"shader" mapstructure:"shader"`
	Frame      FrameConfig      `json:"frame" mapstructure:"frame"`
	Camera     CameraConfig     `json:"camera" mapstructure:"camera"`
	Log        LogConfig        `json:"log" mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dataset", "")
	v.SetDefault("projection.scale", 50.0)
	v.SetDefault("extrude.depth", 0.2)
	v.SetDefault("shader.color", "#00BCD4")
	v.SetDefault("shader.num", 20.0)
	v.SetDefault("frame.timeStep", 0.002)
	v.SetDefault("frame.fps", 60)
	v.SetDefault("camera.fov", 70.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "flowribbon.log")
	v.SetDefault("log.console", false)
}

// Default returns the built-in configuration with environment overrides.
// It panics when an override makes the configuration invalid.
func Default() Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("default config: %v", err))
	}
	return cfg
}

// Load reads defaults, then the config file at path (json, yaml or toml;
// skipped when path is empty), then FLOWRIBBON_* environment variables.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	var errs []error
	if !(c.Projection.Scale > 0) {
		errs = append(errs, fmt.Errorf("projection.scale must be positive, got %v", c.Projection.Scale))
	}
	if !(c.Extrude.Depth > 0) {
		errs = append(errs, fmt.Errorf("extrude.depth must be positive, got %v", c.Extrude.Depth))
	}
	if !(c.Shader.Num > 0) {
		errs = append(errs, fmt.Errorf("shader.num must be positive, got %v", c.Shader.Num))
	}
	if _, err := colorful.Hex(c.Shader.Color); err != nil {
		errs = append(errs, fmt.Errorf("shader.color %q: %w", c.Shader.Color, err))
	}
	if !(c.Frame.TimeStep > 0) || c.Frame.TimeStep >= 1 {
		errs = append(errs, fmt.Errorf("frame.timeStep must be in (0, 1), got %v", c.Frame.TimeStep))
	}
	if c.Frame.FPS <= 0 {
		errs = append(errs, fmt.Errorf("frame.fps must be positive, got %d", c.Frame.FPS))
	}
	if !(c.Camera.Fov > 0 && c.Camera.Fov < 180) {
		errs = append(errs, fmt.Errorf("camera.fov must be in (0, 180), got %v", c.Camera.Fov))
	}
	return errors.Join(errs...)
}
