// Package config loads CLI defaults from a YAML file with RINGCHART_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ByLCY/ringchart/logger"
)

const envPrefix = "RINGCHART"

// Config is the complete CLI configuration.
type Config struct {
	Render  RenderConfig  `mapstructure:"render"  yaml:"render"`
	Style   StyleConfig   `mapstructure:"style"   yaml:"style"`
	Locale  string        `mapstructure:"locale"  yaml:"locale"`
	Logging logger.Config `mapstructure:"logging" yaml:"logging"`
}

// RenderConfig holds output defaults.
type RenderConfig struct {
	Width    float64 `mapstructure:"width"     yaml:"width"`
	Height   float64 `mapstructure:"height"    yaml:"height"`
	Format   string  `mapstructure:"format"    yaml:"format"` // svg, pdf, png
	Minify   bool    `mapstructure:"minify"    yaml:"minify"`
	Scale    float64 `mapstructure:"scale"     yaml:"scale"`
	FontFile string  `mapstructure:"font_file" yaml:"font_file"`
}

// StyleConfig overrides the ring style; empty or zero values keep the built-in defaults.
type StyleConfig struct {
	Render      string  `mapstructure:"render"      yaml:"render"`
	Layout      string  `mapstructure:"layout"      yaml:"layout"`
	Orientation string  `mapstructure:"orientation" yaml:"orientation"`
	Gap         float64 `mapstructure:"gap"         yaml:"gap"`
	Thickness   float64 `mapstructure:"thickness"   yaml:"thickness"`
}

// Load reads ./ringchart.yaml or ./config/ringchart.yaml when present.
// Environment variables override file values: RINGCHART_<SECTION>_<KEY>, e.g. RINGCHART_RENDER_FORMAT.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("ringchart")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults 与组件原有默认值保持一致（300x300 容器、描边样式、英文格式）。
func setDefaults(v *viper.Viper) {
	v.SetDefault("render.width", 300)
	v.SetDefault("render.height", 300)
	v.SetDefault("render.format", "svg")
	v.SetDefault("render.minify", false)
	v.SetDefault("render.scale", 2)
	v.SetDefault("render.font_file", "")

	v.SetDefault("style.render", "stroked")
	v.SetDefault("style.layout", "")
	v.SetDefault("style.orientation", "ccw")
	v.SetDefault("style.gap", 0)
	v.SetDefault("style.thickness", 0)

	v.SetDefault("locale", "en")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Validate checks values that cannot be defaulted away.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Render.Format) {
	case "svg", "pdf", "png":
	default:
		return fmt.Errorf("render.format must be svg, pdf or png, got %q", c.Render.Format)
	}
	if c.Render.Width < 0 || c.Render.Height < 0 {
		return fmt.Errorf("render size must not be negative: %gx%g", c.Render.Width, c.Render.Height)
	}
	if c.Style.Gap < 0 {
		return fmt.Errorf("style.gap must not be negative: %g", c.Style.Gap)
	}
	return nil
}
