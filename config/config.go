package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/topdown/ecs/system"
	"github.com/milk9111/topdown/logging"
	"github.com/spf13/viper"
)

//go:embed topdown.yaml
var defaultConfig []byte

// EnvPrefix is prepended to environment overrides, e.g. TOPDOWN_SORTER_PRECISION.
const EnvPrefix = "TOPDOWN"

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Window WindowConfig              `mapstructure:"window"`
	World  WorldConfig               `mapstructure:"world"`
	Sorter system.SpriteSorterConfig `mapstructure:"sorter"`
	Log    logging.Config            `mapstructure:"log"`
}

type WindowConfig struct {
	Title       string `mapstructure:"title"`
	Width       int    `mapstructure:"width"`
	Height      int    `mapstructure:"height"`
	MonitorBase bool   `mapstructure:"monitor_base"`
}

type WorldConfig struct {
	PixelsPerUnit float64 `mapstructure:"pixels_per_unit"`
	Scene         string  `mapstructure:"scene"`
}

// Load layers the embedded defaults, the optional file at path and TOPDOWN_*
// environment variables, in that order.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultConfig)); err != nil {
		return nil, fmt.Errorf("config: read defaults: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("config: merge %q: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.World.PixelsPerUnit <= 0:
		return fmt.Errorf("%w: pixels_per_unit %v", ErrInvalid, c.World.PixelsPerUnit)
	case c.Sorter.Precision < 0:
		return fmt.Errorf("%w: sorter precision %d", ErrInvalid, c.Sorter.Precision)
	case c.Sorter.Multiplier < 0:
		return fmt.Errorf("%w: sorter multiplier %v", ErrInvalid, c.Sorter.Multiplier)
	case c.Sorter.AnchorTag == "":
		return fmt.Errorf("%w: sorter anchor_tag is empty", ErrInvalid)
	}
	return nil
}
