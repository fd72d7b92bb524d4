// Package config loads tool settings from defaults, an optional YAML file,
// DIGIPIN_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "DIGIPIN"

type Config struct {
	LogLevel    string `mapstructure:"log_level"`
	LogConsole  bool   `mapstructure:"log_console"`
	LogSampleN  int    `mapstructure:"log_sample_n"`
	Output      string `mapstructure:"output"`
	MemoSize    int    `mapstructure:"memo_size"`
	H3Res       int    `mapstructure:"h3_res"`
	H3ParentRes int    `mapstructure:"h3_parent_res"`
	MetricsFile string `mapstructure:"metrics_file"`
}

// MetricsEnabled reports whether a metrics textfile should be written.
func (c Config) MetricsEnabled() bool { return c.MetricsFile != "" }

// H3Enabled reports whether decoded centers get an H3 cross reference.
func (c Config) H3Enabled() bool { return c.H3Res >= 0 }

var outputs = map[string]struct{}{"text": {}, "json": {}, "table": {}}

// flag name -> config key
var flagKeys = map[string]string{
	"log-level":     "log_level",
	"log-console":   "log_console",
	"output":        "output",
	"memo-size":     "memo_size",
	"h3-res":        "h3_res",
	"h3-parent-res": "h3_parent_res",
	"metrics-file":  "metrics_file",
}

// Load reads configuration. file may be empty, in which case digipin.yaml is
// looked up in . and ./configs and silently skipped when absent. flags may be
// nil; only flags the user actually set override other sources.
func Load(file string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("log_console", false)
	v.SetDefault("log_sample_n", 0)
	v.SetDefault("output", "text")
	v.SetDefault("memo_size", 4096)
	v.SetDefault("h3_res", -1)
	v.SetDefault("h3_parent_res", -1)
	v.SetDefault("metrics_file", "")

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %q: %w", file, err)
		}
	} else {
		v.SetConfigName("digipin")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	c.MetricsFile = strings.TrimSpace(c.MetricsFile)

	if _, ok := outputs[c.Output]; !ok {
		return fmt.Errorf("unknown output format %q (want text, json or table)", c.Output)
	}
	if c.MemoSize < 0 {
		c.MemoSize = 0
	}
	if c.LogSampleN < 0 {
		c.LogSampleN = 0
	}
	c.H3Res = clampRes(c.H3Res)
	c.H3ParentRes = clampRes(c.H3ParentRes)
	return nil
}

// clampRes limits an H3 resolution to 0..15, with -1 meaning disabled.
func clampRes(res int) int {
	return max(-1, min(res, 15))
}
