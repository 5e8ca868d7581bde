// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/barbaragodoy/markdowngo/pkg/types"
)

// setDefaults registers every configuration key so that environment
// variables are seen by Unmarshal even when no config file sets them.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("conversion.max_files", d.Conversion.MaxFiles)
	v.SetDefault("conversion.timestamp_layout", d.Conversion.TimestampLayout)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.dir", d.History.Dir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// loadConfig decodes v over the defaults and validates the result.
func loadConfig(v *viper.Viper) (types.AppConfig, error) {
	cfg := types.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = types.DefaultConfig().Log.Level
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
