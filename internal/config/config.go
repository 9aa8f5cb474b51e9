package config

import (
	"github.com/netcfgtools/fgt-dup-detector/internal/adapters/fortios"
	"github.com/netcfgtools/fgt-dup-detector/internal/log"
	"github.com/netcfgtools/fgt-dup-detector/internal/reporting/text"
	"github.com/netcfgtools/fgt-dup-detector/internal/resources/objects"
)

type Config struct {
	Settings SettingsConfig `mapstructure:"settings"`
	Parser   ParserConfig   `mapstructure:"parser"`
	Compare  objects.Config `mapstructure:"compare"`
}

type SettingsConfig struct {
	LogLevel     log.Level       `mapstructure:"log_level"`
	LogFormat    log.Format      `mapstructure:"log_format"`
	Concurrency  int             `mapstructure:"concurrency" validate:"gte=0"`
	ReporterType string          `mapstructure:"reporter" validate:"required,oneof=text json yaml"`
	Reporter     ReporterConfigs `mapstructure:"reporter_config"`
}

type ParserConfig struct {
	Format  string         `mapstructure:"format" validate:"required,oneof=fortios"`
	FortiOS fortios.Config `mapstructure:"fortios"`
}

type ReporterConfigs struct {
	Text *text.Config `mapstructure:"text,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:     log.LevelInfo,
			LogFormat:    log.FormatText,
			Concurrency:  4,
			ReporterType: text.ReporterTypeText,
			Reporter: ReporterConfigs{
				Text: &text.Config{NoColor: false},
			},
		},
		Parser: ParserConfig{
			Format: fortios.ParserTypeFortiOS,
			FortiOS: fortios.Config{
				IgnoredAttributes: []string{"uuid"},
			},
		},
		Compare: objects.Config{
			// The exporter emits group member lists in arbitrary order, so
			// membership compares as a multiset by default. Everything else
			// stays order-sensitive.
			UnorderedAttributes: []string{"member", "exclude-member"},
		},
	}
}
