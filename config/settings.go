// Package config holds the application settings shared by all commands.
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/wyrelab/wyre/capture"
	"github.com/wyrelab/wyre/logger"
	"github.com/wyrelab/wyre/session"
)

// AppSettings are the tunables of a capture run. Every field has a working
// default; an optional YAML config file overrides defaults and command-line
// flags override both.
type AppSettings struct {
	Snaplen     int32         `mapstructure:"snaplen"`
	Promiscuous bool          `mapstructure:"promiscuous"`
	ReadTimeout time.Duration `mapstructure:"read-timeout"`
	ChannelSize int           `mapstructure:"channel-size"`

	Log logger.Config `mapstructure:"log"`
}

// Defaults returns the settings used without a config file.
func Defaults() AppSettings {
	hc := capture.DefaultHandleConfig()
	return AppSettings{
		Snaplen:     hc.Snaplen,
		Promiscuous: hc.Promiscuous,
		ReadTimeout: hc.ReadTimeout,
		ChannelSize: session.DefaultChannelSize,
		Log: logger.Config{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Load reads settings from path, or returns Defaults when path is empty.
func Load(path string) (*AppSettings, error) {
	settings := Defaults()
	if path == "" {
		return &settings, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("snaplen", settings.Snaplen)
	v.SetDefault("promiscuous", settings.Promiscuous)
	v.SetDefault("read-timeout", settings.ReadTimeout)
	v.SetDefault("channel-size", settings.ChannelSize)
	v.SetDefault("log.level", settings.Log.Level)
	v.SetDefault("log.max-size-mb", settings.Log.MaxSizeMB)
	v.SetDefault("log.max-backups", settings.Log.MaxBackups)
	v.SetDefault("log.max-age-days", settings.Log.MaxAgeDays)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}
	// A non-positive snaplen would wrap around in the capture-file header.
	if settings.Snaplen <= 0 {
		settings.Snaplen = capture.DefaultSnaplen
	}
	return &settings, nil
}

// HandleConfig maps the settings onto capture-handle options.
func (s *AppSettings) HandleConfig() capture.HandleConfig {
	return capture.HandleConfig{
		Snaplen:     s.Snaplen,
		Promiscuous: s.Promiscuous,
		ReadTimeout: s.ReadTimeout,
	}
}
