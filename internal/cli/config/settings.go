package config

import (
	"github.com/yndnr/netconf-cli/internal/infra/confloader"
)

// SettingsFile is the name of the CLI settings file in the configuration
// directory.
const SettingsFile = "cli.yaml"

// DefaultHistorySize is the number of history entries kept on disk.
const DefaultHistorySize = 1000

// Settings tunes the CLI itself. It is separate from config.xml, which
// holds the NETCONF client configuration.
type Settings struct {
	Log      LogSettings      `koanf:"log" json:"log" yaml:"log"`
	History  HistorySettings  `koanf:"history" json:"history" yaml:"history"`
	Auth     AuthSettings     `koanf:"auth" json:"auth" yaml:"auth"`
	Metrics  MetricsSettings  `koanf:"metrics" json:"metrics" yaml:"metrics"`
	Document DocumentSettings `koanf:"document" json:"document" yaml:"document"`
}

type LogSettings struct {
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Format string `koanf:"format" json:"format" yaml:"format"`
}

type HistorySettings struct {
	MaxSize int `koanf:"max_size" json:"max_size" yaml:"max_size"`
}

type AuthSettings struct {
	StrictPriority bool   `koanf:"strict_priority" json:"strict_priority" yaml:"strict_priority"`
	KnownHosts     string `koanf:"known_hosts" json:"known_hosts,omitempty" yaml:"known_hosts,omitempty"`
}

type MetricsSettings struct {
	// Textfile is written in the Prometheus text format after each run.
	Textfile string `koanf:"textfile" json:"textfile,omitempty" yaml:"textfile,omitempty"`
}

type DocumentSettings struct {
	Root string `koanf:"root" json:"root" yaml:"root"`
}

// DefaultSettings returns the settings used when nothing overrides them.
func DefaultSettings() map[string]any {
	return map[string]any{
		"log.level":            "warn",
		"log.format":           "text",
		"history.max_size":     DefaultHistorySize,
		"auth.strict_priority": false,
		"auth.known_hosts":     "",
		"metrics.textfile":     "",
		"document.root":        RootElement,
	}
}

// LoadSettings reads settings from defaults, the YAML file at path and
// NETCONF_* environment variables, later sources winning. A missing file
// is an error only when required is set.
func LoadSettings(path string, required bool) (*Settings, error) {
	opts := []confloader.Option{confloader.WithDefaults(DefaultSettings())}
	if path != "" {
		if required {
			opts = append(opts, confloader.WithConfigFile(path))
		} else {
			opts = append(opts, confloader.WithOptionalConfigFile(path))
		}
	}

	var s Settings
	if err := confloader.NewLoader(opts...).Load(&s); err != nil {
		return nil, err
	}
	if s.History.MaxSize <= 0 {
		s.History.MaxSize = DefaultHistorySize
	}
	if !IsRecognizedRoot(s.Document.Root) {
		s.Document.Root = RootElement
	}
	return &s, nil
}
