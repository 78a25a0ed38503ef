package command

import (
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/netconf-cli/internal/cli/config"
	"github.com/yndnr/netconf-cli/internal/cli/output"
	"github.com/yndnr/netconf-cli/internal/core/domain"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect the client configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "path",
				Usage:  "Show where configuration files are kept",
				Action: configPath,
			},
			{
				Name:   "show",
				Usage:  "Show the configuration in effect",
				Action: configShow,
			},
		},
	}
}

func configPath(c *cli.Context) error {
	rt, err := getRuntime(c)
	if err != nil {
		return err
	}
	dir, err := rt.Sync.Resolver.Dir()
	if err != nil {
		return err
	}
	return rt.render(config.Paths(dir))
}

// configView is the configuration in effect for this run.
type configView struct {
	Dir            string                  `json:"dir" yaml:"dir"`
	Source         string                  `json:"source" yaml:"source"`
	Capabilities   int                     `json:"capabilities" yaml:"capabilities"`
	Authentication []domain.AuthPreference `json:"authentication" yaml:"authentication"`
	KeyPair        *domain.KeyPair         `json:"key_pair,omitempty" yaml:"key_pair,omitempty"`
	Warnings       []string                `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Settings       *config.Settings        `json:"settings" yaml:"settings"`
}

func (v configView) Table() *output.Table {
	t := &output.Table{Headers: []string{"FIELD", "VALUE"}}
	t.AddRow("dir", orDash(v.Dir))
	t.AddRow("source", v.Source)
	t.AddRow("capabilities", strconv.Itoa(v.Capabilities))
	for _, p := range v.Authentication {
		t.AddRow("auth."+p.Method.String(), strconv.Itoa(p.Priority))
	}
	if v.KeyPair != nil {
		t.AddRow("key_pair", v.KeyPair.PrivatePath)
	}
	t.AddRow("document.root", v.Settings.Document.Root)
	t.AddRow("history.max_size", strconv.Itoa(v.Settings.History.MaxSize))
	t.AddRow("auth.strict_priority", strconv.FormatBool(v.Settings.Auth.StrictPriority))
	for _, w := range v.Warnings {
		t.AddRow("warning", w)
	}
	return t
}

func configShow(c *cli.Context) error {
	rt, err := getRuntime(c)
	if err != nil {
		return err
	}

	v := configView{
		Dir:            rt.Loaded.Paths.Dir,
		Source:         "defaults",
		Capabilities:   rt.Capabilities.Len(),
		Authentication: rt.Auth.Preferences(),
		Settings:       rt.Settings,
	}
	if rt.Loaded.FromDocument {
		v.Source = rt.Loaded.Paths.Document
	}
	if kp, ok := rt.Auth.KeyPair(); ok {
		v.KeyPair = &kp
	}
	for _, w := range rt.Loaded.Warnings {
		v.Warnings = append(v.Warnings, w.Error())
	}
	return rt.render(v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
