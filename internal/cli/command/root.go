package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/netconf-cli/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:     "netconf-cli",
		Usage:    "NETCONF client configuration and interactive shell",
		Version:  buildinfo.Get().String(),
		Flags:    globalFlags(),
		Commands: append(commands(), ShellCommand()),
		Metadata: map[string]any{},
		Before: func(c *cli.Context) error {
			rt, err := setup(c)
			if err != nil {
				return err
			}
			c.App.Metadata[runtimeKey] = rt
			return nil
		},
		After: func(c *cli.Context) error {
			rt, err := getRuntime(c)
			if err != nil {
				// Before failed; there is nothing to store.
				return nil
			}
			return rt.Shutdown.Shutdown()
		},
	}

	return app
}

// commands returns the commands available both from the command line and
// inside the shell.
func commands() []*cli.Command {
	return []*cli.Command{
		ConfigCommand(),
		CapabilitiesCommand(),
		AuthCommand(),
		HistoryCommand(),
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "home",
			Usage:   "Use `DIR` instead of the home directory",
			EnvVars: []string{"NETCONF_HOME"},
		},
		&cli.StringFlag{
			Name:    "settings",
			Usage:   "Read CLI settings from `FILE` instead of <config-dir>/cli.yaml",
			EnvVars: []string{"NETCONF_SETTINGS"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Log debug messages",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json (overrides log.format)",
		},
	}
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
