package command

import (
	"context"
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/netconf-cli/internal/cli/repl"
	"github.com/yndnr/netconf-cli/internal/infra/confloader"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Start an interactive shell",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Reload authentication settings when config.xml changes",
			},
		},
		Action: shellRun,
	}
}

func shellRun(c *cli.Context) error {
	rt, err := getRuntime(c)
	if err != nil {
		return err
	}

	if c.Bool("watch") {
		stop, err := watchDocument(rt)
		if err != nil {
			rt.Logger.Warn("cannot watch configuration document", "error", err)
		} else {
			defer stop()
		}
	}

	// A signal ends the loop after the current line; After then stores
	// the configuration.
	ctx, stop := rt.Shutdown.Watch(c.Context)
	defer stop()

	r := repl.New(repl.Options{
		Input:     c.App.Reader,
		Output:    rt.Out,
		History:   rt.History,
		Completer: repl.NewCompleter(commandPaths(commands())...),
		Dispatch: func(ctx context.Context, args []string) error {
			sub := shellApp(rt, c)
			return sub.RunContext(ctx, append([]string{sub.Name}, args...))
		},
	})

	err = r.Run(ctx)
	if errors.Is(err, context.Canceled) {
		rt.Logger.Info("shell interrupted")
		return nil
	}
	return err
}

// shellApp builds the command tree for one shell line. It shares the
// runtime and has no hooks: loading and storing happen once per process.
func shellApp(rt *Runtime, c *cli.Context) *cli.App {
	return &cli.App{
		Name:           c.App.Name,
		Usage:          c.App.Usage,
		HideVersion:    true,
		Commands:       commands(),
		Writer:         rt.Out,
		ErrWriter:      c.App.ErrWriter,
		Metadata:       map[string]any{runtimeKey: rt},
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// commandPaths lists "group sub" names for completion.
func commandPaths(cmds []*cli.Command) []string {
	var paths []string
	for _, cmd := range cmds {
		paths = append(paths, cmd.Name)
		for _, sub := range cmd.Subcommands {
			paths = append(paths, cmd.Name+" "+sub.Name)
		}
	}
	return paths
}

// watchDocument reloads the authentication section of config.xml on every
// write. Capabilities stay as they were when the shell started.
func watchDocument(rt *Runtime) (func(), error) {
	path := rt.Loaded.Paths.Document
	if path == "" {
		return nil, errors.New("configuration directory unavailable")
	}

	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(rt.Logger))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}
	w.OnChange(func(string) {
		summary, err := rt.Sync.ReloadAuthentication()
		if err != nil {
			rt.Logger.Warn("authentication not reloaded", "path", path, "error", err)
			return
		}
		rt.Logger.Info("authentication reloaded", "path", path, "preferences", len(summary.Preferences), "key_pairs", summary.KeyPairs)
	})
	w.StartAsync()

	return func() { _ = w.Stop() }, nil
}
