package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/netconf-cli/internal/cli/config"
	"github.com/yndnr/netconf-cli/internal/cli/output"
	"github.com/yndnr/netconf-cli/internal/cli/repl"
	"github.com/yndnr/netconf-cli/internal/core/domain"
	"github.com/yndnr/netconf-cli/internal/infra/shutdown"
	"github.com/yndnr/netconf-cli/internal/sshauth"
	"github.com/yndnr/netconf-cli/internal/telemetry/logger"
	"github.com/yndnr/netconf-cli/internal/telemetry/metric"
)

const runtimeKey = "runtime"

// storeTimeout bounds the store hook.
const storeTimeout = 10 * time.Second

var _ config.AuthConfigurer = (*sshauth.Registry)(nil)

// Runtime is the state of one CLI run, shared by every command.
type Runtime struct {
	Settings     *config.Settings
	Logger       logger.Logger
	RunID        string
	Sync         *config.Context
	Auth         *sshauth.Registry
	History      *repl.History
	Metrics      *metric.Registry
	Capabilities *domain.CapabilitySet
	Loaded       *config.LoadResult
	Shutdown     *shutdown.Handler
	Format       output.Format
	Out          io.Writer
}

// getRuntime returns the runtime set up by the Before hook.
func getRuntime(c *cli.Context) (*Runtime, error) {
	if rt, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
		return rt, nil
	}
	return nil, errors.New("command: runtime not initialized")
}

// setup builds the runtime from flags and settings and loads the client
// configuration.
func setup(c *cli.Context) (*Runtime, error) {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return nil, err
	}

	resolver := config.NewResolver()
	resolver.Home = c.String("home")

	settings, err := loadSettings(c, resolver)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = settings.Log.Level
	logCfg.Format = settings.Log.Format
	logCfg.Output = c.App.ErrWriter
	if c.Bool("verbose") {
		logCfg.Level = "debug"
	}
	if f := c.String("log-format"); f != "" {
		logCfg.Format = f
	}
	base, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	runID := logger.NewRunID()
	log := base.With("run_id", runID)
	ctx := logger.WithRunID(c.Context, runID)
	c.Context = logger.WithLogger(ctx, base)

	rt := &Runtime{
		Settings: settings,
		Logger:   log,
		RunID:    runID,
		Auth:     sshauth.NewRegistry(),
		History:  repl.NewHistory(settings.History.MaxSize),
		Metrics:  metric.NewRegistry(),
		Shutdown: shutdown.NewHandler(storeTimeout),
		Format:   format,
		Out:      c.App.Writer,
	}
	rt.Sync = &config.Context{
		Resolver:       resolver,
		History:        config.NewHistoryStore(rt.History),
		Defaults:       domain.DefaultProvider{},
		Auth:           rt.Auth,
		Logger:         log,
		Metrics:        rt.Metrics,
		StrictPriority: settings.Auth.StrictPriority,
		RootElement:    settings.Document.Root,
	}

	// A missing home directory is logged by Load; the run continues on
	// the defaults and nothing is stored at the end.
	rt.Loaded, _ = rt.Sync.Load()
	rt.Capabilities = rt.Loaded.Capabilities

	rt.Shutdown.OnShutdown(rt.persist)
	return rt, nil
}

// loadSettings reads --settings when given, otherwise the optional
// cli.yaml in the configuration directory.
func loadSettings(c *cli.Context, resolver *config.Resolver) (*config.Settings, error) {
	if path := c.String("settings"); path != "" {
		return config.LoadSettings(path, true)
	}
	path := ""
	if dir, err := resolver.Dir(); err == nil {
		path = filepath.Join(dir, config.SettingsFile)
	}
	return config.LoadSettings(path, false)
}

// persist stores the configuration and writes the metrics textfile. It is
// the runtime's only shutdown hook, so it runs once per process.
func (rt *Runtime) persist(context.Context) error {
	res, err := rt.Sync.Store(rt.Capabilities)
	if err != nil {
		return err
	}
	rt.Logger.Debug("configuration stored", "dir", res.Paths.Dir, "written", res.DocumentWritten, "warnings", len(res.Warnings))

	if path := rt.Settings.Metrics.Textfile; path != "" {
		if err := rt.Metrics.WriteTextfile(path, time.Now()); err != nil {
			rt.Logger.Warn("metrics textfile not written", "path", path, "error", err)
		}
	}
	return nil
}

// render writes data in the selected output format.
func (rt *Runtime) render(data any) error {
	return output.NewFormatter(rt.Format).Format(rt.Out, data)
}
