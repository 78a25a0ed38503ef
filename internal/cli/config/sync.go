package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/yndnr/netconf-cli/internal/core/domain"
	"github.com/yndnr/netconf-cli/internal/telemetry/logger"
)

// Operation, section and result labels reported to a Recorder.
const (
	OpLoad  = "load"
	OpStore = "store"

	SectionDirectory      = "directory"
	SectionHistory        = "history"
	SectionDocument       = "document"
	SectionCapabilities   = "capabilities"
	SectionAuthentication = "authentication"

	ResultOK      = "ok"
	ResultError   = "error"
	ResultSkipped = "skipped"
)

// Recorder observes load and store outcomes.
type Recorder interface {
	RecordOperation(op, section, result string)
	SetCapabilities(n int)
}

type nopRecorder struct{}

func (nopRecorder) RecordOperation(string, string, string) {}
func (nopRecorder) SetCapabilities(int)                    {}

// Layout lists the files kept in a configuration directory.
type Layout struct {
	Dir      string `json:"dir" yaml:"dir"`
	History  string `json:"history" yaml:"history"`
	Document string `json:"document" yaml:"document"`
	Settings string `json:"settings" yaml:"settings"`
}

// Paths returns the file locations inside dir.
func Paths(dir string) Layout {
	return Layout{
		Dir:      dir,
		History:  filepath.Join(dir, HistoryFile),
		Document: filepath.Join(dir, DocumentFile),
		Settings: filepath.Join(dir, SettingsFile),
	}
}

// Context carries everything Load and Store need. It is owned by the
// caller; nothing in this package keeps process-wide state.
type Context struct {
	Resolver *Resolver
	History  *HistoryStore
	Defaults domain.CapabilityProvider
	Auth     AuthConfigurer
	Logger   logger.Logger
	Metrics  Recorder

	// StrictPriority rejects non-numeric authentication priorities.
	StrictPriority bool
	// RootElement names the root of newly created documents.
	RootElement string
}

// LoadResult is the outcome of Load. It is returned even when Load fails.
type LoadResult struct {
	Capabilities *domain.CapabilitySet
	// FromDocument is true when Capabilities came from config.xml.
	FromDocument bool
	Paths        Layout
	Auth         AuthSummary
	// Warnings collects non-fatal failures.
	Warnings []error
}

// StoreResult is the outcome of Store.
type StoreResult struct {
	Paths Layout
	// DocumentWritten is true when config.xml was rewritten.
	DocumentWritten bool
	Warnings        []error
}

// Load restores history, capabilities and authentication settings.
//
// The returned capability set starts as the provider's defaults and is
// replaced only when config.xml holds a <capabilities> section. The error
// is non-nil only when the home directory cannot be determined.
func (c *Context) Load() (*LoadResult, error) {
	log := c.logger().With("op", OpLoad)
	rec := c.recorder()

	res := &LoadResult{Capabilities: c.defaults()}
	defer func() { rec.SetCapabilities(res.Capabilities.Len()) }()

	dir, err := c.resolver().Resolve(ModeLoad)
	if err != nil {
		rec.RecordOperation(OpLoad, SectionDirectory, ResultError)
		if errors.Is(err, domain.ErrHomeUnresolved) {
			log.Error("cannot load configuration", "code", domain.GetErrorCode(err), "error", err)
			return res, err
		}
		log.Warn("configuration directory unavailable, using defaults", "code", domain.GetErrorCode(err), "error", err)
		res.Warnings = append(res.Warnings, err)
		return res, nil
	}
	rec.RecordOperation(OpLoad, SectionDirectory, ResultOK)
	res.Paths = Paths(dir)

	if err := c.history().Load(dir); err != nil {
		log.Warn("history not loaded", "code", domain.GetErrorCode(err), "error", err)
		res.Warnings = append(res.Warnings, err)
		rec.RecordOperation(OpLoad, SectionHistory, ResultError)
	} else {
		rec.RecordOperation(OpLoad, SectionHistory, ResultOK)
	}

	doc, err := c.readOrCreate(res.Paths.Document, log)
	if err != nil {
		res.Warnings = append(res.Warnings, err)
		rec.RecordOperation(OpLoad, SectionDocument, ResultError)
		return res, nil
	}
	root := RecognizedRoot(doc)
	if root == nil {
		if doc != nil {
			log.Warn("unrecognized configuration document root, using defaults", "path", res.Paths.Document, "root", doc.Root().Tag)
		}
		rec.RecordOperation(OpLoad, SectionDocument, ResultSkipped)
		return res, nil
	}
	rec.RecordOperation(OpLoad, SectionDocument, ResultOK)

	if caps, ok := ParseCapabilities(root); ok {
		res.Capabilities = caps
		res.FromDocument = true
		log.Debug("capabilities loaded", "count", caps.Len())
		rec.RecordOperation(OpLoad, SectionCapabilities, ResultOK)
	} else {
		rec.RecordOperation(OpLoad, SectionCapabilities, ResultSkipped)
	}

	res.Auth = c.applyAuth(root, log)
	res.Warnings = append(res.Warnings, res.Auth.Skipped...)
	return res, nil
}

// ReloadAuthentication re-reads only the authentication section of
// config.xml. Capabilities are left alone because they are fixed once a
// session has negotiated them.
func (c *Context) ReloadAuthentication() (AuthSummary, error) {
	log := c.logger().With("op", "reload")

	dir, err := c.resolver().Resolve(ModeLoad)
	if err != nil {
		return AuthSummary{}, err
	}
	path := Paths(dir).Document
	doc, err := ReadDocument(path)
	if err != nil {
		return AuthSummary{}, err
	}
	root := RecognizedRoot(doc)
	if root == nil {
		return AuthSummary{}, nil
	}
	return c.applyAuth(root, log), nil
}

// Store saves history and writes caps into config.xml.
//
// An existing, well-formed document is updated in place: only its
// <capabilities> section is replaced, everything else is written back as
// read. A missing or malformed document is replaced by a new one. The error
// is non-nil only when the home directory cannot be determined; every other
// failure is logged and listed in the result's warnings.
func (c *Context) Store(caps *domain.CapabilitySet) (*StoreResult, error) {
	log := c.logger().With("op", OpStore)
	rec := c.recorder()
	res := &StoreResult{}

	dir, err := c.resolver().Resolve(ModeStore)
	if err != nil {
		rec.RecordOperation(OpStore, SectionDirectory, ResultError)
		if errors.Is(err, domain.ErrHomeUnresolved) {
			log.Error("cannot store configuration", "code", domain.GetErrorCode(err), "error", err)
			return res, err
		}
		log.Warn("configuration directory unavailable, nothing stored", "code", domain.GetErrorCode(err), "error", err)
		res.Warnings = append(res.Warnings, err)
		return res, nil
	}
	rec.RecordOperation(OpStore, SectionDirectory, ResultOK)
	res.Paths = Paths(dir)

	if err := c.history().Save(dir); err != nil {
		log.Warn("history not saved", "code", domain.GetErrorCode(err), "error", err)
		res.Warnings = append(res.Warnings, err)
		rec.RecordOperation(OpStore, SectionHistory, ResultError)
	} else {
		rec.RecordOperation(OpStore, SectionHistory, ResultOK)
	}

	path := res.Paths.Document
	doc, err := ReadDocument(path)
	if err != nil || doc == nil {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn("rebuilding configuration document", "path", path, "error", err)
		}
		doc = NewDocument(c.RootElement)
	}

	if root := RecognizedRoot(doc); root != nil {
		ApplyCapabilities(root, caps)
	} else {
		log.Warn("unrecognized configuration document root, capabilities not stored", "path", path, "root", doc.Root().Tag)
	}

	if err := WriteDocument(doc, path); err != nil {
		log.Error("configuration document not written", "code", domain.GetErrorCode(err), "error", err)
		res.Warnings = append(res.Warnings, err)
		rec.RecordOperation(OpStore, SectionDocument, ResultError)
		return res, nil
	}
	res.DocumentWritten = true
	rec.RecordOperation(OpStore, SectionDocument, ResultOK)
	if caps != nil {
		rec.SetCapabilities(caps.Len())
	}
	return res, nil
}

// readOrCreate reads the document at path. A missing document is created
// as an empty placeholder and reported as absent.
func (c *Context) readOrCreate(path string, log logger.Logger) (*etree.Document, error) {
	doc, err := ReadDocument(path)
	switch {
	case err == nil:
		if doc == nil {
			log.Debug("configuration document is empty", "path", path)
		}
		return doc, nil
	case errors.Is(err, fs.ErrNotExist):
		log.Info("configuration document does not exist, creating it", "path", path)
		if err := createPlaceholder(path); err != nil {
			log.Warn("configuration document cannot be created", "path", path, "error", err)
		}
		return nil, nil
	default:
		log.Warn("configuration document not loaded, using defaults", "path", path, "code", domain.GetErrorCode(err), "error", err)
		return nil, err
	}
}

func (c *Context) applyAuth(root *etree.Element, log logger.Logger) AuthSummary {
	if c.Auth == nil {
		return AuthSummary{}
	}
	summary := ApplyAuthentication(root, c.Auth, AuthOptions{
		StrictPriority: c.StrictPriority,
		Logger:         log,
	})
	result := ResultOK
	if len(summary.Skipped) > 0 {
		result = ResultError
	}
	c.recorder().RecordOperation(OpLoad, SectionAuthentication, result)
	return summary
}

func (c *Context) resolver() *Resolver {
	if c.Resolver == nil {
		return NewResolver()
	}
	return c.Resolver
}

func (c *Context) history() *HistoryStore {
	if c.History == nil {
		return &HistoryStore{}
	}
	return c.History
}

func (c *Context) defaults() *domain.CapabilitySet {
	if c.Defaults == nil {
		return domain.DefaultProvider{}.DefaultCapabilities()
	}
	return c.Defaults.DefaultCapabilities()
}

func (c *Context) logger() logger.Logger {
	if c.Logger == nil {
		return logger.Discard()
	}
	return c.Logger
}

func (c *Context) recorder() Recorder {
	if c.Metrics == nil {
		return nopRecorder{}
	}
	return c.Metrics
}
