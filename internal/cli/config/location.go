package config

import (
	"errors"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/yndnr/netconf-cli/internal/core/domain"
)

// DefaultProduct names the per-user directory: ~/.<product>_client.
const DefaultProduct = "netconf"

// DirPerm is the mode used to create the configuration directory.
// The process umask narrows it as usual.
const DirPerm os.FileMode = 0777

// AccessMode is an access(2) permission mask.
type AccessMode uint32

// Access modes required on the configuration directory.
const (
	ModeLoad  AccessMode = unix.R_OK | unix.X_OK
	ModeStore AccessMode = unix.R_OK | unix.W_OK | unix.X_OK
)

// AccessFunc checks whether the process may access path with mode.
type AccessFunc func(path string, mode AccessMode) error

func unixAccess(path string, mode AccessMode) error {
	return unix.Access(path, uint32(mode))
}

// Resolver locates the per-user configuration directory.
type Resolver struct {
	// Product names the directory. Defaults to DefaultProduct.
	Product string
	// Home overrides home directory discovery when non-empty.
	Home string

	Getenv      func(string) string
	CurrentUser func() (*user.User, error)
	Access      AccessFunc
	Mkdir       func(path string, perm os.FileMode) error
}

// NewResolver creates a Resolver backed by the real environment.
func NewResolver() *Resolver {
	return &Resolver{Product: DefaultProduct}
}

// HomeDir returns the user's home directory: the override, then $HOME,
// then the user database.
func (r *Resolver) HomeDir() (string, error) {
	if r.Home != "" {
		return r.Home, nil
	}

	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if home := getenv("HOME"); home != "" {
		return home, nil
	}

	current := r.CurrentUser
	if current == nil {
		current = user.Current
	}
	u, err := current()
	if err != nil {
		return "", domain.ErrHomeUnresolved.WithCause(err)
	}
	if u == nil || u.HomeDir == "" {
		return "", domain.ErrHomeUnresolved.WithDetails("user database has no home directory")
	}
	return u.HomeDir, nil
}

// Dir returns the configuration directory path without touching the
// file system.
func (r *Resolver) Dir() (string, error) {
	home, err := r.HomeDir()
	if err != nil {
		return "", err
	}
	product := r.Product
	if product == "" {
		product = DefaultProduct
	}
	return filepath.Join(home, "."+product+"_client"), nil
}

// Resolve returns the configuration directory, creating it when it does
// not exist.
//
// It fails with ErrHomeUnresolved when no home directory can be found and
// with ErrConfigDirUnavailable when the directory cannot be created or is
// not accessible with mode. Callers skip file-backed work on the latter.
func (r *Resolver) Resolve(mode AccessMode) (string, error) {
	dir, err := r.Dir()
	if err != nil {
		return "", err
	}

	access := r.Access
	if access == nil {
		access = unixAccess
	}
	err = access(dir, mode)
	if err == nil {
		return dir, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return dir, domain.ErrConfigDirUnavailable.WithDetails(dir).WithCause(err)
	}

	mkdir := r.Mkdir
	if mkdir == nil {
		mkdir = os.Mkdir
	}
	if err := mkdir(dir, DirPerm); err != nil {
		return dir, domain.ErrConfigDirUnavailable.WithDetails(dir).WithCause(err)
	}
	return dir, nil
}
