package sshauth

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/yndnr/netconf-cli/internal/core/domain"
)

// Default priorities. Higher values are tried first; a negative value
// disables the method.
const (
	DefaultInteractivePriority = 3
	DefaultPasswordPriority    = 2
	DefaultPublicKeyPriority   = 1
)

var (
	// ErrNoKeyPair is returned when public key material is requested but
	// no key pair is registered.
	ErrNoKeyPair = errors.New("sshauth: no key pair registered")

	// ErrNoHostKeyCallback is returned by ClientConfig when no way to
	// verify the server's host key was given.
	ErrNoHostKeyCallback = errors.New("sshauth: host key callback required")
)

// Registry holds authentication preferences and the key pair.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	prefs   map[domain.AuthMethod]int
	keyPair domain.KeyPair

	readFile func(string) ([]byte, error)
}

// NewRegistry creates a Registry with the default priorities and no key
// pair.
func NewRegistry() *Registry {
	return &Registry{
		prefs: map[domain.AuthMethod]int{
			domain.AuthInteractive: DefaultInteractivePriority,
			domain.AuthPassword:    DefaultPasswordPriority,
			domain.AuthPublicKey:   DefaultPublicKeyPriority,
		},
		readFile: os.ReadFile,
	}
}

// SetPreference sets the priority of method.
func (r *Registry) SetPreference(method domain.AuthMethod, priority int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[method] = priority
}

// SetKeyPair replaces the registered key pair.
func (r *Registry) SetKeyPair(privatePath, publicPath string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keyPair = domain.KeyPair{PrivatePath: privatePath, PublicPath: publicPath}
}

// KeyPair returns the registered key pair, if any.
func (r *Registry) KeyPair() (domain.KeyPair, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.keyPair, !r.keyPair.IsZero()
}

// Preferences returns every method with its priority in the order the
// methods are tried: highest priority first, ties broken by method.
// Disabled methods are included at the end.
func (r *Registry) Preferences() []domain.AuthPreference {
	r.mu.RLock()
	prefs := make([]domain.AuthPreference, 0, len(r.prefs))
	for m, p := range r.prefs {
		prefs = append(prefs, domain.AuthPreference{Method: m, Priority: p})
	}
	r.mu.RUnlock()

	sort.Slice(prefs, func(i, j int) bool {
		if prefs[i].Priority != prefs[j].Priority {
			return prefs[i].Priority > prefs[j].Priority
		}
		return prefs[i].Method < prefs[j].Method
	})
	return prefs
}

// Signer loads the registered private key. passphrase is consulted only
// when the key is encrypted and may be nil.
func (r *Registry) Signer(passphrase func() ([]byte, error)) (ssh.Signer, error) {
	kp, ok := r.KeyPair()
	if !ok {
		return nil, ErrNoKeyPair
	}
	pemBytes, err := r.readFile(kp.PrivatePath)
	if err != nil {
		return nil, fmt.Errorf("sshauth: read private key %s: %w", kp.PrivatePath, err)
	}

	signer, err := ssh.ParsePrivateKey(pemBytes)
	var missing *ssh.PassphraseMissingError
	if errors.As(err, &missing) && passphrase != nil {
		pass, perr := passphrase()
		if perr != nil {
			return nil, fmt.Errorf("sshauth: read passphrase: %w", perr)
		}
		signer, err = ssh.ParsePrivateKeyWithPassphrase(pemBytes, pass)
	}
	if err != nil {
		return nil, fmt.Errorf("sshauth: parse private key %s: %w", kp.PrivatePath, err)
	}
	return signer, nil
}

// Credentials supplies the secrets for interactive methods. Nil fields
// leave the corresponding method out of the client configuration.
type Credentials struct {
	Password   func() (string, error)
	Challenge  ssh.KeyboardInteractiveChallenge
	Passphrase func() ([]byte, error)
}

// ClientConfig builds an SSH client configuration for user whose
// authentication methods follow the registered priorities. Methods that
// are disabled or lack credentials are left out.
func (r *Registry) ClientConfig(user string, creds Credentials, hostKey ssh.HostKeyCallback) (*ssh.ClientConfig, error) {
	if hostKey == nil {
		return nil, ErrNoHostKeyCallback
	}

	var methods []ssh.AuthMethod
	for _, pref := range r.Preferences() {
		if !pref.Enabled() {
			continue
		}
		switch pref.Method {
		case domain.AuthPublicKey:
			if _, ok := r.KeyPair(); !ok {
				continue
			}
			methods = append(methods, ssh.PublicKeysCallback(func() ([]ssh.Signer, error) {
				signer, err := r.Signer(creds.Passphrase)
				if err != nil {
					return nil, err
				}
				return []ssh.Signer{signer}, nil
			}))
		case domain.AuthPassword:
			if creds.Password != nil {
				methods = append(methods, ssh.PasswordCallback(creds.Password))
			}
		case domain.AuthInteractive:
			if creds.Challenge != nil {
				methods = append(methods, ssh.KeyboardInteractive(creds.Challenge))
			}
		}
	}

	return &ssh.ClientConfig{
		User:            user,
		Auth:            methods,
		HostKeyCallback: hostKey,
	}, nil
}

// KnownHosts returns a host key callback backed by the known_hosts files
// at paths.
func KnownHosts(paths ...string) (ssh.HostKeyCallback, error) {
	cb, err := knownhosts.New(paths...)
	if err != nil {
		return nil, fmt.Errorf("sshauth: load known hosts: %w", err)
	}
	return cb, nil
}
