package domain

import (
	"fmt"
	"strings"
)

// AuthMethod identifies an SSH authentication method.
type AuthMethod int

// Supported authentication methods.
const (
	AuthPublicKey AuthMethod = iota + 1
	AuthInteractive
	AuthPassword
)

// authMethodNames maps the element names used in config.xml.
var authMethodNames = map[string]AuthMethod{
	"publickey":   AuthPublicKey,
	"interactive": AuthInteractive,
	"password":    AuthPassword,
}

// ParseAuthMethod maps a config.xml element name to an AuthMethod.
// Names are case-sensitive.
func ParseAuthMethod(name string) (AuthMethod, bool) {
	m, ok := authMethodNames[name]
	return m, ok
}

// String returns the config.xml element name of the method.
func (m AuthMethod) String() string {
	switch m {
	case AuthPublicKey:
		return "publickey"
	case AuthInteractive:
		return "interactive"
	case AuthPassword:
		return "password"
	default:
		return "unknown"
	}
}

// MarshalText encodes the method by name.
func (m AuthMethod) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a method name.
func (m *AuthMethod) UnmarshalText(text []byte) error {
	parsed, ok := ParseAuthMethod(string(text))
	if !ok {
		return ErrUnknownAuthMethod.WithDetails(fmt.Sprintf("%q", text))
	}
	*m = parsed
	return nil
}

// AuthMethods returns all supported methods in declaration order.
func AuthMethods() []AuthMethod {
	return []AuthMethod{AuthPublicKey, AuthInteractive, AuthPassword}
}

// AuthPreference assigns a priority to an authentication method.
// Higher priorities are tried first; a negative priority disables the method.
type AuthPreference struct {
	Method   AuthMethod `json:"method" yaml:"method"`
	Priority int        `json:"priority" yaml:"priority"`
}

// Enabled reports whether the method may be tried at all.
func (p AuthPreference) Enabled() bool {
	return p.Priority >= 0
}

// PublicKeySuffix is appended to a private key path to locate its public key.
const PublicKeySuffix = ".pub"

// KeyPair holds the locations of an SSH private key and its public key.
type KeyPair struct {
	PrivatePath string `json:"private_path" yaml:"private_path"`
	PublicPath  string `json:"public_path" yaml:"public_path"`
}

// NewKeyPair derives a key pair from a private key path. The public key
// path is the private path with PublicKeySuffix appended.
func NewKeyPair(privatePath string) (KeyPair, error) {
	if strings.TrimSpace(privatePath) == "" {
		return KeyPair{}, ErrKeyPairInvalid.WithDetails("empty private key path")
	}
	if strings.ContainsRune(privatePath, 0) {
		return KeyPair{}, ErrKeyPairInvalid.WithDetails("private key path contains NUL")
	}
	return KeyPair{
		PrivatePath: privatePath,
		PublicPath:  privatePath + PublicKeySuffix,
	}, nil
}

// IsZero reports whether no key pair is set.
func (k KeyPair) IsZero() bool {
	return k.PrivatePath == "" && k.PublicPath == ""
}
