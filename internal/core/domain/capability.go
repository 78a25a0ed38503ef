package domain

// NETCONF capability URIs announced by default.
const (
	CapBase10          = "urn:ietf:params:netconf:base:1.0"
	CapBase11          = "urn:ietf:params:netconf:base:1.1"
	CapWritableRunning = "urn:ietf:params:netconf:capability:writable-running:1.0"
	CapCandidate       = "urn:ietf:params:netconf:capability:candidate:1.0"
	CapStartup         = "urn:ietf:params:netconf:capability:startup:1.0"
	CapValidate10      = "urn:ietf:params:netconf:capability:validate:1.0"
	CapValidate11      = "urn:ietf:params:netconf:capability:validate:1.1"
	CapRollbackOnError = "urn:ietf:params:netconf:capability:rollback-on-error:1.0"
	CapURL             = "urn:ietf:params:netconf:capability:url:1.0"
	CapXPath           = "urn:ietf:params:netconf:capability:xpath:1.0"
	CapNotification    = "urn:ietf:params:netconf:capability:notification:1.0"
	CapInterleave      = "urn:ietf:params:netconf:capability:interleave:1.0"
	CapWithDefaults    = "urn:ietf:params:netconf:capability:with-defaults:1.0"
	CapMonitoring      = "urn:ietf:params:xml:ns:yang:ietf-netconf-monitoring"
)

// CapabilitySet is a set of capability identifiers. Identifiers are opaque
// and case-sensitive. Iteration follows insertion order so that a stored
// set is always serialized the same way.
//
// CapabilitySet is not safe for concurrent use.
type CapabilitySet struct {
	order []string
	index map[string]struct{}
}

// NewCapabilitySet creates a set holding caps in the given order.
func NewCapabilitySet(caps ...string) *CapabilitySet {
	s := &CapabilitySet{
		order: make([]string, 0, len(caps)),
		index: make(map[string]struct{}, len(caps)),
	}
	for _, c := range caps {
		s.Add(c)
	}
	return s
}

// Add inserts cap. Adding a value that is already present is a no-op.
// It reports whether the set changed.
func (s *CapabilitySet) Add(cap string) bool {
	if _, ok := s.index[cap]; ok {
		return false
	}
	s.index[cap] = struct{}{}
	s.order = append(s.order, cap)
	return true
}

// Remove deletes cap and reports whether it was present.
func (s *CapabilitySet) Remove(cap string) bool {
	if _, ok := s.index[cap]; !ok {
		return false
	}
	delete(s.index, cap)
	for i, c := range s.order {
		if c == cap {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether cap is in the set.
func (s *CapabilitySet) Contains(cap string) bool {
	_, ok := s.index[cap]
	return ok
}

// Len returns the number of capabilities.
func (s *CapabilitySet) Len() int {
	return len(s.order)
}

// All returns the capabilities in iteration order. The returned slice is a
// copy.
func (s *CapabilitySet) All() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Equal reports whether both sets hold the same capabilities, ignoring order.
func (s *CapabilitySet) Equal(other *CapabilitySet) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Len() != other.Len() {
		return false
	}
	for c := range s.index {
		if !other.Contains(c) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (s *CapabilitySet) Clone() *CapabilitySet {
	return NewCapabilitySet(s.order...)
}

// CapabilityProvider supplies the capability set a session starts with.
type CapabilityProvider interface {
	DefaultCapabilities() *CapabilitySet
}

// DefaultProvider provides the client's built-in capability set.
type DefaultProvider struct{}

// DefaultCapabilities returns a fresh copy of the built-in capability set.
func (DefaultProvider) DefaultCapabilities() *CapabilitySet {
	return NewCapabilitySet(
		CapBase10,
		CapBase11,
		CapWritableRunning,
		CapCandidate,
		CapStartup,
		CapValidate10,
		CapValidate11,
		CapRollbackOnError,
		CapURL,
		CapXPath,
		CapNotification,
		CapInterleave,
		CapWithDefaults,
		CapMonitoring,
	)
}
