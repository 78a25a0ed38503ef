// Package domain defines the core domain models for the NETCONF client.
//
// Domain models are pure values without any IO dependencies or framework
// coupling. This package contains:
//
//   - CapabilitySet: ordered set of capability URIs announced in <hello>
//   - AuthMethod, AuthPreference: SSH authentication method priorities
//   - KeyPair: private/public key file locations
//   - Errors: coded configuration errors
package domain
