// Package regstore abstracts the persisted agent configuration store.
//
// On Windows this is the registry key HKLM\SOFTWARE\OsirisCare\Agent written
// by the installer. The interface keeps verification and re-registration
// cleanup portable and testable with fakes.
package regstore

import "errors"

// AgentKeyPath is the registry subkey (under HKLM) holding agent identity.
const AgentKeyPath = `SOFTWARE\OsirisCare\Agent`

// Value names persisted by the installer after successful registration.
const (
	ValueAgentID         = "AgentId"
	ValueOrganizationKey = "OrganizationKey"
	ValueTags            = "Tags"
)

// ErrNotExist is returned when the key or a requested value is absent.
var ErrNotExist = errors.New("registry key or value does not exist")

// Store is the capability surface the deployment procedure needs from the
// persisted configuration store.
type Store interface {
	// KeyExists reports whether the agent configuration key is present.
	KeyExists() (bool, error)
	// GetString reads a named string value. Returns ErrNotExist if absent.
	GetString(name string) (string, error)
	// GetInteger reads a named numeric value. Returns ErrNotExist if absent.
	GetInteger(name string) (uint64, error)
	// DeleteTree removes the agent configuration key and all of its
	// subkeys. A missing key is not an error.
	DeleteTree() error
}

// Open returns the platform store for the agent configuration key.
func Open() Store {
	return openPlatform()
}
