// Package winsvc abstracts Windows service control for the deployment
// procedure: existence, running-state, and stop. The interface keeps the
// verification and cleanup logic portable and testable with fakes.
package winsvc

// Service names installed by the agent installer.
const (
	AgentServiceName   = "OsirisCareAgent"
	UpdaterServiceName = "OsirisCareUpdater"
)

// Status of a service as reported by the service control manager.
type Status string

const (
	StatusRunning Status = "running"
	StatusStopped Status = "stopped"
	StatusPending Status = "pending"
	StatusUnknown Status = "unknown"
)

// Controller is the capability surface the deployment procedure needs from
// the OS service manager.
type Controller interface {
	// Exists reports whether a service with the given name is registered.
	Exists(name string) (bool, error)
	// Status returns the current run state of a registered service.
	Status(name string) (Status, error)
	// Stop requests a stop and waits for the service to leave the running
	// state. Stopping an already-stopped service is not an error.
	Stop(name string) error
}

// Open returns the platform service controller.
func Open() Controller {
	return openPlatform()
}
