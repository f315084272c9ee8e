// Package verify confirms that a completed installer run actually left the
// host in the expected state: program files on disk, agent identity persisted,
// and both services registered and running.
//
// Each check short-circuits the whole verification on first failure with a
// specific, actionable message. There is no partial-success outcome.
package verify

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/osiriscare/deploy/internal/regstore"
	"github.com/osiriscare/deploy/internal/winsvc"
)

// GracePeriod is slept before the first check so the agent has time to start
// and complete its registration call to the backend.
const GracePeriod = 8 * time.Second

// InstallSubdir is the vendor path under Program Files.
const InstallSubdir = `OsirisCare\Agent`

// ExpectedBinaries are the files the installer must have placed on disk.
var ExpectedBinaries = []string{
	"OsirisCareAgent.exe",
	"OsirisCareUpdater.exe",
	"Uninstall.exe",
}

// Failure identifies which verification check failed and why.
type Failure struct {
	Check  string
	Detail string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Check, f.Detail)
}

// Verifier runs the post-install state checks. Store, Services, and the
// clock/environment hooks are injectable so the sequence is testable without
// a Windows host.
type Verifier struct {
	Store    regstore.Store
	Services winsvc.Controller

	// InstallDir overrides architecture-based resolution when non-empty.
	InstallDir string

	// Getenv defaults to os.Getenv.
	Getenv func(string) string
	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
}

// ResolveInstallDir returns the expected installation directory for the
// detected architecture. The agent always installs under the native Program
// Files directory, so a 32-bit deployment process on a 64-bit OS must follow
// ProgramW6432 rather than its own redirected view.
func ResolveInstallDir(getenv func(string) string, is64BitOS bool) string {
	var base string
	if is64BitOS {
		base = getenv("ProgramW6432")
	}
	if base == "" {
		base = getenv("ProgramFiles")
	}
	if base == "" {
		base = `C:\Program Files`
	}
	return filepath.Join(base, InstallSubdir)
}

// Verify runs the full check sequence for a host whose OS bitness is is64BitOS.
// A nil return means the installation is confirmed end to end, including a
// completed backend registration (non-zero agent identifier).
func (v Verifier) Verify(ctx context.Context, is64BitOS bool) error {
	getenv := v.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	sleep := v.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	log.Printf("[verify] Waiting %v for agent startup and registration", GracePeriod)
	sleep(GracePeriod)

	if err := ctx.Err(); err != nil {
		return err
	}

	dir := v.InstallDir
	if dir == "" {
		dir = ResolveInstallDir(getenv, is64BitOS)
	}
	log.Printf("[verify] Expected install directory: %s", dir)

	for _, name := range ExpectedBinaries {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			return &Failure{
				Check:  "installed files",
				Detail: fmt.Sprintf("expected binary %s is missing", path),
			}
		}
	}
	log.Printf("[verify] All %d expected binaries present", len(ExpectedBinaries))

	if err := v.verifyRegistry(); err != nil {
		return err
	}

	if err := v.verifyServices(); err != nil {
		return err
	}

	// Registration completes when the backend assigns a non-zero agent id.
	agentID, err := v.Store.GetInteger(regstore.ValueAgentID)
	if err != nil {
		return &Failure{
			Check:  "agent registration",
			Detail: fmt.Sprintf("could not read %s: %v", regstore.ValueAgentID, err),
		}
	}
	if agentID == 0 {
		return &Failure{
			Check:  "agent registration",
			Detail: "agent identifier is 0; registration with the backend did not complete",
		}
	}
	log.Printf("[verify] Agent registered with id %d", agentID)

	return nil
}

func (v Verifier) verifyRegistry() error {
	exists, err := v.Store.KeyExists()
	if err != nil {
		return &Failure{Check: "configuration key", Detail: fmt.Sprintf("could not query %s: %v", regstore.AgentKeyPath, err)}
	}
	if !exists {
		return &Failure{Check: "configuration key", Detail: fmt.Sprintf("%s was not created by the installer", regstore.AgentKeyPath)}
	}

	if _, err := v.Store.GetInteger(regstore.ValueAgentID); err != nil {
		return &Failure{Check: "configuration values", Detail: fmt.Sprintf("%s value is missing: %v", regstore.ValueAgentID, err)}
	}
	if _, err := v.Store.GetString(regstore.ValueOrganizationKey); err != nil {
		return &Failure{Check: "configuration values", Detail: fmt.Sprintf("%s value is missing: %v", regstore.ValueOrganizationKey, err)}
	}
	if _, err := v.Store.GetString(regstore.ValueTags); err != nil {
		return &Failure{Check: "configuration values", Detail: fmt.Sprintf("%s value is missing: %v", regstore.ValueTags, err)}
	}
	log.Printf("[verify] Configuration key present with expected values")
	return nil
}

func (v Verifier) verifyServices() error {
	for _, name := range []string{winsvc.AgentServiceName, winsvc.UpdaterServiceName} {
		exists, err := v.Services.Exists(name)
		if err != nil {
			return &Failure{Check: "services", Detail: fmt.Sprintf("could not query service %s: %v", name, err)}
		}
		if !exists {
			return &Failure{Check: "services", Detail: fmt.Sprintf("service %s is not registered", name)}
		}

		status, err := v.Services.Status(name)
		if err != nil {
			return &Failure{Check: "services", Detail: fmt.Sprintf("could not read status of service %s: %v", name, err)}
		}
		if status != winsvc.StatusRunning {
			return &Failure{Check: "services", Detail: fmt.Sprintf("service %s is %s, expected running", name, status)}
		}
	}
	log.Printf("[verify] Both services registered and running")
	return nil
}
