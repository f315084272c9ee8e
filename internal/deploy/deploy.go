// Package deploy implements the deployment procedure: validate, download,
// verify, install, verify installation. Control flow is strictly sequential
// and every failure is fatal to the run.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/osiriscare/deploy/internal/config"
	"github.com/osiriscare/deploy/internal/download"
	"github.com/osiriscare/deploy/internal/hostinfo"
	"github.com/osiriscare/deploy/internal/installer"
	"github.com/osiriscare/deploy/internal/regstore"
	"github.com/osiriscare/deploy/internal/signature"
	"github.com/osiriscare/deploy/internal/verify"
	"github.com/osiriscare/deploy/internal/winsvc"
)

// Outcome of a successful run.
type Outcome string

const (
	// OutcomeInstalled means the full download/install/verify sequence ran.
	OutcomeInstalled Outcome = "installed"
	// OutcomeAlreadyInstalled means the primary service was already
	// registered and no install action was taken.
	OutcomeAlreadyInstalled Outcome = "already-installed"
)

// Orchestrator drives one deployment run. The step functions are injectable
// so the sequence is testable without a network, an installer, or a Windows
// host; New wires the real implementations.
type Orchestrator struct {
	Config config.Config
	Host   hostinfo.Info

	Store    regstore.Store
	Services winsvc.Controller

	// InstallerPath is where the downloaded installer is written. Defaults
	// to the OS temp directory. The file is not removed after the run; temp
	// cleanup is left to the OS.
	InstallerPath string

	downloadFunc      func(ctx context.Context, url, destPath string) error
	verifySigFunc     func(path string) error
	runInstallerFunc  func(ctx context.Context, path, accountKey, organizationKey string) error
	verifyInstallFunc func(ctx context.Context, is64BitOS bool) error
}

// New builds an Orchestrator with the real step implementations.
func New(cfg config.Config, host hostinfo.Info) *Orchestrator {
	store := regstore.Open()
	services := winsvc.Open()

	dl := download.New()
	runner := installer.Runner{Timeout: cfg.InstallTimeout}
	verifier := verify.Verifier{Store: store, Services: services}

	return &Orchestrator{
		Config:            cfg,
		Host:              host,
		Store:             store,
		Services:          services,
		InstallerPath:     filepath.Join(os.TempDir(), cfg.InstallerName),
		downloadFunc:      dl.Fetch,
		verifySigFunc:     signature.Verify,
		runInstallerFunc:  runner.Run,
		verifyInstallFunc: verifier.Verify,
	}
}

// Mode names the branch this configuration selects, for logs and history.
func (o *Orchestrator) Mode() string {
	switch {
	case o.Config.Reregister:
		return "reregister"
	case o.Config.Reinstall:
		return "reinstall"
	default:
		return "install"
	}
}

// Run executes the full procedure and returns the outcome. Any error it
// returns is one of the taxonomy types in this package (or a wrapped
// lower-level error for failures outside the taxonomy); all are fatal.
func (o *Orchestrator) Run(ctx context.Context) (Outcome, error) {
	if err := o.Config.Validate(); err != nil {
		return "", &ConfigError{Reason: err.Error()}
	}

	o.logDiagnostics()

	switch {
	case o.Config.Reregister:
		if err := o.PrepareReregistration(); err != nil {
			return "", err
		}
	case o.Config.Reinstall:
		o.stopServices()
	default:
		installed, err := o.Services.Exists(winsvc.AgentServiceName)
		if err != nil {
			// Can't tell; proceed with the install rather than guess.
			log.Printf("[deploy] Could not query service %s: %v", winsvc.AgentServiceName, err)
		} else if installed {
			log.Printf("[deploy] Service %s is already registered; nothing to do", winsvc.AgentServiceName)
			return OutcomeAlreadyInstalled, nil
		}
	}

	dest := o.InstallerPath
	if dest == "" {
		dest = filepath.Join(os.TempDir(), o.Config.InstallerName)
	}
	url := o.Config.DownloadURL()

	if err := o.downloadFunc(ctx, url, dest); err != nil {
		return "", &DownloadError{URL: maskedURL(o.Config), Err: err}
	}

	if err := o.verifySigFunc(dest); err != nil {
		return "", &IntegrityError{Path: dest, Err: err}
	}
	log.Printf("[deploy] Installer signature verified")

	if err := o.runInstallerFunc(ctx, dest, o.Config.AccountKey, o.Config.OrganizationKey); err != nil {
		if errors.Is(err, installer.ErrTimeout) {
			return "", &InstallTimeoutError{Timeout: o.Config.InstallTimeout.String()}
		}
		return "", fmt.Errorf("installer run failed: %w", err)
	}

	if err := o.verifyInstallFunc(ctx, o.Host.Is64BitOS); err != nil {
		var f *verify.Failure
		if errors.As(err, &f) {
			return "", &VerificationError{Check: f.Check, Detail: f.Detail}
		}
		return "", fmt.Errorf("installation verification failed: %w", err)
	}

	log.Printf("[deploy] Installation verified successfully")
	return OutcomeInstalled, nil
}

// PrepareReregistration stops both services and deletes the persisted
// configuration subtree so the subsequent install treats the host as
// unregistered. A missing key is not an error.
func (o *Orchestrator) PrepareReregistration() error {
	log.Printf("[deploy] Preparing re-registration: clearing persisted agent identity")
	o.stopServices()
	if err := o.Store.DeleteTree(); err != nil {
		return fmt.Errorf("delete %s: %w", regstore.AgentKeyPath, err)
	}
	return nil
}

// stopServices stops both agent services. Failures are logged, not fatal:
// a service that is absent or already stopped must not block the reinstall.
func (o *Orchestrator) stopServices() {
	for _, name := range []string{winsvc.AgentServiceName, winsvc.UpdaterServiceName} {
		exists, err := o.Services.Exists(name)
		if err != nil || !exists {
			continue
		}
		log.Printf("[deploy] Stopping service %s", name)
		if err := o.Services.Stop(name); err != nil {
			log.Printf("[deploy] Could not stop %s: %v", name, err)
		}
	}
}

func (o *Orchestrator) logDiagnostics() {
	log.Printf("[deploy] Host: %s", o.Host.Hostname)
	log.Printf("[deploy] OS: %s (%s)", o.Host.OSCaption, o.Host.Architecture)
	log.Printf("[deploy] Account key: %s", o.Config.MaskedAccountKey())
	log.Printf("[deploy] Organization key: %s", o.Config.OrganizationKey)
	log.Printf("[deploy] Mode: %s", o.Mode())
}

// maskedURL rebuilds the download URL with the account key masked, for error
// messages that end up on the operator's console.
func maskedURL(cfg config.Config) string {
	masked := cfg
	masked.AccountKey = cfg.MaskedAccountKey()
	return masked.DownloadURL()
}
