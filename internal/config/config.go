// Package config handles deployment tool configuration and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Placeholder sentinels compiled into the binary. Both must be replaced,
// either at build time or on the command line, before a deployment can run.
const (
	AccountKeyPlaceholder      = "__ACCOUNT_KEY__"
	OrganizationKeyPlaceholder = "__ORGANIZATION_KEY__"
)

// AccountKeyLength is the exact length of a valid account key.
const AccountKeyLength = 32

// maskSequence replaces everything after the first 8 characters of the
// account key in log output.
const maskSequence = "XXXXXXXXXXXXXXXXXXXXXXX"

// Defaults for the deployment procedure.
const (
	DefaultBaseURL        = "https://update.osiriscare.net/download"
	DefaultInstallerName  = "OsirisInstaller.exe"
	DefaultInstallTimeout = 30 * time.Second
)

// Config holds all deployment settings. It is constructed once in main,
// validated, and passed by value into every operation; nothing mutates it
// after Validate.
type Config struct {
	// Credentials
	AccountKey      string
	OrganizationKey string

	// Mode flags, mutually exclusive
	Reregister bool
	Reinstall  bool

	// Download settings
	BaseURL       string
	InstallerName string

	// Installer run bound
	InstallTimeout time.Duration
}

// New returns a Config populated with compiled-in defaults.
func New() Config {
	return Config{
		AccountKey:      AccountKeyPlaceholder,
		OrganizationKey: OrganizationKeyPlaceholder,
		BaseURL:         DefaultBaseURL,
		InstallerName:   DefaultInstallerName,
		InstallTimeout:  DefaultInstallTimeout,
	}
}

// Validate checks credentials and mode flags. It returns a descriptive error
// on the first violation; the caller must not attempt any network or system
// action after a validation failure.
func (c Config) Validate() error {
	if c.AccountKey == AccountKeyPlaceholder {
		return fmt.Errorf("account key has not been set (still the placeholder); pass --account-key")
	}
	if len(c.AccountKey) != AccountKeyLength {
		return fmt.Errorf("invalid account key: expected %d characters, got %d", AccountKeyLength, len(c.AccountKey))
	}
	if c.OrganizationKey == OrganizationKeyPlaceholder {
		return fmt.Errorf("organization key has not been set (still the placeholder); pass --organization-key")
	}
	if strings.TrimSpace(c.OrganizationKey) == "" {
		return fmt.Errorf("organization key must not be empty")
	}
	if c.Reregister && c.Reinstall {
		return fmt.Errorf("--reregister and --reinstall are mutually exclusive")
	}
	return nil
}

// DownloadURL returns the installer URL for this account.
func (c Config) DownloadURL() string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.BaseURL, "/"), c.AccountKey, c.InstallerName)
}

// MaskedAccountKey returns the account key with only the first 8 characters
// visible. Keys shorter than 8 characters are masked entirely.
func (c Config) MaskedAccountKey() string {
	return MaskKey(c.AccountKey)
}

// MaskKey masks a key for log output: first 8 characters preserved, the
// remainder replaced with a fixed sequence.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return maskSequence
	}
	return key[:8] + maskSequence
}

// DataDir returns the directory for tool-local state (deployment history).
func DataDir() string {
	base := os.Getenv("PROGRAMDATA")
	if base == "" {
		base = "C:\\ProgramData"
	}
	return filepath.Join(base, "OsirisCare")
}
