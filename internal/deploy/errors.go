package deploy

import "fmt"

// The deployment procedure has five failure classes. Every one is fatal to
// the run; there is no retry anywhere. The CLI maps any of them to exit 1 and,
// for everything except a configuration error, appends a support contact line.

// ConfigError reports bad or missing credentials or flags. The operator must
// fix the inputs; no network or system action was attempted.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// DownloadError reports a failed installer fetch (network or filesystem).
// Transient; the operator may simply re-run.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download installer from %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// IntegrityError reports a signature validation failure on the downloaded
// installer. Possible corruption or tampering in transit; do not execute.
type IntegrityError struct {
	Path string
	Err  error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("installer %s failed signature verification: %v", e.Path, e.Err)
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// InstallTimeoutError reports that the installer child process did not exit
// within the configured bound and was forcibly terminated. Usually host-level
// interference (security tooling blocking execution).
type InstallTimeoutError struct {
	Timeout string
}

func (e *InstallTimeoutError) Error() string {
	return "installer did not complete within " + e.Timeout + " and was terminated"
}

// VerificationError reports that the post-install system state does not match
// expectations: the installer ran but the host is not in the expected end
// state.
type VerificationError struct {
	Check  string
	Detail string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("installation verification failed (%s): %s", e.Check, e.Detail)
}
