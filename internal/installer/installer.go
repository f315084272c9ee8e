// Package installer launches the verified installer binary as a bounded
// child process.
package installer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"time"
)

// ErrTimeout is returned when the child process exceeds the run bound and is
// forcibly terminated.
var ErrTimeout = errors.New("installer did not exit within the timeout")

// Runner executes the installer in silent mode.
type Runner struct {
	Timeout time.Duration
}

// Run launches path with the credentials as silent-install arguments and
// blocks until the child exits or the timeout elapses. On timeout the child
// is killed and ErrTimeout is returned.
//
// The child's exit code is deliberately not inspected: installation success
// is judged by the observed system state afterwards, not by the installer's
// self-reported status.
func (r Runner) Run(ctx context.Context, path, accountKey, organizationKey string) error {
	runCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.Command(path,
		"/ACCT_KEY="+accountKey,
		"/ORG_KEY="+organizationKey,
		"/S",
	)
	hideWindow(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch installer: %w", err)
	}

	log.Printf("[install] Installer started (PID %d, timeout %v)", cmd.Process.Pid, r.Timeout)

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-runCtx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ErrTimeout
	case err := <-done:
		if err != nil {
			// Non-zero exit is not a failure here; state verification decides.
			log.Printf("[install] Installer exited with: %v", err)
		} else {
			log.Printf("[install] Installer exited cleanly")
		}
		return nil
	}
}
