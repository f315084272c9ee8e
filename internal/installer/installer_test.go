package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// writeScript drops an executable shell script that ignores the silent-install
// arguments passed by Run.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures are not runnable on windows")
	}
	path := filepath.Join(t.TempDir(), "installer.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCompletes(t *testing.T) {
	path := writeScript(t, "exit 0")
	r := Runner{Timeout: 5 * time.Second}
	if err := r.Run(context.Background(), path, "acct", "org"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// A non-zero exit code is logged but not treated as a failure; the state
// verification pass afterwards is the judge of success.
func TestRunIgnoresExitCode(t *testing.T) {
	path := writeScript(t, "exit 3")
	r := Runner{Timeout: 5 * time.Second}
	if err := r.Run(context.Background(), path, "acct", "org"); err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}
}

func TestRunKillsOnTimeout(t *testing.T) {
	path := writeScript(t, "sleep 30")
	r := Runner{Timeout: 200 * time.Millisecond}

	start := time.Now()
	err := r.Run(context.Background(), path, "acct", "org")
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if elapsed > 5*time.Second {
		t.Errorf("child was not killed promptly: run took %v", elapsed)
	}
}

func TestRunMissingBinary(t *testing.T) {
	r := Runner{Timeout: time.Second}
	err := r.Run(context.Background(), filepath.Join(t.TempDir(), "missing.exe"), "acct", "org")
	if err == nil {
		t.Fatal("expected launch error for a missing binary")
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("launch failure must not be reported as a timeout")
	}
}
