package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/osiriscare/deploy/internal/deploy"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestDryRunRejectsPlaceholderKeys(t *testing.T) {
	err := execute(t, "--dry-run")
	var cfgErr *deploy.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *deploy.ConfigError, got %v", err)
	}
}

func TestDryRunRejectsBothModeFlags(t *testing.T) {
	err := execute(t, "--dry-run",
		"--account-key", "ABCDEFGH1234567890ABCDEFGH123456",
		"--organization-key", "Acme Clinics",
		"--reregister", "--reinstall")
	var cfgErr *deploy.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *deploy.ConfigError, got %v", err)
	}
}

func TestDryRunWithValidParameters(t *testing.T) {
	err := execute(t, "--dry-run",
		"--account-key", "ABCDEFGH1234567890ABCDEFGH123456",
		"--organization-key", "Acme Clinics")
	if err != nil {
		t.Fatalf("dry run with valid parameters should succeed: %v", err)
	}
}

func TestUnknownFlagIsRejected(t *testing.T) {
	if err := execute(t, "--no-such-flag"); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}
