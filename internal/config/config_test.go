package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := New()
	cfg.AccountKey = "ABCDEFGH1234567890ABCDEFGH123456"
	cfg.OrganizationKey = "Acme Clinics"
	return cfg
}

func TestValidateAccepts(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateAccountKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"placeholder", AccountKeyPlaceholder},
		{"empty", ""},
		{"too short", "ABCDEFGH"},
		{"31 chars", strings.Repeat("A", 31)},
		{"33 chars", strings.Repeat("A", 33)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.AccountKey = tt.key
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected error for account key %q", tt.key)
			}
		})
	}
}

func TestValidateOrganizationKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"placeholder", OrganizationKeyPlaceholder},
		{"empty", ""},
		{"whitespace only", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.OrganizationKey = tt.key
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected error for organization key %q", tt.key)
			}
		})
	}
}

func TestValidateMutuallyExclusiveFlags(t *testing.T) {
	cfg := validConfig()
	cfg.Reregister = true
	cfg.Reinstall = true
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when both reregister and reinstall are set")
	}

	cfg.Reinstall = false
	if err := cfg.Validate(); err != nil {
		t.Errorf("reregister alone should validate: %v", err)
	}

	cfg.Reregister = false
	cfg.Reinstall = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("reinstall alone should validate: %v", err)
	}
}

func TestMaskKey(t *testing.T) {
	got := MaskKey("ABCDEFGH1234567890ABCDEFGH123456")
	want := "ABCDEFGHXXXXXXXXXXXXXXXXXXXXXXX"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMaskKeyShort(t *testing.T) {
	// Keys at or below the visible prefix length are masked entirely.
	for _, key := range []string{"", "ABC", "ABCDEFGH"} {
		got := MaskKey(key)
		if strings.ContainsAny(got, "ABC") {
			t.Errorf("short key %q leaked into mask %q", key, got)
		}
	}
}

func TestDownloadURL(t *testing.T) {
	cfg := validConfig()
	want := "https://update.osiriscare.net/download/ABCDEFGH1234567890ABCDEFGH123456/OsirisInstaller.exe"
	if got := cfg.DownloadURL(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDownloadURLTrailingSlash(t *testing.T) {
	cfg := validConfig()
	cfg.BaseURL = "https://update.osiriscare.net/download/"
	want := "https://update.osiriscare.net/download/ABCDEFGH1234567890ABCDEFGH123456/OsirisInstaller.exe"
	if got := cfg.DownloadURL(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
