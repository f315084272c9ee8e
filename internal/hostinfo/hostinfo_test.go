package hostinfo

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

func TestDetectArchitecture(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		want   string
		want64 bool
	}{
		{
			name:   "native 64-bit process",
			env:    map[string]string{"PROCESSOR_ARCHITECTURE": "AMD64"},
			want:   "64-bit",
			want64: true,
		},
		{
			name:   "arm64",
			env:    map[string]string{"PROCESSOR_ARCHITECTURE": "ARM64"},
			want:   "64-bit",
			want64: true,
		},
		{
			name:   "32-bit process on 64-bit OS",
			env:    map[string]string{"PROCESSOR_ARCHITECTURE": "x86", "PROCESSOR_ARCHITEW6432": "AMD64"},
			want:   "64-bit",
			want64: true,
		},
		{
			name:   "32-bit OS",
			env:    map[string]string{"PROCESSOR_ARCHITECTURE": "x86"},
			want:   "32-bit",
			want64: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }
			arch, is64 := DetectArchitecture(getenv)
			if arch != tt.want || is64 != tt.want64 {
				t.Errorf("got (%q, %v), want (%q, %v)", arch, is64, tt.want, tt.want64)
			}
		})
	}
}

func TestDetectArchitectureFallsBackToGOARCH(t *testing.T) {
	arch, is64 := DetectArchitecture(func(string) string { return "" })
	want64 := strings.HasSuffix(runtime.GOARCH, "64")
	if is64 != want64 {
		t.Errorf("fallback bitness %v does not match GOARCH %s", is64, runtime.GOARCH)
	}
	if (arch == "64-bit") != want64 {
		t.Errorf("label %q inconsistent with bitness %v", arch, is64)
	}
}

func TestCollectNeverFails(t *testing.T) {
	info := Collect(context.Background())
	if info.Hostname == "" {
		t.Error("hostname should never be empty")
	}
	if info.OSCaption == "" {
		t.Error("OS caption should degrade to a runtime description, not empty")
	}
	if info.Architecture != "64-bit" && info.Architecture != "32-bit" {
		t.Errorf("unexpected architecture label %q", info.Architecture)
	}
}
