// Package hostinfo collects the host facts reported in the deployment
// diagnostics banner: hostname, OS caption, and processor architecture.
//
// On Windows the OS caption comes from a WMI query of Win32_OperatingSystem.
// On other platforms a plain runtime description is used so the tool still
// produces a banner in dry runs and tests.
package hostinfo

import (
	"context"
	"os"
	"runtime"
	"strings"
)

// Info is the host diagnostic snapshot logged at startup.
type Info struct {
	Hostname     string
	OSCaption    string
	Architecture string // "64-bit" or "32-bit"
	Is64BitOS    bool
}

// Collect gathers host facts. It never fails: unavailable facts degrade to
// best-effort defaults so diagnostics logging cannot abort a deployment.
func Collect(ctx context.Context) Info {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	arch, is64 := DetectArchitecture(os.Getenv)

	caption, err := osCaption(ctx)
	if err != nil || caption == "" {
		caption = runtime.GOOS + "/" + runtime.GOARCH
	}

	return Info{
		Hostname:     hostname,
		OSCaption:    caption,
		Architecture: arch,
		Is64BitOS:    is64,
	}
}

// DetectArchitecture determines the OS architecture from the processor
// environment variables. PROCESSOR_ARCHITEW6432 is only set for 32-bit
// processes on a 64-bit OS, so it takes precedence over
// PROCESSOR_ARCHITECTURE. Outside Windows both are empty and the compiled
// GOARCH decides.
func DetectArchitecture(getenv func(string) string) (string, bool) {
	arch := getenv("PROCESSOR_ARCHITEW6432")
	if arch == "" {
		arch = getenv("PROCESSOR_ARCHITECTURE")
	}

	if arch == "" {
		if strings.HasSuffix(runtime.GOARCH, "64") {
			return "64-bit", true
		}
		return "32-bit", false
	}

	switch strings.ToUpper(arch) {
	case "AMD64", "ARM64", "IA64":
		return "64-bit", true
	default:
		return "32-bit", false
	}
}
