//go:build !windows

package signature

import "fmt"

// verifyPlatform has no Authenticode outside Windows.
func verifyPlatform(path string) error {
	return fmt.Errorf("signature verification only supported on Windows")
}
