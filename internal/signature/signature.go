// Package signature validates the digital signature of a downloaded
// installer before it is executed.
//
// On Windows the Authenticode trust chain is built and checked through
// WinVerifyTrust. A file with no valid signing certificate, or one whose
// chain cannot be constructed, signals possible corruption or tampering in
// transit and must never be run.
package signature

import (
	"fmt"
	"os"
)

// Verify checks the signature of the file at path. A nil return means the
// file carries a signature that chains to a trusted root.
func Verify(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("installer not found: %w", err)
	}
	return verifyPlatform(path)
}
