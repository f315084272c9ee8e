//go:build !windows

package regstore

import "fmt"

// unsupportedStore is the stub for non-Windows platforms.
type unsupportedStore struct{}

func openPlatform() Store {
	return unsupportedStore{}
}

func (unsupportedStore) KeyExists() (bool, error) {
	return false, fmt.Errorf("registry store only supported on Windows")
}

func (unsupportedStore) GetString(name string) (string, error) {
	return "", fmt.Errorf("registry store only supported on Windows")
}

func (unsupportedStore) GetInteger(name string) (uint64, error) {
	return 0, fmt.Errorf("registry store only supported on Windows")
}

func (unsupportedStore) DeleteTree() error {
	return fmt.Errorf("registry store only supported on Windows")
}
