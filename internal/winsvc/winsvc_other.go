//go:build !windows

package winsvc

import "fmt"

// unsupportedController is the stub for non-Windows platforms.
type unsupportedController struct{}

func openPlatform() Controller {
	return unsupportedController{}
}

func (unsupportedController) Exists(name string) (bool, error) {
	return false, fmt.Errorf("service control only supported on Windows")
}

func (unsupportedController) Status(name string) (Status, error) {
	return StatusUnknown, fmt.Errorf("service control only supported on Windows")
}

func (unsupportedController) Stop(name string) error {
	return fmt.Errorf("service control only supported on Windows")
}
