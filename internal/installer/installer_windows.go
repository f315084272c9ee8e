//go:build windows

package installer

import (
	"os/exec"
	"syscall"
)

// hideWindow suppresses the console window the silent installer would
// otherwise flash on interactive desktops.
func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
