//go:build windows

package winsvc

import (
	"fmt"
	"time"

	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"
)

// stopWait bounds how long Stop waits for a service to leave the running
// state after the stop control is accepted.
const stopWait = 30 * time.Second

type scmController struct{}

func openPlatform() Controller {
	return scmController{}
}

func (scmController) Exists(name string) (bool, error) {
	m, err := mgr.Connect()
	if err != nil {
		return false, fmt.Errorf("connect to service manager: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		// OpenService fails for unregistered services; the SCM gives no
		// portable way to distinguish "missing" from other failures here.
		return false, nil
	}
	s.Close()
	return true, nil
}

func (scmController) Status(name string) (Status, error) {
	m, err := mgr.Connect()
	if err != nil {
		return StatusUnknown, fmt.Errorf("connect to service manager: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return StatusUnknown, fmt.Errorf("open service %s: %w", name, err)
	}
	defer s.Close()

	st, err := s.Query()
	if err != nil {
		return StatusUnknown, fmt.Errorf("query service %s: %w", name, err)
	}
	return fromSCMState(st.State), nil
}

func (scmController) Stop(name string) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("connect to service manager: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return fmt.Errorf("open service %s: %w", name, err)
	}
	defer s.Close()

	st, err := s.Query()
	if err != nil {
		return fmt.Errorf("query service %s: %w", name, err)
	}
	if st.State == svc.Stopped {
		return nil
	}

	if _, err := s.Control(svc.Stop); err != nil {
		return fmt.Errorf("stop service %s: %w", name, err)
	}

	deadline := time.Now().Add(stopWait)
	for time.Now().Before(deadline) {
		st, err = s.Query()
		if err != nil {
			return fmt.Errorf("query service %s: %w", name, err)
		}
		if st.State == svc.Stopped {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("service %s did not stop within %v", name, stopWait)
}

func fromSCMState(state svc.State) Status {
	switch state {
	case svc.Running:
		return StatusRunning
	case svc.Stopped:
		return StatusStopped
	case svc.StartPending, svc.StopPending, svc.ContinuePending, svc.PausePending:
		return StatusPending
	default:
		return StatusUnknown
	}
}
