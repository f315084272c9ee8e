//go:build !windows

package regstore

import "testing"

func TestOpenReturnsUnsupportedStub(t *testing.T) {
	s := Open()
	if s == nil {
		t.Fatal("Open returned nil")
	}
	if _, err := s.KeyExists(); err == nil {
		t.Error("expected error from non-Windows stub")
	}
	if err := s.DeleteTree(); err == nil {
		t.Error("expected error from non-Windows stub")
	}
}
