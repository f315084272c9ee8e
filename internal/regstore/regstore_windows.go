//go:build windows

package regstore

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// windowsStore reads and deletes the agent key under HKLM.
type windowsStore struct {
	path string
}

func openPlatform() Store {
	return &windowsStore{path: AgentKeyPath}
}

func (s *windowsStore) KeyExists() (bool, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, s.path, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("open %s: %w", s.path, err)
	}
	k.Close()
	return true, nil
}

func (s *windowsStore) GetString(name string) (string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, s.path, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", ErrNotExist
		}
		return "", fmt.Errorf("open %s: %w", s.path, err)
	}
	defer k.Close()

	v, _, err := k.GetStringValue(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", ErrNotExist
		}
		return "", fmt.Errorf("read %s\\%s: %w", s.path, name, err)
	}
	return v, nil
}

func (s *windowsStore) GetInteger(name string) (uint64, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, s.path, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, ErrNotExist
		}
		return 0, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue(name)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, registry.ErrNotExist) {
		return 0, ErrNotExist
	}

	// Some installer versions write AgentId as REG_SZ.
	sv, _, serr := k.GetStringValue(name)
	if serr != nil {
		return 0, fmt.Errorf("read %s\\%s: %w", s.path, name, err)
	}
	var parsed uint64
	if _, perr := fmt.Sscanf(sv, "%d", &parsed); perr != nil {
		return 0, fmt.Errorf("value %s\\%s is not numeric: %q", s.path, name, sv)
	}
	return parsed, nil
}

func (s *windowsStore) DeleteTree() error {
	return deleteKeyRecursive(registry.LOCAL_MACHINE, s.path)
}

// deleteKeyRecursive removes a key and all of its subkeys. registry.DeleteKey
// only deletes empty keys, so descend first. A missing key is not an error.
func deleteKeyRecursive(root registry.Key, path string) error {
	k, err := registry.OpenKey(root, path, registry.ENUMERATE_SUB_KEYS|registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open %s for delete: %w", path, err)
	}

	names, err := k.ReadSubKeyNames(-1)
	k.Close()
	if err != nil {
		return fmt.Errorf("enumerate subkeys of %s: %w", path, err)
	}

	for _, name := range names {
		if err := deleteKeyRecursive(root, path+`\`+name); err != nil {
			return err
		}
	}

	if err := registry.DeleteKey(root, path); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}
