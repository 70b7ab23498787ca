package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// DefaultKeyringService is the service name the credential is filed under
// in the OS keyring.
const DefaultKeyringService = "healthplanner"

// ErrKeyringUnavailable is returned when the OS keyring cannot be reached.
var ErrKeyringUnavailable = errors.New("OS keyring is not available")

// KeyringStore keeps the credential in the OS keyring.
type KeyringStore struct {
	service string
}

func NewKeyringStore(service string) *KeyringStore {
	return &KeyringStore{service: service}
}

// Probe checks that the keyring answers at all. A missing entry counts as
// available.
func (s *KeyringStore) Probe() error {
	_, err := keyring.Get(s.service, entryName)
	if err == nil || errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
}

func (s *KeyringStore) Get(_ context.Context) (string, bool, error) {
	v, err := keyring.Get(s.service, entryName)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	if v == "" {
		return "", false, nil
	}
	return v, true, nil
}

func (s *KeyringStore) Set(_ context.Context, credential string) error {
	if err := keyring.Set(s.service, entryName, credential); err != nil {
		return fmt.Errorf("failed to store credential in keyring: %w", err)
	}
	return nil
}

func (s *KeyringStore) Clear(_ context.Context) error {
	err := keyring.Delete(s.service, entryName)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete credential from keyring: %w", err)
	}
	return nil
}
