package keystore

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "stridewell"

// KeyringStore keeps values in the OS keyring (Keychain, Secret Service,
// Windows Credential Manager). Each key becomes a keyring "user" entry
// under the stridewell service.
type KeyringStore struct{}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (s *KeyringStore) Get(key string) (string, error) {
	v, err := keyring.Get(keyringService, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("keyring get %s: %w", key, err)
	}
	return v, nil
}

func (s *KeyringStore) Set(key, value string) error {
	if err := keyring.Set(keyringService, key, value); err != nil {
		return fmt.Errorf("keyring set %s: %w", key, err)
	}
	return nil
}

func (s *KeyringStore) Delete(key string) error {
	if err := keyring.Delete(keyringService, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("keyring delete %s: %w", key, err)
	}
	return nil
}

// probe checks keyring availability. ErrNotFound means the keyring works
// and simply has no such entry.
func (s *KeyringStore) probe() error {
	_, err := keyring.Get(keyringService, "probe-availability")
	if err == nil || errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
