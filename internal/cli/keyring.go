package cli

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "petdiary"
	keyringUser    = "access-key"
)

// ErrKeyNotFound is returned when no access key is stored in the keyring.
var ErrKeyNotFound = errors.New("access key not found in keyring")

// GetStoredKey reads the access key from the OS keyring.
func GetStoredKey() (string, error) {
	key, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("OS keyring is not available: %w", err)
	}
	return key, nil
}

// StoreKey saves the access key in the OS keyring.
func StoreKey(key string) error {
	if key == "" {
		return errors.New("access key cannot be empty")
	}
	if err := keyring.Set(keyringService, keyringUser, key); err != nil {
		return fmt.Errorf("failed to store access key in keyring: %w", err)
	}
	return nil
}

// DeleteStoredKey removes the access key from the OS keyring.
func DeleteStoredKey() error {
	err := keyring.Delete(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrKeyNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete access key from keyring: %w", err)
	}
	return nil
}
