// Package auth provides a high-level API for persisting and retrieving provider credentials from the system keyring.
package auth

import (
	"github.com/zalando/go-keyring"
)

const service = "cinecli"

// Credential identifies a secret slot in the system keyring.
type Credential string

const (
	TMDBKey   Credential = "tmdb-api-key"
	TorboxKey Credential = "torbox-api-key"
)

// Set persists a credential value to the system keyring.
func Set(c Credential, value string) error {
	return keyring.Set(service, string(c), value)
}

// Get retrieves a credential value from the system keyring.
// Returns an empty string without error when the credential is not stored.
func Get(c Credential) (string, error) {
	v, err := keyring.Get(service, string(c))
	if err == keyring.ErrNotFound {
		return "", nil
	}
	return v, err
}

// Delete removes a credential from the system keyring.
func Delete(c Credential) error {
	err := keyring.Delete(service, string(c))
	if err == keyring.ErrNotFound {
		return nil
	}
	return err
}
