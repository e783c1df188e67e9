package keystore

import (
	"errors"
	"log"

	"github.com/avoronkov/stridewell/internal/config"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("keystore: key not found")

// Store is a string key-value store for small persistent values
// (streak counters, last-prompt dates, per-day accumulators).
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// New selects a backend by cfg.KeystoreMode. In auto mode the OS keyring
// is probed first and the file backend is used when it is unavailable.
func New(cfg *config.Config) Store {
	switch cfg.KeystoreMode {
	case config.KeystoreModeMemory:
		return NewMemoryStore()
	case config.KeystoreModeFile:
		return NewFileStore(cfg.KeystoreFile)
	case config.KeystoreModeKeyring:
		return NewKeyringStore()
	case config.KeystoreModeAuto:
		kr := NewKeyringStore()
		if err := kr.probe(); err != nil {
			log.Printf("WARN keystore: keyring unavailable (%v), fallback to file %s", err, cfg.KeystoreFile)
			return NewFileStore(cfg.KeystoreFile)
		}
		return kr
	default:
		log.Printf("WARN keystore: unknown mode %q, fallback to memory", cfg.KeystoreMode)
		return NewMemoryStore()
	}
}
