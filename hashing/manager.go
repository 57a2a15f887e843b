package hashing

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Manager is a thread-safe driver registry that dispatches hashing
// operations to a default [Hasher] or to the driver that produced a hash.
//
// Typical use is a PBKDF2 default with bcrypt registered for legacy hashes:
//
//	m, _ := hashing.NewDefaultManager()
//	ok, _ := m.CheckWithDetect(password, stored)
//	if ok {
//	    if stale, _ := m.NeedsRehash(stored); stale {
//	        fresh, _ := m.Make(password)
//	        persist(userID, fresh)
//	    }
//	}
//
// Writes (RegisterDriver, SetDefaultDriver) take an exclusive lock; every
// other method takes a shared lock.
type Manager struct {
	mu      sync.RWMutex
	drivers map[DriverName]Hasher
	def     DriverName
}

// NewManager creates an empty Manager whose default is defaultDriver.
// The driver must be registered before Make or Check is called.
func NewManager(defaultDriver DriverName) *Manager {
	return &Manager{
		drivers: make(map[DriverName]Hasher),
		def:     defaultDriver,
	}
}

// NewDefaultManager returns a Manager with a [PBKDF2Hasher] (the default)
// and a [BcryptHasher], both using their default options.
func NewDefaultManager() (*Manager, error) {
	p, err := NewPBKDF2Hasher(DefaultPBKDF2Options())
	if err != nil {
		return nil, fmt.Errorf("hashing: failed to create default pbkdf2 hasher: %w", err)
	}
	b, err := NewBcryptHasher(DefaultBcryptOptions())
	if err != nil {
		return nil, fmt.Errorf("hashing: failed to create default bcrypt hasher: %w", err)
	}
	m := NewManager(DriverPBKDF2)
	_ = m.RegisterDriver(DriverPBKDF2, p)
	_ = m.RegisterDriver(DriverBcrypt, b)
	return m, nil
}

// RegisterDriver adds or replaces the hasher registered under name.
func (m *Manager) RegisterDriver(name DriverName, h Hasher) error {
	if name == "" {
		return ErrEmptyDriverName
	}
	if h == nil {
		return ErrNilHasher
	}
	m.mu.Lock()
	_, replaced := m.drivers[name]
	m.drivers[name] = h
	m.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"package":  "hashing",
		"function": "RegisterDriver",
		"driver":   string(name),
		"replaced": replaced,
	}).Debug("Registered hashing driver")
	return nil
}

// Driver returns the hasher registered under name.
func (m *Manager) Driver(name DriverName) (Hasher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.drivers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDriverNotFound, name)
	}
	return h, nil
}

// SetDefaultDriver changes the default. The driver must be registered.
func (m *Manager) SetDefaultDriver(name DriverName) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[name]; !ok {
		return fmt.Errorf("%w: %q is not registered", ErrDriverNotFound, name)
	}
	m.def = name
	return nil
}

// DefaultDriver returns the name of the default driver.
func (m *Manager) DefaultDriver() DriverName {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.def
}

// HasDriver reports whether name is registered.
func (m *Manager) HasDriver(name DriverName) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.drivers[name]
	return ok
}

// Make hashes password with the default driver.
func (m *Manager) Make(password string) (string, error) {
	h, err := m.resolveDefault()
	if err != nil {
		return "", err
	}
	return h.Make(password)
}

// Check verifies password against hash with the default driver.
func (m *Manager) Check(password, hash string) (bool, error) {
	h, err := m.resolveDefault()
	if err != nil {
		return false, err
	}
	return h.Check(password, hash)
}

// CheckWithDetect verifies password with whichever registered driver
// produced hash. An unrecognised hash is a mismatch, (false, nil), matching
// the PBKDF2 validation contract; a recognised but unregistered driver
// returns [ErrDriverNotFound].
func (m *Manager) CheckWithDetect(password, hash string) (bool, error) {
	name, ok := DetectDriver(hash)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"package":  "hashing",
			"function": "CheckWithDetect",
			"hash_len": len(hash),
		}).Debug("Unrecognised hash format treated as mismatch")
		return false, nil
	}
	h, err := m.Driver(name)
	if err != nil {
		return false, err
	}
	return h.Check(password, hash)
}

// NeedsRehash reports whether hash should be replaced by a fresh
// [Manager.Make] result: always when it came from a driver other than the
// default, otherwise when the default driver says its parameters are stale.
func (m *Manager) NeedsRehash(hash string) (bool, error) {
	detected, ok := DetectDriver(hash)
	if !ok {
		return false, ErrInvalidHash
	}
	if detected != m.DefaultDriver() {
		return true, nil
	}
	h, err := m.Driver(detected)
	if err != nil {
		return false, err
	}
	return h.NeedsRehash(hash)
}

// Info extracts metadata from hash using the driver that produced it.
func (m *Manager) Info(hash string) (HashInfo, error) {
	name, ok := DetectDriver(hash)
	if !ok {
		return HashInfo{}, ErrInvalidHash
	}
	h, err := m.Driver(name)
	if err != nil {
		return HashInfo{}, err
	}
	return h.Info(hash)
}

func (m *Manager) resolveDefault() (Hasher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.drivers[m.def]
	if !ok {
		return nil, fmt.Errorf("%w: default driver %q has not been registered",
			ErrDriverNotFound, m.def)
	}
	return h, nil
}
