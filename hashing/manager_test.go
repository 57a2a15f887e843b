package hashing_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hasbyte1/go-crypto-utils/hashing"
)

// newTestManager returns a Manager with both drivers registered using fast
// options. It accepts testing.TB so benchmarks can share it.
func newTestManager(tb testing.TB) *hashing.Manager {
	tb.Helper()
	m := hashing.NewManager(hashing.DriverPBKDF2)
	p, err := hashing.NewPBKDF2Hasher(fastPBKDF2Opts())
	require.NoError(tb, err)
	b, err := hashing.NewBcryptHasher(hashing.BcryptOptions{Cost: bcrypt.MinCost})
	require.NoError(tb, err)
	require.NoError(tb, m.RegisterDriver(hashing.DriverPBKDF2, p))
	require.NoError(tb, m.RegisterDriver(hashing.DriverBcrypt, b))
	return m
}

// ──────────────────────────────────────────────────────────────────────────────
// Registry
// ──────────────────────────────────────────────────────────────────────────────

func TestNewDefaultManager(t *testing.T) {
	m, err := hashing.NewDefaultManager()
	require.NoError(t, err)
	assert.Equal(t, hashing.DriverPBKDF2, m.DefaultDriver())
	assert.True(t, m.HasDriver(hashing.DriverPBKDF2))
	assert.True(t, m.HasDriver(hashing.DriverBcrypt))
	assert.False(t, m.HasDriver("argon2id"))
}

func TestManager_RegisterDriver_Errors(t *testing.T) {
	m := hashing.NewManager(hashing.DriverPBKDF2)
	h, _ := hashing.NewPBKDF2Hasher(fastPBKDF2Opts())
	assert.ErrorIs(t, m.RegisterDriver("", h), hashing.ErrEmptyDriverName)
	assert.ErrorIs(t, m.RegisterDriver("custom", nil), hashing.ErrNilHasher)
}

func TestManager_RegisterDriver_ReplaceExisting(t *testing.T) {
	m := newTestManager(t)
	newH, _ := hashing.NewBcryptHasher(hashing.BcryptOptions{Cost: bcrypt.MinCost + 1})
	require.NoError(t, m.RegisterDriver(hashing.DriverBcrypt, newH))
	got, err := m.Driver(hashing.DriverBcrypt)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, got.(*hashing.BcryptHasher).Cost())
}

func TestManager_SetDefaultDriver(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.SetDefaultDriver(hashing.DriverBcrypt))
	assert.Equal(t, hashing.DriverBcrypt, m.DefaultDriver())

	err := m.SetDefaultDriver("not-registered")
	assert.ErrorIs(t, err, hashing.ErrDriverNotFound)
	assert.Equal(t, hashing.DriverBcrypt, m.DefaultDriver())
}

func TestManager_Driver_NotFound(t *testing.T) {
	m := hashing.NewManager(hashing.DriverPBKDF2)
	_, err := m.Driver(hashing.DriverPBKDF2)
	assert.ErrorIs(t, err, hashing.ErrDriverNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Make / Check
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_MakeCheck(t *testing.T) {
	m := newTestManager(t)
	hash, err := m.Make("secret")
	require.NoError(t, err)

	driver, ok := hashing.DetectDriver(hash)
	require.True(t, ok)
	assert.Equal(t, hashing.DriverPBKDF2, driver)

	ok, err = m.Check("secret", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Check("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_NoDefaultDriver(t *testing.T) {
	m := hashing.NewManager(hashing.DriverPBKDF2)
	_, err := m.Make("pw")
	assert.ErrorIs(t, err, hashing.ErrDriverNotFound)
	_, err = m.Check("pw", "hash")
	assert.ErrorIs(t, err, hashing.ErrDriverNotFound)
}

func TestManager_CheckWithDetect(t *testing.T) {
	m := newTestManager(t)
	bc, _ := m.Driver(hashing.DriverBcrypt)
	legacy, err := bc.Make("pw")
	require.NoError(t, err)

	ok, err := m.CheckWithDetect("pw", legacy)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.CheckWithDetect("pw", "not-a-hash")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_CheckWithDetect_UnregisteredDriver(t *testing.T) {
	m := hashing.NewManager(hashing.DriverPBKDF2)
	p, _ := hashing.NewPBKDF2Hasher(fastPBKDF2Opts())
	require.NoError(t, m.RegisterDriver(hashing.DriverPBKDF2, p))

	_, err := m.CheckWithDetect("pw", "$2a$04$abcdefghijklmnopqrstuuabcdefghijklmnopqrstuvwxyzABCDE")
	assert.ErrorIs(t, err, hashing.ErrDriverNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// NeedsRehash / Info
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_NeedsRehash(t *testing.T) {
	m := newTestManager(t)

	fresh, _ := m.Make("pw")
	needs, err := m.NeedsRehash(fresh)
	require.NoError(t, err)
	assert.False(t, needs)

	bc, _ := m.Driver(hashing.DriverBcrypt)
	legacy, _ := bc.Make("pw")
	needs, err = m.NeedsRehash(legacy)
	require.NoError(t, err)
	assert.True(t, needs)

	_, err = m.NeedsRehash("garbage")
	assert.ErrorIs(t, err, hashing.ErrInvalidHash)
}

func TestManager_Info(t *testing.T) {
	m := newTestManager(t)
	info, err := m.Info(sampleHash)
	require.NoError(t, err)
	assert.Equal(t, hashing.DriverPBKDF2, info.Driver)
	assert.Equal(t, 1000, info.Params["iterations"])

	bc, _ := m.Driver(hashing.DriverBcrypt)
	legacy, _ := bc.Make("pw")
	info, err = m.Info(legacy)
	require.NoError(t, err)
	assert.Equal(t, hashing.DriverBcrypt, info.Driver)
	assert.Equal(t, bcrypt.MinCost, info.Params["cost"])

	_, err = m.Info("garbage")
	assert.ErrorIs(t, err, hashing.ErrInvalidHash)
}

// TestManager_Migration_BcryptToPBKDF2 walks a user through login-time
// migration: the legacy hash verifies, is flagged stale, and its
// replacement is not.
func TestManager_Migration_BcryptToPBKDF2(t *testing.T) {
	m := newTestManager(t)
	bc, _ := m.Driver(hashing.DriverBcrypt)
	legacy, err := bc.Make("user-password")
	require.NoError(t, err)

	ok, err := m.CheckWithDetect("user-password", legacy)
	require.NoError(t, err)
	require.True(t, ok)

	needs, err := m.NeedsRehash(legacy)
	require.NoError(t, err)
	require.True(t, needs)

	upgraded, err := m.Make("user-password")
	require.NoError(t, err)
	needs, err = m.NeedsRehash(upgraded)
	require.NoError(t, err)
	assert.False(t, needs)

	ok, err = m.CheckWithDetect("user-password", upgraded)
	require.NoError(t, err)
	assert.True(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrency
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_ConcurrentMakeCheck(t *testing.T) {
	m := newTestManager(t)
	const goroutines = 20
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := m.Make("concurrent-pw")
			if err != nil {
				errs <- err
				return
			}
			ok, err := m.CheckWithDetect("concurrent-pw", hash)
			if err != nil {
				errs <- err
				return
			}
			if !ok {
				errs <- errors.New("Check returned false for correct password")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestManager_ConcurrentRegisterAndRead(t *testing.T) {
	m := newTestManager(t)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			h, _ := hashing.NewPBKDF2Hasher(fastPBKDF2Opts())
			_ = m.RegisterDriver(hashing.DriverPBKDF2, h)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			_, _ = m.Make("pw")
		}
	}()
	wg.Wait()
}
