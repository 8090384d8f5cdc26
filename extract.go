package chromestate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrUnsupportedPlatform is returned on non-macOS hosts.
	ErrUnsupportedPlatform = errors.New("chromestate: only macOS is supported")
	// ErrStoreNotFound is returned when the Chrome cookie database is missing.
	ErrStoreNotFound = errors.New("chromestate: cookie store not found")
	// ErrNoCookies is returned when the store holds no rows for the domain.
	ErrNoCookies = errors.New("chromestate: no cookies found")
)

// envSafeStoragePassword bypasses the keychain for deterministic tooling/CI.
const envSafeStoragePassword = "CHROMESTATE_SAFE_STORAGE_PASSWORD"

const (
	defaultKeychainService = "Chrome Safe Storage"
	defaultKeychainAccount = "Chrome"
)

// Extract pulls the domain's cookies out of the Chrome store, decrypts them
// with the Safe Storage passphrase, and merges them into the storage-state
// file. Per-cookie decryption anomalies are recovered; only orchestration
// failures (keychain, missing store, empty result set, I/O) are returned.
func Extract(ctx context.Context, opts Options) (Result, error) {
	if strings.TrimSpace(opts.Domain) == "" {
		return Result{}, errors.New("chromestate: domain required")
	}
	if opts.Profile == "" {
		opts.Profile = defaultProfile
	}
	if opts.KeychainService == "" {
		opts.KeychainService = defaultKeychainService
	}
	if opts.KeychainAccount == "" {
		opts.KeychainAccount = defaultKeychainAccount
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	if opts.StoragePath == "" {
		p, err := defaultStoragePath()
		if err != nil {
			return Result{}, err
		}
		opts.StoragePath = p
	}

	password, err := resolvePassword(opts)
	if err != nil {
		return Result{}, err
	}
	key := deriveKey(password)

	variants := domainVariants(opts.Domain)

	dbPath := opts.StorePath
	if dbPath == "" {
		dbPath, err = chromeCookiesDBPath(opts.Profile)
		if err != nil {
			return Result{}, err
		}
	} else if !fileExists(dbPath) {
		return Result{}, fmt.Errorf("%w: %s", ErrStoreNotFound, dbPath)
	}

	snapshot, cleanup, err := openSnapshot(dbPath)
	if err != nil {
		return Result{}, err
	}
	defer cleanup()

	db, err := openCookieDB(ctx, snapshot)
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = db.Close() }()

	rows, err := readCookieRows(ctx, db, variants)
	if err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, fmt.Errorf("%w for domain: %s", ErrNoCookies, opts.Domain)
	}

	fresh := make([]StateCookie, 0, len(rows))
	for _, row := range rows {
		value := decryptCookieValue(row, key)
		if c, ok := stateCookieFromRow(row, value); ok {
			fresh = append(fresh, c)
		}
	}

	state := loadStorageState(opts.StoragePath)
	state = mergeCookies(state, fresh, variants)
	if err := saveStorageState(opts.StoragePath, state); err != nil {
		return Result{}, err
	}

	return Result{Cookies: fresh, Variants: variants, StoragePath: opts.StoragePath}, nil
}

func resolvePassword(opts Options) (string, error) {
	if override := strings.TrimSpace(os.Getenv(envSafeStoragePassword)); override != "" {
		return override, nil
	}
	return safeStoragePassword(opts.KeychainService, opts.KeychainAccount, opts.Timeout)
}

func defaultStoragePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(exe), "cookies", "storage.json"), nil
}
