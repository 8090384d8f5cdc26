package chromestate

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver (pure Go).
)

// defaultProfile is Chrome's initial profile directory name.
const defaultProfile = "Default"

// chromeCookiesDBPath resolves the cookie database inside a Chrome profile.
// Newer Chrome keeps it under Network/, older layouts at the profile root.
func chromeCookiesDBPath(profile string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	profileDir := filepath.Join(home, "Library", "Application Support", "Google", "Chrome", profile)
	candidates := []string{
		filepath.Join(profileDir, "Network", "Cookies"),
		filepath.Join(profileDir, "Cookies"),
	}
	for _, p := range candidates {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrStoreNotFound, filepath.Join(profileDir, "Cookies"))
}

// openSnapshot copies the cookie database (plus WAL sidecars, if any) into a
// temp directory so a running Chrome cannot hold the opened copy locked. The
// returned cleanup removes the whole directory and must run on every path.
func openSnapshot(dbPath string) (snapshotPath string, cleanup func(), err error) {
	dir, err := os.MkdirTemp("", "chromestate-")
	if err != nil {
		return "", nil, err
	}
	cleanup = func() { _ = os.RemoveAll(dir) }

	target := filepath.Join(dir, "Cookies")
	if err := copyFile(dbPath, target); err != nil {
		cleanup()
		return "", nil, err
	}

	// If WAL mode is enabled, recent writes may live in sidecars.
	_ = copyFileIfExists(dbPath+"-wal", target+"-wal")
	_ = copyFileIfExists(dbPath+"-shm", target+"-shm")

	return target, cleanup, nil
}

func openCookieDB(ctx context.Context, snapshotPath string) (*sql.DB, error) {
	dsn := "file:" + filepath.ToSlash(snapshotPath) + "?mode=ro"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// readCookieRows selects every cookie owned by one of the host_key variants.
// Text columns are scanned as raw bytes and decoded lossily; legacy stores
// can hold non-UTF-8 data.
func readCookieRows(ctx context.Context, db *sql.DB, variants []string) ([]CookieRow, error) {
	clauses := make([]string, len(variants))
	args := make([]any, len(variants))
	for i, v := range variants {
		clauses[i] = "host_key = ?"
		args[i] = v
	}

	query := strings.Join([]string{
		`SELECT name, value, host_key, path, encrypted_value, expires_utc, is_secure, is_httponly, samesite`,
		`FROM cookies`,
		`WHERE (` + strings.Join(clauses, " OR ") + `)`,
	}, " ")

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []CookieRow
	for rows.Next() {
		var name, value, hostKey, path, encrypted []byte
		var expires, secure, httpOnly, sameSite sql.NullInt64

		if err := rows.Scan(&name, &value, &hostKey, &path, &encrypted, &expires, &secure, &httpOnly, &sameSite); err != nil {
			return nil, err
		}

		out = append(out, CookieRow{
			Name:           decodeLossy(name),
			Value:          decodeLossy(value),
			HostKey:        decodeLossy(hostKey),
			Path:           decodeLossy(path),
			EncryptedValue: encrypted,
			ExpiresUTC:     expires.Int64,
			IsSecure:       secure.Valid && secure.Int64 == 1,
			IsHTTPOnly:     httpOnly.Valid && httpOnly.Int64 == 1,
			SameSite:       sameSite.Int64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
