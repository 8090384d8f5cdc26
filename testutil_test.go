package chromestate

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestSQLite(t *testing.T, path string) *sql.DB {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(path)+"?mode=rwc")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createCookiesTable(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`CREATE TABLE cookies(host_key TEXT, name TEXT, path TEXT, value TEXT, encrypted_value BLOB, expires_utc INTEGER, is_secure INTEGER, is_httponly INTEGER, samesite INTEGER)`)
	if err != nil {
		t.Fatal(err)
	}
}

func insertCookieRow(t *testing.T, db *sql.DB, row CookieRow) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO cookies(host_key,name,path,value,encrypted_value,expires_utc,is_secure,is_httponly,samesite) VALUES(?,?,?,?,?,?,?,?,?)`,
		row.HostKey, row.Name, row.Path, row.Value, row.EncryptedValue,
		row.ExpiresUTC, boolToInt(row.IsSecure), boolToInt(row.IsHTTPOnly), row.SameSite,
	)
	if err != nil {
		t.Fatal(err)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func pkcs7Pad(t *testing.T, b []byte) []byte {
	t.Helper()
	paddingLen := aes.BlockSize - (len(b) % aes.BlockSize)
	if paddingLen == 0 {
		paddingLen = aes.BlockSize
	}
	out := make([]byte, 0, len(b)+paddingLen)
	out = append(out, b...)
	for i := 0; i < paddingLen; i++ {
		out = append(out, byte(paddingLen))
	}
	return out
}

// encryptCookieValueForTest builds a v10/v11-style encrypted_value column:
// marker, then AES-CBC over the PKCS#7-padded plaintext.
func encryptCookieValueForTest(t *testing.T, prefix string, key []byte, plaintext []byte) []byte {
	t.Helper()
	return append([]byte(prefix), encryptRawBlocksForTest(t, key, pkcs7Pad(t, plaintext))...)
}

// encryptRawBlocksForTest encrypts full blocks without adding padding, for
// malformed-padding fixtures.
func encryptRawBlocksForTest(t *testing.T, key []byte, padded []byte) []byte {
	t.Helper()
	if len(padded)%aes.BlockSize != 0 {
		t.Fatalf("plaintext not block aligned: %d", len(padded))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, []byte(safeStorageIV)).CryptBlocks(ciphertext, padded)
	return ciphertext
}

// hashPrefixed prepends SHA-256(hostKey) the way Chrome 130+ does.
func hashPrefixed(t *testing.T, hostKey string, value string) []byte {
	t.Helper()
	sum := sha256.Sum256([]byte(hostKey))
	return append(sum[:], []byte(value)...)
}
