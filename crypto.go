package chromestate

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1" //nolint:gosec // Chrome PBKDF2 uses SHA1 ("saltysalt", sha1) for cookie encryption.
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Chrome "Safe Storage" protocol parameters. Fixed by Chrome, not tunable.
const (
	safeStorageSalt       = "saltysalt"
	safeStorageIV         = "                " // 16 spaces
	safeStorageIterations = 1003
	safeStorageKeyLen     = 16
)

// deriveKey turns the keychain passphrase into the AES-CBC cookie key.
func deriveKey(password string) []byte {
	return pbkdf2.Key([]byte(password), []byte(safeStorageSalt), safeStorageIterations, safeStorageKeyLen, sha1.New)
}

// decryptCookieValue returns the plaintext value of a cookie row.
//
// Plaintext rows pass through untouched. Encrypted rows carry a "v10" or
// "v11" marker; anything else is a legacy unversioned value and is returned
// as-is. Decryption anomalies (bad padding, hash mismatch) never fail the
// row: the best-effort plaintext is returned instead.
func decryptCookieValue(row CookieRow, key []byte) string {
	if row.Value != "" {
		return row.Value
	}
	if len(row.EncryptedValue) == 0 {
		return ""
	}

	var prefix string
	if len(row.EncryptedValue) >= 3 {
		prefix = string(row.EncryptedValue[:3])
	}
	if prefix != "v10" && prefix != "v11" {
		return decodeLossy(row.EncryptedValue)
	}

	ciphertext := row.EncryptedValue[3:]
	block, err := aes.NewCipher(key)
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return decodeLossy(ciphertext)
	}

	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, []byte(safeStorageIV)).CryptBlocks(plain, ciphertext)

	unpadded, err := stripPKCS7(plain)
	if err != nil {
		unpadded = plain
	}

	// Chrome 130+ prepends SHA-256(host_key) to the plaintext
	// (https://crrev.com/c/5792044). Older payloads have no prefix, so probe
	// by comparing; on mismatch the whole plaintext is the value.
	if len(unpadded) >= 32 {
		sum := sha256.Sum256([]byte(row.HostKey))
		if bytes.Equal(unpadded[:32], sum[:]) {
			return decodeLossy(unpadded[32:])
		}
	}
	return decodeLossy(unpadded)
}

func stripPKCS7(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return b, nil
	}
	paddingLen := int(b[len(b)-1])
	if paddingLen <= 0 || paddingLen > aes.BlockSize || paddingLen > len(b) {
		return nil, fmt.Errorf("invalid padding length: %d", paddingLen)
	}
	for _, p := range b[len(b)-paddingLen:] {
		if int(p) != paddingLen {
			return nil, errors.New("invalid padding bytes")
		}
	}
	return b[:len(b)-paddingLen], nil
}

// decodeLossy decodes b as UTF-8, dropping invalid byte sequences. Legacy
// cookie stores can hold non-UTF-8 text; a mangled value beats a failed run.
func decodeLossy(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}
