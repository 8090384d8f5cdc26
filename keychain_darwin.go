//go:build darwin && !ios

package chromestate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zalando/go-keyring"
)

// safeStoragePassword reads the Safe Storage passphrase from the macOS
// keychain. The keyring library is tried first; a `security` subprocess is
// the fallback, since it prompts interactively where the library cannot.
func safeStoragePassword(service string, account string, timeout time.Duration) (string, error) {
	if pw, err := keyring.Get(service, account); err == nil && strings.TrimSpace(pw) != "" {
		return strings.TrimSpace(pw), nil
	}

	password, err := readKeychainPassword(timeout, service, account)
	if err != nil {
		return "", fmt.Errorf("chromestate: keychain read failed (%s): %w", service, err)
	}
	if password == "" {
		return "", fmt.Errorf("chromestate: keychain returned an empty %s password", service)
	}
	return password, nil
}

func readKeychainPassword(timeout time.Duration, service string, account string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	stdout, stderr, err := execCapture(ctx, "security", []string{
		"find-generic-password",
		"-w",
		"-a", account,
		"-s", service,
	})
	if err != nil {
		if stderr != "" {
			return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr))
		}
		return "", err
	}
	return strings.TrimSpace(stdout), nil
}
