//go:build !darwin || ios

package chromestate

import "time"

func safeStoragePassword(_ string, _ string, _ time.Duration) (string, error) {
	return "", ErrUnsupportedPlatform
}
