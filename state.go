package chromestate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Chrome stores expiry as microseconds since 1601-01-01 UTC; this is the
// offset to the Unix epoch in seconds.
const windowsToUnixEpochSeconds = 11644473600

// StorageState is the Playwright storage-state document. Only cookies are
// managed here; origins pass through untouched.
type StorageState struct {
	Cookies []StateCookie     `json:"cookies"`
	Origins []json.RawMessage `json:"origins"`
}

// loadStorageState reads an existing storage-state document. Missing or
// malformed files start a fresh state rather than failing the run.
func loadStorageState(path string) StorageState {
	empty := StorageState{Cookies: []StateCookie{}, Origins: []json.RawMessage{}}

	data, err := os.ReadFile(path)
	if err != nil {
		return empty
	}
	var state StorageState
	if err := json.Unmarshal(data, &state); err != nil {
		return empty
	}
	if state.Cookies == nil {
		state.Cookies = []StateCookie{}
	}
	if state.Origins == nil {
		state.Origins = []json.RawMessage{}
	}
	return state
}

// saveStorageState overwrites the storage file with indented JSON, creating
// the parent directory if needed.
func saveStorageState(path string, state StorageState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// stateCookieFromRow converts a decrypted store row into the Playwright
// storage-state shape. Rows with an empty value are skipped.
func stateCookieFromRow(row CookieRow, value string) (StateCookie, bool) {
	if value == "" {
		return StateCookie{}, false
	}

	// __Host- cookies are host-only and must not carry a leading dot;
	// everything else gets the dotted form.
	domain := row.HostKey
	if strings.HasPrefix(row.Name, "__Host-") {
		domain = strings.TrimLeft(domain, ".")
	} else if !strings.HasPrefix(domain, ".") {
		domain = "." + domain
	}

	path := row.Path
	if path == "" {
		path = "/"
	}

	c := StateCookie{
		Name:     row.Name,
		Value:    value,
		Domain:   domain,
		Path:     path,
		HTTPOnly: row.IsHTTPOnly,
		Secure:   row.IsSecure,
		SameSite: string(sameSiteFromInt(row.SameSite)),
	}
	if row.ExpiresUTC > 0 {
		expires := row.ExpiresUTC/1_000_000 - windowsToUnixEpochSeconds
		c.Expires = &expires
	}
	return c, true
}

func sameSiteFromInt(v int64) SameSite {
	switch v {
	case 1:
		return SameSiteLax
	case 2:
		return SameSiteStrict
	default:
		return SameSiteNone
	}
}

// mergeCookies evicts stale entries for the queried domains, then appends the
// fresh batch, keeping the run idempotent.
func mergeCookies(state StorageState, fresh []StateCookie, variants []string) StorageState {
	kept := make([]StateCookie, 0, len(state.Cookies))
	for _, c := range state.Cookies {
		if !domainMatchesVariants(c.Domain, variants) {
			kept = append(kept, c)
		}
	}
	state.Cookies = append(kept, fresh...)
	return state
}
