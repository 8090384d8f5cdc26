package chromestate

import "time"

// SameSite is the cookie SameSite attribute as Playwright spells it.
type SameSite string

const (
	// SameSiteNone is SameSite=None.
	SameSiteNone SameSite = "None"
	// SameSiteLax is SameSite=Lax.
	SameSiteLax SameSite = "Lax"
	// SameSiteStrict is SameSite=Strict.
	SameSiteStrict SameSite = "Strict"
)

// CookieRow is one row from the Chrome cookie store. Exactly one of Value and
// EncryptedValue carries the cookie value.
type CookieRow struct {
	Name           string
	Value          string
	HostKey        string
	Path           string
	EncryptedValue []byte

	// ExpiresUTC is microseconds since 1601-01-01 UTC; 0 means session cookie.
	ExpiresUTC int64

	IsSecure   bool
	IsHTTPOnly bool

	// SameSite is Chrome's enum: 0=None, 1=Lax, 2=Strict, -1=unspecified.
	SameSite int64
}

// StateCookie is one entry in the Playwright storage-state document.
type StateCookie struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Domain   string `json:"domain"`
	Path     string `json:"path"`
	HTTPOnly bool   `json:"httpOnly"`
	Secure   bool   `json:"secure"`
	SameSite string `json:"sameSite"`

	// Expires is Unix seconds; absent for session cookies.
	Expires *int64 `json:"expires,omitempty"`
}

// Options configures a single extraction run.
type Options struct {
	// Domain is the site whose cookies are extracted. Required.
	Domain string

	// Profile is the Chrome profile directory name (e.g. "Default",
	// "Profile 1"). Defaults to "Default".
	Profile string

	// StorePath overrides cookie-database resolution with an explicit path.
	StorePath string

	// StoragePath is the storage-state file to merge into. Defaults to
	// cookies/storage.json next to the executable.
	StoragePath string

	// KeychainService and KeychainAccount select the Safe Storage keychain
	// entry. Default to "Chrome Safe Storage" / "Chrome".
	KeychainService string
	KeychainAccount string

	// Timeout bounds the keychain helper call.
	Timeout time.Duration
}

// Result is returned by Extract.
type Result struct {
	// Cookies are the entries written into the storage state.
	Cookies []StateCookie
	// Variants are the host_key values that were queried and evicted.
	Variants []string
	// StoragePath is the file the state was persisted to.
	StoragePath string
}
