// Package chromestate extracts Chrome session cookies for a domain and merges
// them into a Playwright storage-state file.
//
// This is intended for local tooling (dev scripts, browser-automation setup).
// It reads Chrome's on-disk cookie store, may trigger a macOS keychain prompt,
// and should not be used in server contexts.
package chromestate
