package chromestate

import (
	"errors"
	"os"

	"github.com/go-ini/ini"
)

// Config holds optional overrides loaded from an INI file, e.g.
//
//	[chrome]
//	profile = Profile 1
//	store = /path/to/Cookies
//
//	[keychain]
//	service = Chromium Safe Storage
//	account = Chromium
//
//	[output]
//	storage = /path/to/storage.json
type Config struct {
	Profile         string
	StorePath       string
	StoragePath     string
	KeychainService string
	KeychainAccount string
}

// LoadConfig reads an INI config file. A missing file is not an error and
// yields a zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	f, err := ini.Load(path)
	if err != nil {
		return cfg, err
	}

	chrome := f.Section("chrome")
	cfg.Profile = chrome.Key("profile").String()
	cfg.StorePath = chrome.Key("store").String()

	keychain := f.Section("keychain")
	cfg.KeychainService = keychain.Key("service").String()
	cfg.KeychainAccount = keychain.Key("account").String()

	cfg.StoragePath = f.Section("output").Key("storage").String()
	return cfg, nil
}
