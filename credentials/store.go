// Package credentials stores panel access tokens in the system keyring and
// inspects them.
package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/99designs/keyring"

	"github.com/s0up4200/gamepanel/config"
	"github.com/s0up4200/gamepanel/gamepanel"
)

const (
	serviceName        = "gamepanel"
	tokenKeyPrefix     = "token:"
	envKeyringPassword = "GAMEPANEL_KEYRING_PASSWORD"
)

// ErrNotFound is returned when no token is stored for a hostname
var ErrNotFound = errors.New("no stored token for panel")

// openKeyring can be replaced in tests
var openKeyring = func(cfg keyring.Config) (keyring.Keyring, error) {
	return keyring.Open(cfg)
}

// SetOpenKeyring replaces the keyring opener and returns a function restoring it.
func SetOpenKeyring(fn func(keyring.Config) (keyring.Keyring, error)) func() {
	original := openKeyring
	openKeyring = fn
	return func() { openKeyring = original }
}

// Store keeps one token per panel hostname.
type Store struct {
	ring keyring.Keyring
}

// NewStore wraps an opened keyring
func NewStore(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// Open opens the keyring selected by cfg
func Open(cfg config.KeyringConfig) (*Store, error) {
	ring, err := openKeyring(keyringConfig(cfg, runtime.GOOS, os.Getenv("DBUS_SESSION_BUS_ADDRESS")))
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return NewStore(ring), nil
}

// Save stores the token for hostname
func (s *Store) Save(hostname, token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("token must not be empty")
	}

	err := s.ring.Set(keyring.Item{
		Key:         tokenKey(hostname),
		Data:        []byte(token),
		Label:       "GamePanel token for " + hostname,
		Description: "GamePanel personal access token",
	})
	if err != nil {
		return fmt.Errorf("failed to store token for %s: %w", hostname, err)
	}
	return nil
}

// Token loads the token stored for hostname
func (s *Store) Token(hostname string) (gamepanel.PersonalAccessToken, error) {
	item, err := s.ring.Get(tokenKey(hostname))
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, hostname)
		}
		return "", fmt.Errorf("failed to read token for %s: %w", hostname, err)
	}
	return gamepanel.PersonalAccessToken(item.Data), nil
}

// Delete removes the token stored for hostname
func (s *Store) Delete(hostname string) error {
	key := tokenKey(hostname)

	// some backends report a missing key on Remove as success or as a raw
	// filesystem error, so look the key up first
	if _, err := s.ring.Get(key); err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, hostname)
		}
		return fmt.Errorf("failed to read token for %s: %w", hostname, err)
	}

	if err := s.ring.Remove(key); err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, hostname)
		}
		return fmt.Errorf("failed to remove token for %s: %w", hostname, err)
	}
	return nil
}

// Hostnames lists the panels with a stored token in sorted order
func (s *Store) Hostnames() ([]string, error) {
	keys, err := s.ring.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keyring: %w", err)
	}

	var hosts []string
	for _, key := range keys {
		if host, ok := strings.CutPrefix(key, tokenKeyPrefix); ok {
			hosts = append(hosts, host)
		}
	}
	slices.Sort(hosts)
	return hosts, nil
}

// tokenKey ignores case, scheme and trailing slashes so that every spelling of
// a hostname the client accepts maps to one entry
func tokenKey(hostname string) string {
	host := strings.ToLower(strings.TrimSpace(hostname))
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	return tokenKeyPrefix + strings.TrimRight(host, "/")
}

func keyringConfig(cfg config.KeyringConfig, goos, dbusAddr string) keyring.Config {
	ringCfg := keyring.Config{
		ServiceName: serviceName,
	}

	if cfg.Backend == "system" {
		return ringCfg
	}

	ringCfg.FileDir = cfg.FileDir
	if ringCfg.FileDir == "" {
		ringCfg.FileDir = defaultFileDir()
	}
	ringCfg.FilePasswordFunc = filePassword

	// headless Linux has no secret service to fall back on
	if cfg.Backend == "file" || (goos == "linux" && strings.TrimSpace(dbusAddr) == "") {
		ringCfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}

	return ringCfg
}

func defaultFileDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, serviceName, "keyring")
	}
	return filepath.Join(os.TempDir(), serviceName, "keyring")
}

func filePassword(prompt string) (string, error) {
	if password, ok := os.LookupEnv(envKeyringPassword); ok && password != "" {
		return password, nil
	}
	return keyring.TerminalPrompt(prompt)
}
