package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	pepperMu sync.RWMutex
	pepper   string
)

// LoadPepper reads the password pepper from path, creating the file with a
// fresh random pepper the first time. Call it once at startup; the pepper
// must stay stable or every stored hash stops verifying.
func LoadPepper(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("cryptox: pepper file path is empty")
	}
	path = filepath.Clean(path)

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("cryptox: create pepper dir: %w", err)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		value := strings.TrimSpace(string(data))
		if value == "" {
			return fmt.Errorf("cryptox: pepper file %q is empty", path)
		}
		setPepper(value)
		return nil

	case errors.Is(err, os.ErrNotExist):
		value, err := newPepper()
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(value), 0o600); err != nil {
			return fmt.Errorf("cryptox: write pepper: %w", err)
		}
		setPepper(value)
		return nil

	default:
		return fmt.Errorf("cryptox: read pepper: %w", err)
	}
}

func setPepper(value string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepper = value
}

// pepperValue returns the loaded pepper. Without LoadPepper (tests, tools)
// an in-memory pepper is generated; hashes made with it die with the process.
func pepperValue() string {
	pepperMu.RLock()
	p := pepper
	pepperMu.RUnlock()
	if p != "" {
		return p
	}

	pepperMu.Lock()
	defer pepperMu.Unlock()
	if pepper == "" {
		value, err := newPepper()
		if err != nil {
			panic(err)
		}
		slog.Warn("cryptox: no pepper file loaded, using an ephemeral pepper")
		pepper = value
	}
	return pepper
}

func newPepper() (string, error) {
	b := make([]byte, keyLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("cryptox: generate pepper: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
