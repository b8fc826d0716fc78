package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SessionPath is where the session token survives between invocations, next
// to the default config file.
func SessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "subnetctl.session")
}

// LoadSession reads a previously saved session token. A missing or unreadable
// file means no session; the server will mint a fresh one.
func LoadSession(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SaveSession writes the session token for the next invocation. An empty
// token removes the file, so a logged-out session stays gone.
func SaveSession(path, token string) error {
	if path == "" {
		return nil
	}
	if token == "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove session file %s: %w", path, err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write session file %s: %w", path, err)
	}
	return nil
}
