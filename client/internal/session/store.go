package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"evcharge/client/internal/models"
)

// PathEnv overrides the session file location.
const PathEnv = "EVCTL_SESSION"

// ErrNoSession is returned by Load when nobody is logged in.
var ErrNoSession = errors.New("session: not logged in")

// Session is the logged-in user and their token.
type Session struct {
	Token string         `json:"token"`
	User  models.UserDTO `json:"user"`
}

// Store persists a Session as a JSON file.
type Store struct {
	path string
}

// NewStore returns a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns $EVCTL_SESSION or ~/.evctl/session.json.
func DefaultPath() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("session: resolve home dir: %w", err)
	}
	return filepath.Join(home, ".evctl", "session.json"), nil
}

// Path returns the session file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored session.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("session: read: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	if sess.Token == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Save writes the session readable by the owner only.
func (s *Store) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("session: write: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: remove: %w", err)
	}
	return nil
}
