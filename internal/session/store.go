package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Storage keys. Both are always written and cleared together.
const (
	tokenKey = "token"
	userKey  = "user"
)

// Store is the narrow persistence surface the session manager writes
// through. Implementations must tolerate missing keys on Remove.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// fileState is the on-disk layout of the file store.
type fileState struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values"`
}

// FileStore persists session state as a single JSON file on the local
// filesystem.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store rooted at baseDir.
// If baseDir is empty, uses ~/.festivo/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".festivo")
	}

	// The file holds a bearer credential, keep it out of reach of other users
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	store := &FileStore{path: filepath.Join(baseDir, "session.json")}

	log.Debug().Str("path", store.path).Msg("session store initialized")

	return store, nil
}

func (s *FileStore) Get(key string) (string, bool, error) {
	state, err := s.load()
	if err != nil {
		return "", false, err
	}

	value, ok := state.Values[key]
	return value, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	state, err := s.load()
	if err != nil {
		return err
	}

	state.Values[key] = value

	return s.save(state)
}

func (s *FileStore) Remove(key string) error {
	state, err := s.load()
	if err != nil {
		return err
	}

	if _, ok := state.Values[key]; !ok {
		return nil
	}

	delete(state.Values, key)

	return s.save(state)
}

// load reads the state file, treating a missing file as an empty store.
func (s *FileStore) load() (*fileState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileState{Version: 1, Values: make(map[string]string)}, nil
		}
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}

	// A corrupt state file heals to empty on the next save rather than
	// wedging every read behind a parse error
	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Debug().Err(err).Str("path", s.path).Msg("session state file corrupt, treating as empty")
		return &fileState{Version: 1, Values: make(map[string]string)}, nil
	}

	if state.Values == nil {
		state.Values = make(map[string]string)
	}

	return &state, nil
}

// save writes the state file atomically.
func (s *FileStore) save(state *fileState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	// Write to temp file first
	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save session state: %w", err)
	}

	return nil
}
