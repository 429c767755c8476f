// Package transcript persists per-call transcripts as flat files under a
// single directory. One file per conversation thread.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// fileName flattens a thread id into a safe file name. Thread ids contain
// characters like ':' and '@' that are not portable in paths.
func (s *Store) fileName(name string) string {
	r := strings.NewReplacer(":", "_", "@", "_", "/", "_", "\\", "_")
	return filepath.Join(s.dir, r.Replace(name)+".txt")
}

// Create makes the transcript directory and an empty file for name. Creating
// an already existing transcript truncates it.
func (s *Store) Create(name string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create transcript dir: %w", err)
	}
	path := s.fileName(name)
	log.Info().Str("module", "transcript").Str("path", path).Msg("creating transcript")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create transcript: %w", err)
	}
	return f.Close()
}

// Append adds content to the transcript for name, creating it if needed.
func (s *Store) Append(name, content string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create transcript dir: %w", err)
	}
	f, err := os.OpenFile(s.fileName(name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("append transcript: %w", err)
	}
	return nil
}

func (s *Store) Read(name string) (string, error) {
	b, err := os.ReadFile(s.fileName(name))
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(b), nil
}

func (s *Store) Delete(name string) error {
	if err := os.Remove(s.fileName(name)); err != nil {
		return fmt.Errorf("delete transcript: %w", err)
	}
	return nil
}

func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.fileName(name))
	return err == nil
}
