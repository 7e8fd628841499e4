// Package savefile persists a single game snapshot to a fixed file.
package savefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"wordscramble/internal/types"
	"wordscramble/internal/words"
)

const DefaultPath = "save.json"

var (
	ErrNotFound = errors.New("no save file found")
	ErrInvalid  = errors.New("invalid save file")
)

// MaxTimeRemaining bounds the persisted countdown value.
const MaxTimeRemaining = 60

// record uses pointers so a missing key is distinguishable from a zero value.
type record struct {
	Score         *int    `json:"score"`
	TimeRemaining *int    `json:"time_left"`
	CurrentWord   *string `json:"current_word"`
	ScrambledForm *string `json:"scrambled"`
}

// Store reads and writes one snapshot at a fixed path. Each Save
// overwrites the previous content.
type Store struct {
	path string
}

func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Save writes snap, replacing any previous snapshot.
func (s *Store) Save(snap types.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".save-*.json")
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("failed to create temp save file")
		return fmt.Errorf("write save file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("failed to replace save file")
		return fmt.Errorf("write save file: %w", err)
	}

	log.Info().Str("path", s.path).Int("score", snap.Score).Msg("game saved")
	return nil
}

// Load reads the snapshot. It returns ErrNotFound when no file exists and
// ErrInvalid when the content cannot be trusted.
func (s *Store) Load() (types.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.Snapshot{}, ErrNotFound
		}
		return types.Snapshot{}, fmt.Errorf("read save file: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("save file is corrupted")
		return types.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	snap, err := rec.snapshot()
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("save file failed validation")
		return types.Snapshot{}, err
	}

	log.Info().Str("path", s.path).Int("score", snap.Score).Msg("game loaded")
	return snap, nil
}

func (r record) snapshot() (types.Snapshot, error) {
	switch {
	case r.Score == nil:
		return types.Snapshot{}, fmt.Errorf("%w: missing score", ErrInvalid)
	case r.TimeRemaining == nil:
		return types.Snapshot{}, fmt.Errorf("%w: missing time_left", ErrInvalid)
	case r.CurrentWord == nil:
		return types.Snapshot{}, fmt.Errorf("%w: missing current_word", ErrInvalid)
	case r.ScrambledForm == nil:
		return types.Snapshot{}, fmt.Errorf("%w: missing scrambled", ErrInvalid)
	}

	snap := types.Snapshot{
		Score:         *r.Score,
		TimeRemaining: *r.TimeRemaining,
		CurrentWord:   *r.CurrentWord,
		ScrambledForm: *r.ScrambledForm,
	}
	switch {
	case snap.Score < 0:
		return types.Snapshot{}, fmt.Errorf("%w: negative score %d", ErrInvalid, snap.Score)
	case snap.TimeRemaining < 0 || snap.TimeRemaining > MaxTimeRemaining:
		return types.Snapshot{}, fmt.Errorf("%w: time_left %d out of range", ErrInvalid, snap.TimeRemaining)
	case snap.CurrentWord == "":
		return types.Snapshot{}, fmt.Errorf("%w: empty current_word", ErrInvalid)
	case !words.SameLetters(snap.CurrentWord, snap.ScrambledForm):
		return types.Snapshot{}, fmt.Errorf("%w: scrambled is not a permutation of current_word", ErrInvalid)
	}
	return snap, nil
}
