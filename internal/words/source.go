// Package words holds the fixed vocabulary and produces random words and
// their scrambled letter orders.
package words

import (
	crand "crypto/rand"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"wordscramble/internal/types"
)

//go:embed words.json
var embeddedWords []byte

// ErrEmptyVocabulary is returned when no usable word survives loading.
var ErrEmptyVocabulary = errors.New("vocabulary is empty")

// Source picks words from an immutable vocabulary. It is safe for
// concurrent use.
type Source struct {
	entries []types.WordEntry
	hints   map[string]string

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a Source over entries, normalising them. A nil rng selects a
// generator seeded from crypto/rand.
func New(entries []types.WordEntry, rng *rand.Rand) (*Source, error) {
	clean := normalize(entries)
	if len(clean) == 0 {
		return nil, ErrEmptyVocabulary
	}
	if rng == nil {
		rng = newRand()
	}
	return &Source{
		entries: clean,
		hints: lo.Associate(clean, func(e types.WordEntry) (string, string) {
			return e.Word, e.Hint
		}),
		rng: rng,
	}, nil
}

// Default returns a Source over the embedded vocabulary.
func Default() (*Source, error) {
	return parse(embeddedWords, "embedded words.json")
}

// Load reads a words.json file from path.
func Load(path string) (*Source, error) {
	log.Info().Str("path", path).Msg("loading vocabulary")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	return parse(data, path)
}

func parse(data []byte, origin string) (*Source, error) {
	var wl types.WordList
	if err := json.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("decode %s: %w", origin, err)
	}
	src, err := New(wl.Words, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", origin, err)
	}
	log.Info().Str("origin", origin).Int("words", src.Len()).Msg("vocabulary loaded")
	return src, nil
}

func normalize(entries []types.WordEntry) []types.WordEntry {
	trimmed := lo.Map(entries, func(e types.WordEntry, _ int) types.WordEntry {
		return types.WordEntry{
			Word: strings.ToLower(strings.TrimSpace(e.Word)),
			Hint: strings.TrimSpace(e.Hint),
		}
	})
	valid := lo.Filter(trimmed, func(e types.WordEntry, _ int) bool {
		if e.Word == "" || strings.IndexFunc(e.Word, func(r rune) bool { return !unicode.IsLetter(r) }) >= 0 {
			log.Warn().Str("word", e.Word).Msg("skipping vocabulary entry: not a word")
			return false
		}
		return true
	})
	return lo.UniqBy(valid, func(e types.WordEntry) string { return e.Word })
}

func newRand() *rand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		log.Warn().Err(err).Msg("crypto seed unavailable, seeding from clock")
		now := uint64(time.Now().UnixNano())
		return rand.New(rand.NewPCG(now, now>>1))
	}
	return rand.New(rand.NewChaCha8(seed))
}

// Len reports the vocabulary size.
func (s *Source) Len() int {
	return len(s.entries)
}

// Hint returns the vocabulary hint for word, or "" when it has none.
func (s *Source) Hint(word string) string {
	return s.hints[word]
}

// Pick returns a word chosen uniformly at random, with replacement.
func (s *Source) Pick() string {
	s.mu.Lock()
	i := s.rng.IntN(len(s.entries))
	s.mu.Unlock()
	return s.entries[i].Word
}

// Scramble returns a uniformly random permutation of word's letters. The
// result may equal the input.
func (s *Source) Scramble(word string) string {
	letters := []rune(word)
	s.mu.Lock()
	for i := len(letters) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		letters[i], letters[j] = letters[j], letters[i]
	}
	s.mu.Unlock()
	return string(letters)
}

// SameLetters reports whether a and b hold the same multiset of runes.
func SameLetters(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := lo.CountValues([]rune(a))
	for _, r := range b {
		counts[r]--
		if counts[r] < 0 {
			return false
		}
	}
	return true
}
