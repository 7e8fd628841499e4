// Package game holds the scramble game state machine and the controller
// that owns it.
package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"wordscramble/internal/types"
)

const (
	RoundSeconds = 60
	Reward       = 10

	DefinitionPlaceholder = "Word meaning will appear here."
	DefinitionPending     = "Looking up meaning..."
)

var ErrCannotResume = errors.New("no game to resume")

type State int

const (
	Idle State = iota
	Running
	Ended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Ended:
		return "ended"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// WordSource supplies target words, their scrambled forms and the short
// vocabulary hint shown when no definition is available.
type WordSource interface {
	Pick() string
	Scramble(word string) string
	Hint(word string) string
}

// View is an immutable copy of the session for rendering.
type View struct {
	State         State
	Score         int
	TimeRemaining int
	HintsUsed     int
	Scrambled     string
	Definition    string
	Notice        *types.Notification
}

func (v View) Running() bool { return v.State == Running }

// Session is the mutable state of one playthrough. It is not safe for
// concurrent use; Controller serializes access to it.
type Session struct {
	words WordSource

	state         State
	score         int
	timeRemaining int
	hintsUsed     int
	currentWord   string
	scrambled     string
	definition    string
	round         uint64
	notice        *types.Notification
}

func NewSession(words WordSource) *Session {
	return &Session{
		words:         words,
		state:         Idle,
		timeRemaining: RoundSeconds,
		definition:    DefinitionPlaceholder,
	}
}

func (s *Session) State() State { return s.state }
func (s *Session) Running() bool { return s.state == Running }
func (s *Session) Score() int { return s.score }
func (s *Session) TimeRemaining() int { return s.timeRemaining }
func (s *Session) HintsUsed() int { return s.hintsUsed }
func (s *Session) CurrentWord() string { return s.currentWord }
func (s *Session) Scrambled() string { return s.scrambled }
func (s *Session) Definition() string { return s.definition }
func (s *Session) Round() uint64 { return s.round }
func (s *Session) Notice() *types.Notification { return s.notice }

// Start resets score and time, draws a word and enters Running from any
// state.
func (s *Session) Start() {
	s.score = 0
	s.timeRemaining = RoundSeconds
	s.hintsUsed = 0
	s.state = Running
	s.draw()
	s.notify(types.LevelInfo, "Game Started", fmt.Sprintf("Unscramble as many words as you can in %d seconds!", RoundSeconds))
}

// Tick counts down one second. It reports true on the tick that ends the
// game; ticks outside Running do nothing.
func (s *Session) Tick() bool {
	if s.state != Running {
		return false
	}
	if s.timeRemaining > 0 {
		s.timeRemaining--
	}
	if s.timeRemaining > 0 {
		return false
	}
	s.state = Ended
	s.notify(types.LevelInfo, "Game Over!", fmt.Sprintf("Your final score: %d", s.score))
	return true
}

// SubmitGuess compares text against the current word ignoring case. A
// match scores Reward and draws the next word; a miss changes nothing.
func (s *Session) SubmitGuess(text string) bool {
	if s.state != Running {
		s.notify(types.LevelWarning, "Game Not Running", "Press Start to play!")
		return false
	}
	if !strings.EqualFold(text, s.currentWord) {
		s.notify(types.LevelWarning, "Wrong!", "Incorrect guess!")
		return false
	}
	s.score += Reward
	s.notice = nil
	s.draw()
	return true
}

// RequestHint returns the first letter of the current word. Outside a
// running game it only posts a warning and returns "".
func (s *Session) RequestHint() string {
	if s.state != Running {
		s.notify(types.LevelWarning, "Game Not Running", "Press Start to play!")
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s.currentWord)
	hint := string(r)
	s.hintsUsed++
	s.notify(types.LevelInfo, "Hint", "Starts with: "+hint)
	return hint
}

// NewWord draws a fresh word without touching score, time or state.
func (s *Session) NewWord() {
	s.draw()
	s.notice = nil
}

// Resume re-enters Running with the current score and time. Loading a
// snapshot never does this on its own.
func (s *Session) Resume() error {
	if s.state == Running {
		return nil
	}
	if s.currentWord == "" || s.timeRemaining <= 0 {
		return ErrCannotResume
	}
	s.state = Running
	s.notify(types.LevelInfo, "Resumed", fmt.Sprintf("%d seconds left. Go!", s.timeRemaining))
	return nil
}

// Snapshot projects the persisted fields.
func (s *Session) Snapshot() types.Snapshot {
	return types.Snapshot{
		Score:         s.score,
		TimeRemaining: s.timeRemaining,
		CurrentWord:   s.currentWord,
		ScrambledForm: s.scrambled,
	}
}

// Apply overwrites score, time and word from snap. State and hints are
// left alone.
func (s *Session) Apply(snap types.Snapshot) {
	s.score = snap.Score
	s.timeRemaining = snap.TimeRemaining
	s.currentWord = snap.CurrentWord
	s.scrambled = snap.ScrambledForm
	s.round++
	s.definition = DefinitionPending
}

// SetDefinition stores text if round is still the current draw and
// reports whether it was applied.
func (s *Session) SetDefinition(round uint64, text string) bool {
	if round != s.round {
		return false
	}
	s.definition = text
	return true
}

func (s *Session) View() View {
	return View{
		State:         s.state,
		Score:         s.score,
		TimeRemaining: s.timeRemaining,
		HintsUsed:     s.hintsUsed,
		Scrambled:     s.scrambled,
		Definition:    s.definition,
		Notice:        s.notice,
	}
}

func (s *Session) draw() {
	s.currentWord = s.words.Pick()
	s.scrambled = s.words.Scramble(s.currentWord)
	s.round++
	s.definition = DefinitionPending
}

func (s *Session) notify(level types.Level, title, message string) {
	s.notice = &types.Notification{Level: level, Title: title, Message: message}
}
