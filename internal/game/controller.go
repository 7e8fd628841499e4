package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"wordscramble/internal/dictionary"
	"wordscramble/internal/savefile"
	"wordscramble/internal/types"
)

// ErrStopped is returned by actions issued after Run has returned.
var ErrStopped = errors.New("game controller stopped")

const tickInterval = time.Second

// DefinitionProvider returns a definition or a fallback text; it must not
// block past its own timeout.
type DefinitionProvider interface {
	Lookup(ctx context.Context, word string) string
}

type SnapshotStore interface {
	Save(snap types.Snapshot) error
	Load() (types.Snapshot, error)
}

type definitionResult struct {
	round uint64
	word  string
	text  string
}

// Controller owns a Session on a single goroutine. User actions, countdown
// ticks and definition results are all applied from Run, so readers never
// see a session mid-mutation.
type Controller struct {
	session *Session
	dict    DefinitionProvider
	store   SnapshotStore
	clock   clockwork.Clock

	ops         chan func()
	definitions chan definitionResult
	stopped     chan struct{}

	runCtx context.Context
	ticker clockwork.Ticker
}

type ControllerOption func(*Controller)

func WithClock(clock clockwork.Clock) ControllerOption {
	return func(c *Controller) { c.clock = clock }
}

func NewController(words WordSource, dict DefinitionProvider, store SnapshotStore, opts ...ControllerOption) *Controller {
	c := &Controller{
		session:     NewSession(words),
		dict:        dict,
		store:       store,
		clock:       clockwork.NewRealClock(),
		ops:         make(chan func()),
		definitions: make(chan definitionResult),
		stopped:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run processes events until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) {
	c.runCtx = ctx
	defer close(c.stopped)
	defer c.stopCountdown()

	log.Info().Msg("game controller started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("game controller stopped")
			return
		case op := <-c.ops:
			op()
		case <-c.tickChan():
			c.tick()
		case res := <-c.definitions:
			c.applyDefinition(res)
		}
	}
}

// Done is closed once Run has returned.
func (c *Controller) Done() <-chan struct{} {
	return c.stopped
}

func (c *Controller) Start(ctx context.Context) (View, error) {
	return c.do(ctx, func(s *Session) {
		s.Start()
		c.startCountdown()
		log.Info().Int("seconds", RoundSeconds).Msg("game started")
	})
}

func (c *Controller) SubmitGuess(ctx context.Context, text string) (View, error) {
	return c.do(ctx, func(s *Session) {
		if s.SubmitGuess(text) {
			log.Debug().Int("score", s.Score()).Msg("correct guess")
		}
	})
}

// RequestHint returns the first letter of the current word along with the
// updated view.
func (c *Controller) RequestHint(ctx context.Context) (string, View, error) {
	var hint string
	v, err := c.do(ctx, func(s *Session) {
		hint = s.RequestHint()
	})
	return hint, v, err
}

func (c *Controller) NewWord(ctx context.Context) (View, error) {
	return c.do(ctx, func(s *Session) { s.NewWord() })
}

func (c *Controller) Resume(ctx context.Context) (View, error) {
	return c.do(ctx, func(s *Session) {
		if err := s.Resume(); err != nil {
			s.notify(types.LevelWarning, "Nothing to Resume", "Start a new game or load a saved one.")
			return
		}
		if c.ticker == nil {
			c.startCountdown()
		}
	})
}

func (c *Controller) Save(ctx context.Context) (View, error) {
	return c.do(ctx, func(s *Session) {
		if s.CurrentWord() == "" {
			s.notify(types.LevelWarning, "Nothing to Save", "Start a game before saving.")
			return
		}
		if err := c.store.Save(s.Snapshot()); err != nil {
			log.Error().Err(err).Msg("save failed")
			s.notify(types.LevelError, "Save Failed", fmt.Sprintf("Could not save game: %v", err))
			return
		}
		s.notify(types.LevelInfo, "Saved", "Game progress saved!")
	})
}

// Load applies the stored snapshot. The countdown keeps whatever state it
// had; a failed load leaves the session untouched apart from the notice.
func (c *Controller) Load(ctx context.Context) (View, error) {
	return c.do(ctx, func(s *Session) {
		snap, err := c.store.Load()
		switch {
		case errors.Is(err, savefile.ErrNotFound):
			s.notify(types.LevelError, "Error", "No save file found!")
			return
		case errors.Is(err, savefile.ErrInvalid):
			s.notify(types.LevelError, "Error", "Save file is invalid!")
			return
		case err != nil:
			log.Error().Err(err).Msg("load failed")
			s.notify(types.LevelError, "Error", "Could not read save file!")
			return
		}
		s.Apply(snap)
		s.notify(types.LevelInfo, "Loaded", "Game loaded successfully!")
	})
}

// View returns the current session view.
func (c *Controller) View(ctx context.Context) (View, error) {
	return c.do(ctx, func(*Session) {})
}

// do runs fn on the Run goroutine and returns the resulting view. A new
// word draw triggers a definition lookup.
func (c *Controller) do(ctx context.Context, fn func(*Session)) (View, error) {
	done := make(chan View, 1)
	op := func() {
		before := c.session.Round()
		fn(c.session)
		if round := c.session.Round(); round != before {
			c.lookup(round, c.session.CurrentWord())
		}
		done <- c.session.View()
	}

	select {
	case c.ops <- op:
	case <-c.stopped:
		return View{}, ErrStopped
	case <-ctx.Done():
		return View{}, ctx.Err()
	}

	select {
	case v := <-done:
		return v, nil
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

func (c *Controller) lookup(round uint64, word string) {
	ctx := c.runCtx
	go func() {
		text := c.dict.Lookup(ctx, word)
		select {
		case c.definitions <- definitionResult{round: round, word: word, text: text}:
		case <-ctx.Done():
		}
	}()
}

// applyDefinition shows the lookup result, falling back to the vocabulary
// hint when the dictionary had nothing.
func (c *Controller) applyDefinition(res definitionResult) {
	text := res.text
	if text == dictionary.FallbackText {
		if hint := c.session.words.Hint(res.word); hint != "" {
			text = hint
		}
	}
	if !c.session.SetDefinition(res.round, text) {
		log.Debug().Str("word", res.word).Uint64("round", res.round).Msg("discarding stale definition")
	}
}

func (c *Controller) tick() {
	if c.session.Tick() {
		log.Info().Int("score", c.session.Score()).Msg("game over")
	}
	if !c.session.Running() {
		c.stopCountdown()
	}
}

// startCountdown replaces any running ticker so a restart never counts
// twice.
func (c *Controller) startCountdown() {
	c.stopCountdown()
	c.ticker = c.clock.NewTicker(tickInterval)
}

func (c *Controller) stopCountdown() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	c.ticker = nil
}

// tickChan is nil while no countdown runs, which disables its select case.
func (c *Controller) tickChan() <-chan time.Time {
	if c.ticker == nil {
		return nil
	}
	return c.ticker.Chan()
}
