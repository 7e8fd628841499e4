package main

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// Backdrop cycles the page background through a fixed palette.
type Backdrop struct {
	colors   []string
	interval time.Duration
	clock    clockwork.Clock
	index    atomic.Int64
}

func NewBackdrop(clock clockwork.Clock, interval time.Duration, colors []string) *Backdrop {
	if len(colors) == 0 {
		colors = BackdropColors
	}
	return &Backdrop{colors: colors, interval: interval, clock: clock}
}

// Run advances the colour every interval until ctx is cancelled.
func (b *Backdrop) Run(ctx context.Context) {
	ticker := b.clock.NewTicker(b.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			b.index.Add(1)
		}
	}
}

// Current returns the colour to paint now.
func (b *Backdrop) Current() string {
	return b.colors[int(b.index.Load()%int64(len(b.colors)))]
}
