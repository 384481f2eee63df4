package app

import (
	"context"
	"sync"
	"time"
)

// Nav label texts the cycler alternates between
const (
	LabelPrivacy = "Privacy"
	LabelAbout   = "About"
)

// LabelCycler alternates the privacy/about nav label: every interval the
// label fades out, its text swaps, and it fades back in.
type LabelCycler struct {
	interval time.Duration
	fade     time.Duration

	mu      sync.RWMutex
	text    string
	visible bool
	isAbout bool
}

// NewLabelCycler creates a cycler showing "Privacy"
func NewLabelCycler(interval, fade time.Duration) *LabelCycler {
	return &LabelCycler{
		interval: interval,
		fade:     fade,
		text:     LabelPrivacy,
		visible:  true,
		isAbout:  true,
	}
}

// Label returns the current text and whether it is faded in
func (l *LabelCycler) Label() (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.text, l.visible
}

// Run cycles the label until ctx is done
func (l *LabelCycler) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.hide()

			select {
			case <-ctx.Done():
				return
			case <-time.After(l.fade):
				l.swap()
			}
		}
	}
}

func (l *LabelCycler) hide() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.visible = false
}

func (l *LabelCycler) swap() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.isAbout {
		l.text = LabelAbout
	} else {
		l.text = LabelPrivacy
	}
	l.visible = true
	l.isAbout = !l.isAbout
}
