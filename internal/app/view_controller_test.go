package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/mediascraper-go/internal/domain"
)

func newTestViewController() *ViewController {
	return NewViewController(&domain.DefaultConfig().View)
}

func TestViewController_ActivateLeavesOneActive(t *testing.T) {
	view := newTestViewController()
	state := NewSessionStore(view.DefaultSection()).Get("s1")
	require.True(t, view.IsActive(state, "home"))

	require.NoError(t, view.Activate(state, "about"))

	active := 0
	for _, section := range view.Sections() {
		if view.IsActive(state, section) {
			active++
		}
	}
	assert.Equal(t, 1, active)
	assert.Equal(t, "about", state.ActiveSection())
}

func TestViewController_UnknownSection(t *testing.T) {
	view := newTestViewController()
	state := NewSessionStore(view.DefaultSection()).Get("s1")

	err := view.Activate(state, "missing")

	assert.ErrorIs(t, err, domain.ErrUnknownSection)
	assert.Equal(t, "home", state.ActiveSection())
}

func TestViewController_DeepLink(t *testing.T) {
	view := newTestViewController()
	state := NewSessionStore(view.DefaultSection()).Get("s1")

	assert.Equal(t, "privacy", view.DeepLink(state, "privacy"))
	assert.Equal(t, "privacy", state.ActiveSection())

	// no or unknown fragment falls back to the default section
	assert.Equal(t, "home", view.DeepLink(state, "nope"))
	assert.Equal(t, "home", state.ActiveSection())

	require.NoError(t, view.Activate(state, "save"))
	assert.Equal(t, "home", view.DeepLink(state, ""))
	assert.Equal(t, "home", state.ActiveSection())
}

func TestViewController_Resolve(t *testing.T) {
	view := newTestViewController()

	assert.Equal(t, "about", view.Resolve("about"))
	assert.Equal(t, "home", view.Resolve(""))
	assert.Equal(t, "home", view.Resolve("nowhere"))
}

func TestSessionStore_GetIsStable(t *testing.T) {
	store := NewSessionStore("home")

	a := store.Get("a")
	assert.Same(t, a, store.Get("a"))
	assert.NotSame(t, a, store.Get("b"))
	assert.Equal(t, 2, store.Len())

	snap := a.Snapshot()
	assert.Equal(t, "a", snap.SessionID)
	assert.Equal(t, domain.ColorIdle, snap.StatusColor)
	assert.False(t, snap.Loading)
}

func TestSessionStore_ReadsDoNotCreate(t *testing.T) {
	store := NewSessionStore("home")

	_, ok := store.Lookup("ghost")
	assert.False(t, ok)

	snap := store.Snapshot("ghost")
	assert.Equal(t, "ghost", snap.SessionID)
	assert.Equal(t, "home", snap.ActiveSection)
	assert.Equal(t, domain.ColorIdle, snap.StatusColor)
	assert.False(t, snap.Loading)
	assert.Zero(t, store.Len())

	store.Get("ghost")
	_, ok = store.Lookup("ghost")
	assert.True(t, ok)
	assert.Equal(t, 1, store.Len())
}

func TestNewSessionID_Unique(t *testing.T) {
	assert.NotEqual(t, NewSessionID(), NewSessionID())
}

func TestLabelCycler_Alternates(t *testing.T) {
	cycler := NewLabelCycler(20*time.Millisecond, 5*time.Millisecond)
	text, visible := cycler.Label()
	assert.Equal(t, LabelPrivacy, text)
	assert.True(t, visible)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cycler.Run(ctx)

	assert.Eventually(t, func() bool {
		text, visible := cycler.Label()
		return text == LabelAbout && visible
	}, time.Second, 2*time.Millisecond)

	assert.Eventually(t, func() bool {
		text, _ := cycler.Label()
		return text == LabelPrivacy
	}, time.Second, 2*time.Millisecond)
}

func TestLabelCycler_StopsWithContext(t *testing.T) {
	cycler := NewLabelCycler(time.Hour, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		cycler.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cycler did not stop")
	}
}
