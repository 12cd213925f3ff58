package novel

import (
	"context"
	"io"
	"log"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NovelEngine/internal/story"
	"NovelEngine/internal/typewriter"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	graph, err := story.NewGraph(story.SeedRoot, story.SeedChapters())
	require.NoError(t, err)
	return NewHub(graph, HubConfig{Logger: log.New(io.Discard, "", 0)})
}

func TestHubGetPlaythroughStartsAtRoot(t *testing.T) {
	hub := newTestHub(t)

	p, err := hub.GetPlaythrough("p1")
	require.NoError(t, err)
	assert.Equal(t, story.SeedRoot, p.Session.CurrentChapter().ID)
	assert.Equal(t, DefaultPlayerName, p.Name.Get())
	assert.Equal(t, typewriter.StateRevealing, p.Session.Sequencer().State())

	again, err := hub.GetPlaythrough("p1")
	require.NoError(t, err)
	assert.Same(t, p, again)
	assert.Equal(t, 1, hub.Len())
	assert.True(t, hub.Has("p1"))
	assert.False(t, hub.Has("p2"))

	hub.Remove("p1")
	assert.Equal(t, 0, hub.Len())
}

func TestHubTickRevealsText(t *testing.T) {
	hub := newTestHub(t)
	p, err := hub.GetPlaythrough("p1")
	require.NoError(t, err)
	before := len([]rune(p.Events.Scene().Text))

	require.InDelta(t, Dt, hub.Dt(), 1e-12)
	steps := int(math.Round(typewriter.DefaultInterval / Dt))
	for i := 0; i < steps; i++ {
		hub.Tick()
	}
	assert.Equal(t, before+1, len([]rune(p.Events.Scene().Text)))
	assert.InDelta(t, float64(steps)*Dt, p.Now, 1e-9)
}

func TestHubCustomRate(t *testing.T) {
	graph, err := story.NewGraph(story.SeedRoot, story.SeedChapters())
	require.NoError(t, err)
	hub := NewHub(graph, HubConfig{SimHz: 50, Logger: log.New(io.Discard, "", 0)})
	p, err := hub.GetPlaythrough("p1")
	require.NoError(t, err)

	hub.Tick()
	assert.InDelta(t, 0.02, p.Now, 1e-12)
}

func TestHubRunStopsOnCancel(t *testing.T) {
	hub := newTestHub(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestHubCleanupIdle(t *testing.T) {
	hub := newTestHub(t)
	idle, err := hub.GetPlaythrough("idle")
	require.NoError(t, err)
	live, err := hub.GetPlaythrough("live")
	require.NoError(t, err)

	now := time.Now()
	idle.LastSeen = now.Add(-time.Hour)
	live.LastSeen = now.Add(-time.Hour)
	live.Attached = 1

	removed := hub.CleanupIdle(now, 10*time.Minute)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, hub.Len())
	_, ok := hub.Playthroughs["live"]
	assert.True(t, ok)
}

func TestHubAttachHoldsOffCleanup(t *testing.T) {
	hub := newTestHub(t)

	p, reattached, err := hub.Attach("reader")
	require.NoError(t, err)
	assert.False(t, reattached)
	assert.Equal(t, 1, p.Attached)

	again, reattached, err := hub.Attach("reader")
	require.NoError(t, err)
	assert.True(t, reattached)
	assert.Same(t, p, again)
	assert.Equal(t, 2, p.Attached)

	// A stale LastSeen doesn't matter while a connection is attached.
	p.LastSeen = time.Now().Add(-time.Hour)
	assert.Equal(t, 0, hub.CleanupIdle(time.Now(), time.Minute))

	hub.Detach(p)
	hub.Detach(p)
	assert.Equal(t, 0, p.Attached)
	assert.Equal(t, 0, hub.CleanupIdle(time.Now(), time.Minute), "just detached")
	assert.Equal(t, 1, hub.CleanupIdle(time.Now().Add(time.Hour), time.Minute))
	assert.False(t, hub.Has("reader"))
}

func TestHubAttachAfterCleanupStartsOver(t *testing.T) {
	hub := newTestHub(t)
	p, _, err := hub.Attach("reader")
	require.NoError(t, err)
	hub.Detach(p)
	require.Equal(t, 1, hub.CleanupIdle(time.Now().Add(time.Hour), time.Minute))

	fresh, reattached, err := hub.Attach("reader")
	require.NoError(t, err)
	assert.False(t, reattached)
	assert.NotSame(t, p, fresh)
	assert.True(t, hub.Has("reader"))
}

func TestRandId(t *testing.T) {
	id := RandId("play")
	assert.True(t, strings.HasPrefix(id, "play-"))
	assert.Len(t, id, len("play-")+6)
}
