package typewriter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	frames []string
}

func (r *recorder) ShowRevealedText(text string) { r.frames = append(r.frames, text) }

func (r *recorder) last() string {
	if len(r.frames) == 0 {
		return ""
	}
	return r.frames[len(r.frames)-1]
}

const step = DefaultInterval

func TestRevealEmitsOneCharacterPerInterval(t *testing.T) {
	rec := &recorder{}
	seq := New(step, rec)
	require.Equal(t, StateIdle, seq.State())
	require.True(t, seq.IsFinished())

	seq.Start("Hi.")
	assert.Equal(t, StateRevealing, seq.State())
	assert.Equal(t, "H", seq.Text(), "first character shows as soon as the reveal begins")
	assert.False(t, seq.IsFinished())

	seq.Tick(step)
	assert.Equal(t, "Hi", seq.Text())
	seq.Tick(step)
	assert.Equal(t, "Hi.", seq.Text())
	assert.Equal(t, StateRevealing, seq.State(), "reveal waits one interval after the last character")

	seq.Tick(step)
	assert.Equal(t, StateFinished, seq.State())
	assert.True(t, seq.IsFinished())
	assert.Equal(t, []string{"H", "Hi", "Hi."}, rec.frames)
}

func TestRevealAccumulatesSubIntervalTicks(t *testing.T) {
	seq := New(0.1, nil)
	seq.Start("ab")

	seq.Tick(0.05)
	assert.Equal(t, "a", seq.Text())
	seq.Tick(0.05)
	assert.Equal(t, "ab", seq.Text())
}

func TestSkipShowsFullTextOnNextTick(t *testing.T) {
	rec := &recorder{}
	seq := New(step, rec)
	seq.Start("Hello there")

	seq.RequestSkip()
	assert.Equal(t, "H", seq.Text(), "skip is consumed at the next tick, not immediately")

	seq.Tick(step)
	assert.Equal(t, "Hello there", seq.Text())
	assert.Equal(t, "Hello there", rec.last())
	assert.Equal(t, StateFinished, seq.State())
}

func TestInterruptLeavesPartialText(t *testing.T) {
	seq := New(step, nil)
	seq.Start("Hello")
	seq.Tick(step)
	require.Equal(t, "He", seq.Text())

	seq.RequestInterrupt()
	seq.RequestSkip()
	seq.Tick(step)

	assert.Equal(t, StateInterrupted, seq.State(), "interrupt takes priority over skip")
	assert.Equal(t, "He", seq.Text())
	assert.True(t, seq.IsFinished())
}

func TestRequestsIgnoredWhenNotRevealing(t *testing.T) {
	seq := New(step, nil)
	seq.RequestSkip()
	seq.RequestInterrupt()

	seq.Start("abc")
	seq.Tick(step)
	assert.Equal(t, "ab", seq.Text(), "a skip requested while idle must not leak into the next reveal")
	assert.Equal(t, StateRevealing, seq.State())
}

func TestStartQueuesBehindActiveReveal(t *testing.T) {
	rec := &recorder{}
	seq := New(step, rec)
	seq.Start("one")
	seq.Start("two")

	assert.Equal(t, 1, seq.Pending())
	assert.False(t, seq.IsFinished())
	assert.Equal(t, "o", seq.Text())

	seq.RequestInterrupt()
	seq.Tick(step)
	assert.Equal(t, StateInterrupted, seq.State())
	assert.False(t, seq.IsFinished(), "queued content still counts as work in progress")

	seq.Tick(step)
	assert.Equal(t, StateRevealing, seq.State())
	assert.Equal(t, "t", seq.Text())
	assert.Equal(t, 0, seq.Pending())
}

func TestEmptyContentFinishesImmediately(t *testing.T) {
	rec := &recorder{}
	seq := New(step, rec)
	seq.Start("")

	assert.Equal(t, StateFinished, seq.State())
	assert.Equal(t, []string{""}, rec.frames)
}

func TestCombiningMarksRevealWithTheirBase(t *testing.T) {
	seq := New(step, nil)
	seq.Start("e\u0301a")

	assert.Equal(t, "\u00e9", seq.Text())
	seq.Tick(step)
	assert.Equal(t, "\u00e9a", seq.Text())
}

func TestNonPositiveIntervalFallsBack(t *testing.T) {
	assert.Equal(t, DefaultInterval, New(0, nil).Interval())
	assert.Equal(t, 0.075, New(0.075, nil).Interval())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "revealing", StateRevealing.String())
	assert.Equal(t, "finished", StateFinished.String())
	assert.Equal(t, "interrupted", StateInterrupted.String())
}

func TestCancelDropsQueuedReveals(t *testing.T) {
	var shown []string
	seq := New(step, DisplayFunc(func(text string) { shown = append(shown, text) }))

	seq.Start("Hello")
	seq.Start("World")
	seq.Start("Again")
	require.Equal(t, 2, seq.Pending())

	seq.Cancel()
	seq.Cancel()
	assert.Equal(t, 0, seq.Pending())
	assert.Equal(t, "", seq.Text(), "text is cleared as soon as the reveal is cancelled")
	assert.Equal(t, []string{"H", "", ""}, shown)
	assert.False(t, seq.IsFinished(), "the cancelled reveal still has to end")

	seq.Tick(step)
	assert.Equal(t, StateInterrupted, seq.State())
	assert.True(t, seq.IsFinished())

	seq.Tick(step)
	assert.Equal(t, StateInterrupted, seq.State(), "nothing was left queued")
	assert.Equal(t, "", seq.Text())
}

func TestCancelThenStartRevealsOnlyNewContent(t *testing.T) {
	seq := New(step, nil)
	seq.Start("Old")
	seq.Start("Stale")

	seq.Cancel()
	seq.Start("New")
	assert.Equal(t, 1, seq.Pending())

	seq.Tick(step)
	assert.Equal(t, StateInterrupted, seq.State())
	seq.Tick(step)
	assert.Equal(t, StateRevealing, seq.State())
	assert.Equal(t, "N", seq.Text())
}

func TestCancelWhenFinishedClearsText(t *testing.T) {
	seq := New(step, nil)
	seq.Start("a")
	seq.Tick(step)
	require.Equal(t, StateFinished, seq.State())

	seq.Cancel()
	assert.Equal(t, StateFinished, seq.State())
	assert.Equal(t, "", seq.Text())

	seq.Start("b")
	assert.Equal(t, "b", seq.Text(), "nothing to wait for, so the next reveal begins at once")
}
