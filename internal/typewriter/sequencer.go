// Package typewriter reveals one message at a time, one character per interval.
//
// The sequencer is an explicit state machine advanced by Tick. Skip and
// interrupt requests are level-triggered flags that may be raised from any
// goroutine and are consumed on the next Tick.
package typewriter

import (
	"go.uber.org/atomic"
	"golang.org/x/text/unicode/norm"
)

// State is the reveal state of the sequencer.
type State int32

const (
	// StateIdle means no reveal has been started yet.
	StateIdle State = iota
	// StateRevealing means characters are still being emitted.
	StateRevealing
	// StateFinished means the full message is visible.
	StateFinished
	// StateInterrupted means the reveal was aborted with partial text.
	StateInterrupted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRevealing:
		return "revealing"
	case StateFinished:
		return "finished"
	case StateInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// DefaultInterval is the delay between two revealed characters, in seconds.
const DefaultInterval = 0.1

const tickEpsilon = 1e-9

// Display receives the visible text every time it changes.
type Display interface {
	ShowRevealedText(text string)
}

// DisplayFunc adapts a plain function to Display.
type DisplayFunc func(text string)

func (f DisplayFunc) ShowRevealedText(text string) { f(text) }

// Sequencer owns the reveal of the current message.
type Sequencer struct {
	interval float64
	display  Display

	state     atomic.Int32
	skip      atomic.Bool
	interrupt atomic.Bool

	full     string
	segments []string
	revealed int
	text     string
	elapsed  float64
	pending  []string // Contents waiting for the active reveal to end
}

// New creates an idle sequencer. A non-positive interval falls back to DefaultInterval.
func New(interval float64, display Display) *Sequencer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sequencer{interval: interval, display: display}
}

// Interval returns the per-character delay in seconds.
func (s *Sequencer) Interval() float64 {
	return s.interval
}

// State returns the current reveal state.
func (s *Sequencer) State() State {
	return State(s.state.Load())
}

// Text returns the currently visible text.
func (s *Sequencer) Text() string {
	return s.text
}

// Pending returns the number of reveals queued behind the active one.
func (s *Sequencer) Pending() int {
	return len(s.pending)
}

// IsFinished reports whether no reveal is active or queued, so the caller may
// advance the story.
func (s *Sequencer) IsFinished() bool {
	return s.State() != StateRevealing && len(s.pending) == 0
}

// Start reveals content. If a reveal is still active the content is queued and
// begins on the first tick after the active reveal reaches a terminal state.
func (s *Sequencer) Start(content string) {
	if s.State() == StateRevealing || len(s.pending) > 0 {
		s.pending = append(s.pending, content)
		return
	}
	s.begin(content)
}

// RequestSkip asks the active reveal to show its full text. Ignored unless revealing.
func (s *Sequencer) RequestSkip() {
	if s.State() == StateRevealing {
		s.skip.Store(true)
	}
}

// RequestInterrupt asks the active reveal to stop where it is. Ignored unless
// revealing. Clearing the displayed text is the caller's job.
func (s *Sequencer) RequestInterrupt() {
	if s.State() == StateRevealing {
		s.interrupt.Store(true)
	}
}

// Cancel abandons the active reveal and everything queued behind it, and
// clears the visible text. An active reveal ends as Interrupted on the next
// tick; content started after Cancel is revealed once it has.
func (s *Sequencer) Cancel() {
	s.pending = nil
	if s.State() == StateRevealing {
		s.interrupt.Store(true)
	}
	s.text = ""
	s.show()
}

// Tick advances the reveal by dt seconds. At most one state transition happens per tick.
func (s *Sequencer) Tick(dt float64) {
	if s.State() != StateRevealing {
		if len(s.pending) > 0 {
			next := s.pending[0]
			s.pending = s.pending[1:]
			s.begin(next)
		}
		return
	}

	// Interrupt wins over skip.
	if s.interrupt.Load() {
		s.finish(StateInterrupted)
		return
	}
	if s.skip.Load() {
		s.text = s.full
		s.show()
		s.finish(StateFinished)
		return
	}

	s.elapsed += dt
	if s.elapsed+tickEpsilon < s.interval {
		return
	}
	s.elapsed -= s.interval
	if s.elapsed < 0 {
		s.elapsed = 0
	}

	if s.revealed < len(s.segments) {
		s.text += s.segments[s.revealed]
		s.revealed++
		s.show()
		return
	}
	s.finish(StateFinished)
}

func (s *Sequencer) begin(content string) {
	s.full = norm.NFC.String(content)
	s.segments = segments(s.full)
	s.revealed = 0
	s.elapsed = 0
	s.skip.Store(false)
	s.interrupt.Store(false)
	s.state.Store(int32(StateRevealing))

	if len(s.segments) == 0 {
		s.text = ""
		s.show()
		s.finish(StateFinished)
		return
	}
	s.text = s.segments[0]
	s.revealed = 1
	s.show()
}

func (s *Sequencer) finish(state State) {
	s.skip.Store(false)
	s.interrupt.Store(false)
	s.elapsed = 0
	s.state.Store(int32(state))
}

func (s *Sequencer) show() {
	if s.display != nil {
		s.display.ShowRevealedText(s.text)
	}
}

// segments splits text into normalization segments: a base character together
// with any combining marks that follow it.
func segments(text string) []string {
	var it norm.Iter
	it.InitString(norm.NFC, text)
	var out []string
	for !it.Done() {
		out = append(out, string(it.Next()))
	}
	return out
}
