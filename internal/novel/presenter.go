package novel

import (
	"strings"
	"sync"

	"go.uber.org/atomic"
)

// Presenter is the boundary the session calls to display a playthrough.
// Implementations must not call back into the session.
type Presenter interface {
	ShowBackground(image string)
	ShowCharacter(image string)
	ShowCharacterName(name string)
	ShowRevealedText(text string) // Called every time the revealed text changes
	PresentChoices(labels []string)
	HideChoices()
	ShowEnding(name string)
	HideEnding()
	SetBgm(clip string) // Sent on every chapter entry; restarting the same clip is the receiver's call
}

// NoOpPresenter is a default implementation that does nothing.
type NoOpPresenter struct{}

func (NoOpPresenter) ShowBackground(image string)    {}
func (NoOpPresenter) ShowCharacter(image string)     {}
func (NoOpPresenter) ShowCharacterName(name string)  {}
func (NoOpPresenter) ShowRevealedText(text string)   {}
func (NoOpPresenter) PresentChoices(labels []string) {}
func (NoOpPresenter) HideChoices()                   {}
func (NoOpPresenter) ShowEnding(name string)         {}
func (NoOpPresenter) HideEnding()                    {}
func (NoOpPresenter) SetBgm(clip string)             {}

// PauseGate tells the session whether player input is currently suspended.
type PauseGate interface {
	IsPaused() bool
}

// PauseFlag is a PauseGate that can be flipped from any goroutine.
type PauseFlag struct {
	paused atomic.Bool
}

func (p *PauseFlag) Pause()  { p.paused.Store(true) }
func (p *PauseFlag) Resume() { p.paused.Store(false) }

func (p *PauseFlag) IsPaused() bool {
	return p != nil && p.paused.Load()
}

// PlayerName holds the protagonist name chosen by the player.
type PlayerName struct {
	mu   sync.RWMutex
	name string
}

// NewPlayerName creates a name provider with an initial value.
func NewPlayerName(name string) *PlayerName {
	return &PlayerName{name: strings.TrimSpace(name)}
}

// Get returns the current name.
func (n *PlayerName) Get() string {
	if n == nil {
		return ""
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.name
}

// Set replaces the name. Blank names are ignored.
func (n *PlayerName) Set(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	n.mu.Lock()
	n.name = trimmed
	n.mu.Unlock()
	return true
}
