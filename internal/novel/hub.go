package novel

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"NovelEngine/internal/story"
)

// Playthrough is one player's run through the story, ticked by the hub.
type Playthrough struct {
	ID       string
	Now      float64
	Session  *Session
	Events   *EventQueue
	Pause    *PauseFlag
	Name     *PlayerName
	Attached int       // live connections driving this playthrough
	LastSeen time.Time // last detach or attach
	Mu       sync.Mutex
}

// Tick advances the playthrough by dt seconds.
func (p *Playthrough) Tick(dt float64) {
	p.Mu.Lock()
	defer p.Mu.Unlock()
	p.Now += dt
	p.Session.Tick(dt)
}

// HubConfig holds per-playthrough defaults.
type HubConfig struct {
	SimHz             float64 // <= 0 uses SimHz
	RevealInterval    float64
	DefaultPlayerName string
	Logger            *log.Logger
	Debug             bool
}

// Hub owns every live playthrough.
type Hub struct {
	Playthroughs map[string]*Playthrough
	Mu           sync.Mutex

	graph *story.Graph
	cfg   HubConfig
}

// NewHub creates an empty hub serving the given graph.
func NewHub(graph *story.Graph, cfg HubConfig) *Hub {
	if cfg.SimHz <= 0 {
		cfg.SimHz = SimHz
	}
	if cfg.DefaultPlayerName == "" {
		cfg.DefaultPlayerName = DefaultPlayerName
	}
	return &Hub{
		Playthroughs: map[string]*Playthrough{},
		graph:        graph,
		cfg:          cfg,
	}
}

// GetPlaythrough returns the playthrough with the given id, starting a new one
// at the root if it doesn't exist yet.
func (h *Hub) GetPlaythrough(id string) (*Playthrough, error) {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	p, _, err := h.getOrCreateLocked(id)
	return p, err
}

// Attach returns the playthrough for id, creating it if needed, and marks a
// connection as attached. Both happen under the hub lock so CleanupIdle can't
// drop the playthrough in between. reattached reports whether it already existed.
func (h *Hub) Attach(id string) (p *Playthrough, reattached bool, err error) {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	p, reattached, err = h.getOrCreateLocked(id)
	if err != nil {
		return nil, false, err
	}
	p.Mu.Lock()
	p.Attached++
	p.LastSeen = time.Now()
	p.Mu.Unlock()
	return p, reattached, nil
}

// Detach marks one connection to p as gone.
func (h *Hub) Detach(p *Playthrough) {
	p.Mu.Lock()
	defer p.Mu.Unlock()
	if p.Attached > 0 {
		p.Attached--
	}
	p.LastSeen = time.Now()
}

func (h *Hub) getOrCreateLocked(id string) (*Playthrough, bool, error) {
	if p, ok := h.Playthroughs[id]; ok {
		return p, true, nil
	}

	p := &Playthrough{
		ID:       id,
		Events:   NewEventQueue(),
		Pause:    &PauseFlag{},
		Name:     NewPlayerName(h.cfg.DefaultPlayerName),
		LastSeen: time.Now(),
	}
	session, err := NewSession(h.graph, Options{
		Presenter:      p.Events,
		Pause:          p.Pause,
		Name:           p.Name,
		RevealInterval: h.cfg.RevealInterval,
		Logger:         h.cfg.Logger,
		Debug:          h.cfg.Debug,
	})
	if err != nil {
		return nil, false, err
	}
	p.Session = session
	session.Begin()
	h.Playthroughs[id] = p
	return p, false, nil
}

// Has reports whether a playthrough with the given id is live.
func (h *Hub) Has(id string) bool {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	_, ok := h.Playthroughs[id]
	return ok
}

// Remove drops a playthrough.
func (h *Hub) Remove(id string) {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	delete(h.Playthroughs, id)
}

// Len returns the number of live playthroughs.
func (h *Hub) Len() int {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	return len(h.Playthroughs)
}

func (h *Hub) snapshot() []*Playthrough {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	out := make([]*Playthrough, 0, len(h.Playthroughs))
	for _, p := range h.Playthroughs {
		out = append(out, p)
	}
	return out
}

// Dt returns the simulation step in seconds.
func (h *Hub) Dt() float64 {
	return 1.0 / h.cfg.SimHz
}

// Tick advances every playthrough by one step.
func (h *Hub) Tick() {
	dt := h.Dt()
	for _, p := range h.snapshot() {
		p.Tick(dt)
	}
}

// Run ticks the hub at the configured rate until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / h.cfg.SimHz))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Tick()
		}
	}
}

// CleanupIdle removes detached playthroughs not seen for maxIdle and returns
// how many were removed.
func (h *Hub) CleanupIdle(now time.Time, maxIdle time.Duration) int {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	removed := 0
	for id, p := range h.Playthroughs {
		p.Mu.Lock()
		idle := p.Attached == 0 && now.Sub(p.LastSeen) > maxIdle
		p.Mu.Unlock()
		if idle {
			delete(h.Playthroughs, id)
			removed++
		}
	}
	return removed
}

func RandId(prefix string) string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 6)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return prefix + "-" + string(b)
}
