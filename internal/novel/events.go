package novel

import "sync"

// OutboundMessage packages queued websocket events.
type OutboundMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Event types emitted by EventQueue.
const (
	EventBackground    = "story:background"
	EventCharacter     = "story:character"
	EventCharacterName = "story:character-name"
	EventChoices       = "story:choices"
	EventChoicesHidden = "story:choices-hidden"
	EventEnding        = "story:ending"
	EventEndingHidden  = "story:ending-hidden"
	EventBgm           = "story:bgm"
)

// Scene is the last state pushed through the presenter.
type Scene struct {
	Background    string   `json:"background,omitempty"`
	Character     string   `json:"character,omitempty"`
	CharacterName string   `json:"character_name"`
	Text          string   `json:"text"`
	Choices       []string `json:"choices,omitempty"`
	Ending        string   `json:"ending,omitempty"`
	EndingShown   bool     `json:"ending_shown"`
	Bgm           string   `json:"bgm,omitempty"`
}

// EventQueue is a Presenter that keeps the current scene and queues discrete
// changes for a transport to drain. Revealed text only updates the scene;
// it changes every tick and is carried by state snapshots instead.
type EventQueue struct {
	mu      sync.Mutex
	scene   Scene
	pending []OutboundMessage
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

func (q *EventQueue) push(msgType string, payload interface{}) {
	q.pending = append(q.pending, OutboundMessage{Type: msgType, Payload: payload})
}

func (q *EventQueue) ShowBackground(image string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.scene.Background = image
	q.push(EventBackground, image)
}

func (q *EventQueue) ShowCharacter(image string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.scene.Character = image
	q.push(EventCharacter, image)
}

func (q *EventQueue) ShowCharacterName(name string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.scene.CharacterName = name
	q.push(EventCharacterName, name)
}

func (q *EventQueue) ShowRevealedText(text string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.scene.Text = text
}

func (q *EventQueue) PresentChoices(labels []string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.scene.Choices = append([]string(nil), labels...)
	q.push(EventChoices, q.scene.Choices)
}

func (q *EventQueue) HideChoices() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.scene.Choices = nil
	q.push(EventChoicesHidden, nil)
}

func (q *EventQueue) ShowEnding(name string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.scene.Ending = name
	q.scene.EndingShown = true
	q.push(EventEnding, name)
}

func (q *EventQueue) HideEnding() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.scene.Ending = ""
	q.scene.EndingShown = false
	q.push(EventEndingHidden, nil)
}

func (q *EventQueue) SetBgm(clip string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if clip == q.scene.Bgm {
		return
	}
	q.scene.Bgm = clip
	q.push(EventBgm, clip)
}

// Scene returns a copy of the current scene.
func (q *EventQueue) Scene() Scene {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.scene
	out.Choices = append([]string(nil), q.scene.Choices...)
	return out
}

// ConsumePendingMessages drains the queued events.
func (q *EventQueue) ConsumePendingMessages() []OutboundMessage {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}
