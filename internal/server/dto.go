package server

import (
	"encoding/json"

	"NovelEngine/internal/novel"
)

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Index *int `json:"index"`
}

type namePayload struct {
	Name string `json:"name"`
}

type sessionPayload struct {
	ID         string `json:"id"`
	Reattached bool   `json:"reattached"`
}

// stateMsg is the periodic view of one playthrough pushed to its client.
type stateMsg struct {
	Type         string   `json:"type"`
	ID           string   `json:"id"`
	Now          float64  `json:"now"`
	Chapter      string   `json:"chapter"`
	Previous     string   `json:"previous"`
	MessageIndex int      `json:"message_index"`
	Text         string   `json:"text"`
	Reveal       string   `json:"reveal"`
	Choices      []string `json:"choices,omitempty"`
	EndingShown  bool     `json:"ending_shown"`
	EndingName   string   `json:"ending_name,omitempty"`
	Paused       bool     `json:"paused"`
	PlayerName   string   `json:"player_name"`
	Scene        sceneDTO `json:"scene"`
}

type sceneDTO struct {
	Background    string `json:"background"`
	Character     string `json:"character"`
	CharacterName string `json:"character_name"`
	Bgm           string `json:"bgm"`
}

// buildStateMsgLocked expects p.Mu to be held.
func buildStateMsgLocked(p *novel.Playthrough) stateMsg {
	snap := p.Session.Snapshot()
	scene := p.Events.Scene()
	return stateMsg{
		Type:         "state",
		ID:           p.ID,
		Now:          p.Now,
		Chapter:      string(snap.ChapterID),
		Previous:     string(snap.PreviousChapter),
		MessageIndex: snap.MessageIndex,
		Text:         snap.Text,
		Reveal:       snap.Reveal.String(),
		Choices:      snap.Choices,
		EndingShown:  snap.EndingShown,
		EndingName:   snap.EndingName,
		Paused:       snap.Paused,
		PlayerName:   p.Name.Get(),
		Scene: sceneDTO{
			Background:    scene.Background,
			Character:     scene.Character,
			CharacterName: scene.CharacterName,
			Bgm:           scene.Bgm,
		},
	}
}
