package novel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueueTracksScene(t *testing.T) {
	q := NewEventQueue()
	q.ShowBackground("bg/a.png")
	q.ShowCharacter("chara/a.png")
	q.ShowCharacterName("Guide")
	q.ShowRevealedText("Hel")
	q.PresentChoices([]string{"left", "right"})

	scene := q.Scene()
	assert.Equal(t, "bg/a.png", scene.Background)
	assert.Equal(t, "chara/a.png", scene.Character)
	assert.Equal(t, "Guide", scene.CharacterName)
	assert.Equal(t, "Hel", scene.Text)
	assert.Equal(t, []string{"left", "right"}, scene.Choices)

	msgs := q.ConsumePendingMessages()
	assert.Equal(t, []string{EventBackground, EventCharacter, EventCharacterName, EventChoices}, eventTypes(msgs),
		"revealed text is not queued")
	assert.Nil(t, q.ConsumePendingMessages())

	q.HideChoices()
	q.ShowEnding("Fin")
	assert.True(t, q.Scene().EndingShown)
	q.HideEnding()
	scene = q.Scene()
	assert.Empty(t, scene.Choices)
	assert.False(t, scene.EndingShown)
	assert.Empty(t, scene.Ending)
	assert.Equal(t, []string{EventChoicesHidden, EventEnding, EventEndingHidden}, eventTypes(q.ConsumePendingMessages()))
}

func TestEventQueueDedupsBgm(t *testing.T) {
	q := NewEventQueue()
	q.SetBgm("bgm/a.ogg")
	q.SetBgm("bgm/a.ogg")
	q.SetBgm("bgm/b.ogg")

	msgs := q.ConsumePendingMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "bgm/a.ogg", msgs[0].Payload)
	assert.Equal(t, "bgm/b.ogg", msgs[1].Payload)
}

func TestSceneIsACopy(t *testing.T) {
	q := NewEventQueue()
	q.PresentChoices([]string{"one", "two"})
	scene := q.Scene()
	scene.Choices[0] = "changed"
	assert.Equal(t, "one", q.Scene().Choices[0])
}
