package story

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStory = `
root: gate
chapters:
  - id: gate
    background_image: bg/gate.png
    background_music: bgm/gate.ogg
    messages:
      - character_name: Protagonist
        content: "[name] stands at the gate."
        character_image: chara/me.png
    next_branches:
      - chapter: left
        choice_message: Go left
      - chapter: right
        choice_message: Go right
  - id: left
    ending_name: Left Behind
    messages:
      - character_name: Narrator
        content: The end.
  - id: right
    ending_name: Right On
    messages:
      - character_name: Narrator
        content: Also the end.
`

func TestParseStory(t *testing.T) {
	root, chapters, err := Parse([]byte(sampleStory))
	require.NoError(t, err)
	assert.Equal(t, ChapterID("gate"), root)
	require.Len(t, chapters, 3)

	gate := chapters[0]
	assert.Equal(t, "bg/gate.png", gate.BackgroundImage)
	assert.Equal(t, "chara/me.png", gate.Messages[0].CharacterImage)
	assert.Equal(t, []Branch{{Chapter: "left", ChoiceMessage: "Go left"}, {Chapter: "right", ChoiceMessage: "Go right"}}, gate.NextBranches)

	g, err := NewGraph(root, chapters)
	require.NoError(t, err)
	assert.Len(t, g.Endings(), 2)
}

func TestParseStoryErrors(t *testing.T) {
	_, _, err := Parse([]byte("chapters: []\n"))
	assert.ErrorIs(t, err, ErrNoRoot)

	_, _, err = Parse([]byte("root: a\nchapters:\n  - id: a\n    colour: red\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleStory), 0o644))

	root, chapters, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ChapterID("gate"), root)
	assert.Len(t, chapters, 3)

	_, _, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
