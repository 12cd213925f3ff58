package novel

import (
	"strings"

	"NovelEngine/internal/story"
)

// Substitute replaces every name placeholder in content with name.
func Substitute(content, name string) string {
	return strings.ReplaceAll(content, story.NamePlaceholder, name)
}

// SubstituteSpeaker replaces the protagonist literal in a character name with name.
func SubstituteSpeaker(characterName, name string) string {
	return strings.ReplaceAll(characterName, story.ProtagonistLiteral, name)
}
