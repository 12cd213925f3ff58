package story

// Substitution tokens recognised by the session when displaying messages.
const (
	// NamePlaceholder stands for the player-chosen protagonist name inside message content.
	NamePlaceholder = "[name]"
	// ProtagonistLiteral stands for the protagonist inside a character name.
	ProtagonistLiteral = "Protagonist"
)

// SeedRoot is the start chapter of the built-in story.
const SeedRoot ChapterID = "prologue"

// SeedChapters defines the built-in demo story.
func SeedChapters() []*Chapter {
	return []*Chapter{
		// Opening - single branch, advances silently
		{
			ID:              "prologue",
			BackgroundImage: "bg/platform-dawn.png",
			BackgroundMusic: "bgm/morning.ogg",
			Messages: []Message{
				{CharacterName: "Narrator", Content: "The last train of the night pulls into an empty platform."},
				{CharacterName: ProtagonistLiteral, Content: "I'm [name]. I was supposed to get off three stops ago.", CharacterImage: "chara/protagonist.png"},
			},
			NextBranches: []Branch{
				{Chapter: "station"},
			},
		},

		// First real choice point
		{
			ID:              "station",
			BackgroundImage: "bg/station-hall.png",
			BackgroundMusic: "bgm/morning.ogg",
			Messages: []Message{
				{CharacterName: "Station Master", Content: "Lost, [name]? Nobody comes here by accident.", CharacterImage: "chara/master.png"},
				{CharacterName: "Station Master", Content: "The market, the archive, or the harbor. Pick one before the lights go out.", CharacterImage: "chara/master.png"},
			},
			NextBranches: []Branch{
				{Chapter: "market", ChoiceMessage: "Follow the smell of bread to the market"},
				{Chapter: "archive", ChoiceMessage: "Climb the stairs to the archive"},
				{Chapter: "harbor", ChoiceMessage: "Walk down to the harbor"},
			},
		},

		{
			ID:              "market",
			BackgroundImage: "bg/market.png",
			BackgroundMusic: "bgm/market.ogg",
			Messages: []Message{
				{CharacterName: "Baker", Content: "Fresh loaves! Oh, a traveller. Take one, [name], it's on the house.", CharacterImage: "chara/baker.png"},
				{CharacterName: ProtagonistLiteral, Content: "Warm bread at midnight. This town keeps strange hours."},
			},
			NextBranches: []Branch{
				{Chapter: "crossroads"},
			},
		},

		{
			ID:              "archive",
			BackgroundImage: "bg/archive.png",
			BackgroundMusic: "bgm/archive.ogg",
			Messages: []Message{
				{CharacterName: "Archivist", Content: "Every passenger who ever missed their stop is written here.", CharacterImage: "chara/archivist.png"},
				{CharacterName: "Archivist", Content: "Your page is still blank, [name]. Will you write it or read the others?", CharacterImage: "chara/archivist.png"},
			},
			NextBranches: []Branch{
				{Chapter: "crossroads", ChoiceMessage: "Close the book and go outside"},
				{Chapter: "ending.scholar", ChoiceMessage: "Start reading"},
			},
		},

		{
			ID:              "harbor",
			BackgroundImage: "bg/harbor.png",
			BackgroundMusic: "bgm/waves.ogg",
			EndingName:      "Departure by Sea",
			Messages: []Message{
				{CharacterName: "Ferryman", Content: "One seat left. It was always yours, [name].", CharacterImage: "chara/ferryman.png"},
				{CharacterName: ProtagonistLiteral, Content: "The town shrinks behind the boat until it is a single light."},
			},
		},

		// Four-way choice
		{
			ID:              "crossroads",
			BackgroundImage: "bg/crossroads.png",
			BackgroundMusic: "bgm/night.ogg",
			Messages: []Message{
				{CharacterName: ProtagonistLiteral, Content: "Four roads, four signposts, none of them in a language I know."},
			},
			NextBranches: []Branch{
				{Chapter: "ending.home", ChoiceMessage: "North, toward the mountains"},
				{Chapter: "ending.scholar", ChoiceMessage: "East, back to the archive"},
				{Chapter: "station", ChoiceMessage: "South, back to the station"},
				{Chapter: "harbor", ChoiceMessage: "West, toward the sea"},
			},
		},

		{
			ID:              "ending.home",
			BackgroundImage: "bg/mountains.png",
			BackgroundMusic: "bgm/ending.ogg",
			EndingName:      "The Long Way Home",
			Messages: []Message{
				{CharacterName: "Narrator", Content: "By sunrise, [name] can see the roof of a familiar house."},
			},
		},

		{
			ID:              "ending.scholar",
			BackgroundImage: "bg/archive.png",
			BackgroundMusic: "bgm/ending.ogg",
			EndingName:      "A Page of One's Own",
			Messages: []Message{
				{CharacterName: "Archivist", Content: "Another reader who stayed. Welcome, [name].", CharacterImage: "chara/archivist.png"},
				{CharacterName: "Narrator", Content: "The train never came back. Nobody minded."},
			},
		},
	}
}
