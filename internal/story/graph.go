// Package story holds the static chapter graph of a branching visual novel.
//
// Chapters, branches and messages are immutable content validated at boot time.
// Runtime history (which chapter a playthrough entered another from) is not
// stored here; it lives in the per-playthrough session.
package story

import (
	"errors"
	"fmt"
)

// ChapterID uniquely identifies a chapter in the graph.
type ChapterID string

// Message is one line of dialogue.
type Message struct {
	CharacterName  string `json:"character_name" yaml:"character_name"`
	Content        string `json:"content" yaml:"content"`
	CharacterImage string `json:"character_image,omitempty" yaml:"character_image,omitempty"` // Empty = keep previous image
}

// Branch is an edge to a successor chapter.
type Branch struct {
	Chapter       ChapterID `json:"chapter" yaml:"chapter"`
	ChoiceMessage string    `json:"choice_message" yaml:"choice_message"` // Label shown when several branches are offered
}

// Chapter is a node in the narrative graph.
type Chapter struct {
	ID              ChapterID `json:"id" yaml:"id"`
	Messages        []Message `json:"messages" yaml:"messages"`
	NextBranches    []Branch  `json:"next_branches" yaml:"next_branches"` // 0 = ending, 1 = auto-advance, 2-4 = player choice
	BackgroundImage string    `json:"background_image,omitempty" yaml:"background_image,omitempty"`
	BackgroundMusic string    `json:"background_music,omitempty" yaml:"background_music,omitempty"`
	EndingName      string    `json:"ending_name,omitempty" yaml:"ending_name,omitempty"` // Only used when NextBranches is empty
}

// LastIndex returns the index of the chapter's final message.
func (c *Chapter) LastIndex() int {
	return len(c.Messages) - 1
}

// IsEnding reports whether the chapter terminates the story.
func (c *Chapter) IsEnding() bool {
	return len(c.NextBranches) == 0
}

// Graph is the complete chapter graph.
type Graph struct {
	Chapters map[ChapterID]*Chapter
	Root     ChapterID
	Order    []ChapterID // Authoring order
}

var (
	// ErrChapterNotFound is returned when a referenced chapter doesn't exist.
	ErrChapterNotFound = errors.New("story: chapter not found")
	// ErrDuplicateChapter is returned when two chapters share an ID.
	ErrDuplicateChapter = errors.New("story: duplicate chapter")
	// ErrEmptyChapter is returned when a chapter has no messages.
	ErrEmptyChapter = errors.New("story: chapter has no messages")
)

// defaultGraph is the singleton graph instance.
var defaultGraph *Graph

// NewGraph indexes and validates the chapters. The root must be one of them.
func NewGraph(root ChapterID, chapters []*Chapter) (*Graph, error) {
	g := &Graph{
		Chapters: make(map[ChapterID]*Chapter, len(chapters)),
		Root:     root,
	}

	for _, ch := range chapters {
		if ch == nil {
			continue
		}
		if _, exists := g.Chapters[ch.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateChapter, ch.ID)
		}
		if len(ch.Messages) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyChapter, ch.ID)
		}
		g.Chapters[ch.ID] = ch
		g.Order = append(g.Order, ch.ID)
	}

	if _, ok := g.Chapters[root]; !ok {
		return nil, fmt.Errorf("%w: root %s", ErrChapterNotFound, root)
	}

	for _, id := range g.Order {
		for i, br := range g.Chapters[id].NextBranches {
			if _, exists := g.Chapters[br.Chapter]; !exists {
				return nil, fmt.Errorf("%w: chapter %s branch %d targets %s", ErrChapterNotFound, id, i, br.Chapter)
			}
		}
	}

	return g, nil
}

// Init builds the global graph from the provided chapters.
func Init(root ChapterID, chapters []*Chapter) error {
	g, err := NewGraph(root, chapters)
	if err != nil {
		return err
	}
	defaultGraph = g
	return nil
}

// GetGraph returns the initialized global graph.
func GetGraph() *Graph {
	return defaultGraph
}

// GetChapter returns a chapter by ID, or nil if not found.
func (g *Graph) GetChapter(id ChapterID) *Chapter {
	return g.Chapters[id]
}

// RootChapter returns the distinguished start chapter.
func (g *Graph) RootChapter() *Chapter {
	return g.Chapters[g.Root]
}

// Reachable returns the chapters reachable from the root in breadth-first,
// branch order.
func (g *Graph) Reachable() []ChapterID {
	seen := map[ChapterID]bool{g.Root: true}
	queue := []ChapterID{g.Root}
	var order []ChapterID
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, curr)

		ch := g.Chapters[curr]
		if ch == nil {
			continue
		}
		for _, br := range ch.NextBranches {
			if !seen[br.Chapter] {
				seen[br.Chapter] = true
				queue = append(queue, br.Chapter)
			}
		}
	}
	return order
}

// Endings returns the ending chapters in authoring order.
func (g *Graph) Endings() []*Chapter {
	var out []*Chapter
	for _, id := range g.Order {
		if ch := g.Chapters[id]; ch.IsEnding() {
			out = append(out, ch)
		}
	}
	return out
}
