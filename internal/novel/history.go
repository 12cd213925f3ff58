package novel

import "NovelEngine/internal/story"

// History is kept as one back-link per chapter rather than a stack: entering a
// chapter again overwrites the route it was reached by, so only the most
// recent route through any chapter survives.

func (s *Session) resetHistory() {
	root := s.graph.Root
	s.backLinks = map[story.ChapterID]story.ChapterID{root: root}
}

// PreviousChapter returns the chapter id was most recently entered from.
func (s *Session) PreviousChapter(id story.ChapterID) (story.ChapterID, bool) {
	prev, ok := s.backLinks[id]
	return prev, ok
}

// isRootSentinel reports whether id links back to itself, marking the start of the story.
func (s *Session) isRootSentinel(id story.ChapterID) bool {
	prev, ok := s.backLinks[id]
	return ok && prev == id
}

// GoBack returns to the most recent chapter that offered a real choice, or to
// the root. The reveal in progress and any queued behind it are dropped and the text cleared. It
// reports false and changes nothing when the history chain is malformed.
func (s *Session) GoBack() bool {
	target, ok := s.backTarget()
	if !ok {
		s.debugf("[story] go back ignored: no usable history from chapter %s", s.currentID())
		return false
	}
	s.seq.Cancel()
	s.enterChapter(target, true)
	return true
}

// backTarget walks back-links starting at the current chapter's predecessor,
// skipping chapters with fewer than two branches.
func (s *Session) backTarget() (*story.Chapter, bool) {
	if s.current == nil {
		return nil, false
	}
	prevID, ok := s.backLinks[s.current.ID]
	if !ok {
		return nil, false
	}
	candidate := s.graph.GetChapter(prevID)
	if candidate == nil {
		return nil, false
	}

	for steps := 0; steps <= len(s.graph.Chapters); steps++ {
		if len(candidate.NextBranches) >= MinChoices || s.isRootSentinel(candidate.ID) {
			return candidate, true
		}
		nextID, ok := s.backLinks[candidate.ID]
		if !ok {
			return candidate, true // chain exhausted
		}
		next := s.graph.GetChapter(nextID)
		if next == nil {
			return candidate, true
		}
		candidate = next
	}
	// cycle with no choice point and no root
	return nil, false
}

// Restart walks back to the root sentinel and enters it as a fresh start.
// All runtime history except the sentinel is discarded. If the back-links no
// longer lead to a sentinel (a later route overwrote them into a loop) the
// graph's root is used.
func (s *Session) Restart() bool {
	if s.current == nil {
		return false
	}
	root, ok := s.rootTarget()
	if !ok {
		s.debugf("[story] restart: no sentinel reachable from chapter %s, using graph root", s.current.ID)
		root = s.graph.RootChapter()
	}
	s.seq.Cancel()
	s.backLinks = map[story.ChapterID]story.ChapterID{root.ID: root.ID}
	s.enterChapter(root, false)
	return true
}

func (s *Session) rootTarget() (*story.Chapter, bool) {
	id := s.current.ID
	for steps := 0; steps <= len(s.graph.Chapters); steps++ {
		prev, ok := s.backLinks[id]
		if !ok {
			return nil, false
		}
		if prev == id {
			ch := s.graph.GetChapter(id)
			return ch, ch != nil
		}
		id = prev
	}
	return nil, false
}

func (s *Session) currentID() story.ChapterID {
	if s.current == nil {
		return ""
	}
	return s.current.ID
}
