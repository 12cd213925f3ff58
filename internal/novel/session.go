package novel

import (
	"errors"
	"fmt"
	"log"

	"NovelEngine/internal/story"
	"NovelEngine/internal/typewriter"
)

var (
	// ErrNoGraph is returned when a session is created without a chapter graph.
	ErrNoGraph = errors.New("novel: no chapter graph")
	// ErrUnexpectedBranchCount is reported when a chapter ends with an unsupported number of branches.
	ErrUnexpectedBranchCount = errors.New("novel: unexpected number of next chapters")
	// ErrChoiceOutOfRange is reported when a selected choice doesn't exist.
	ErrChoiceOutOfRange = errors.New("novel: choice out of range")
	// ErrNoChoicePending is reported when a choice is selected while none is offered.
	ErrNoChoicePending = errors.New("novel: no choice pending")
)

// Options configures a Session. Zero values fall back to no-op collaborators.
type Options struct {
	Presenter      Presenter
	Pause          PauseGate
	Name           *PlayerName
	RevealInterval float64 // Seconds per character; <= 0 uses typewriter.DefaultInterval
	Logger         *log.Logger
	Debug          bool
}

// Session is one playthrough: the current chapter, the message cursor, the
// reveal in progress and the runtime history of how chapters were entered.
// It is the only thing allowed to move those cursors. Session is not safe for
// concurrent use; callers serialize access (see Playthrough).
type Session struct {
	graph     *story.Graph
	presenter Presenter
	pause     PauseGate
	name      *PlayerName
	logger    *log.Logger
	debug     bool
	seq       *typewriter.Sequencer

	current   *story.Chapter
	index     int
	backLinks map[story.ChapterID]story.ChapterID // chapter -> chapter it was last entered from
	choices   []story.Branch                      // branches as offered; nil when no choice is pending
	ending    bool
}

// NewSession creates a session positioned nowhere; call Begin to show the root.
func NewSession(graph *story.Graph, opts Options) (*Session, error) {
	if graph == nil || graph.RootChapter() == nil {
		return nil, ErrNoGraph
	}
	s := &Session{
		graph:     graph,
		presenter: opts.Presenter,
		pause:     opts.Pause,
		name:      opts.Name,
		logger:    opts.Logger,
		debug:     opts.Debug,
	}
	if s.presenter == nil {
		s.presenter = NoOpPresenter{}
	}
	if s.name == nil {
		s.name = NewPlayerName(DefaultPlayerName)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.seq = typewriter.New(opts.RevealInterval, s.presenter)
	s.resetHistory()
	return s, nil
}

// Begin shows the first message of the root chapter.
func (s *Session) Begin() {
	s.enterChapter(s.graph.RootChapter(), true)
}

// Tick advances the reveal in progress by dt seconds.
func (s *Session) Tick(dt float64) {
	s.seq.Tick(dt)
}

// OnAdvanceRequested handles a "continue" input. A reveal in progress is
// skipped instead of advancing; otherwise the next message is shown or the
// chapter's branches are resolved.
func (s *Session) OnAdvanceRequested() {
	if s.pause != nil && s.pause.IsPaused() {
		return
	}
	if s.current == nil || s.ending {
		return
	}
	if !s.seq.IsFinished() {
		s.seq.RequestSkip()
		return
	}
	if s.choices != nil {
		s.debugf("[story] advance ignored: waiting for a choice in chapter %s", s.current.ID)
		return
	}
	if s.index < s.current.LastIndex() {
		s.index++
		s.showMessage()
		return
	}
	_ = s.resolveNextChapter()
}

// resolveNextChapter decides what happens after the chapter's last message.
func (s *Session) resolveNextChapter() error {
	branches := s.current.NextBranches
	switch n := len(branches); {
	case n == 0:
		s.ending = true
		s.logger.Printf("[story] reached ending %q in chapter %s", s.current.EndingName, s.current.ID)
		s.presenter.ShowEnding(s.current.EndingName)
	case n == 1:
		next := s.graph.GetChapter(branches[0].Chapter)
		if next == nil {
			return s.report(fmt.Errorf("%w: chapter %s branch 0 targets %s", story.ErrChapterNotFound, s.current.ID, branches[0].Chapter))
		}
		s.enterChapter(next, false)
	case n >= MinChoices && n <= MaxChoices:
		s.choices = append([]story.Branch(nil), branches...)
		labels := make([]string, n)
		for i, br := range s.choices {
			labels[i] = br.ChoiceMessage
		}
		s.presenter.PresentChoices(labels)
	default:
		return s.report(fmt.Errorf("%w: chapter %s has %d", ErrUnexpectedBranchCount, s.current.ID, n))
	}
	return nil
}

// SelectBranch resolves a pending choice. On error nothing changes.
func (s *Session) SelectBranch(index int) error {
	if s.choices == nil {
		return s.report(ErrNoChoicePending)
	}
	if index < 0 || index >= len(s.choices) {
		return s.report(fmt.Errorf("%w: %d of %d in chapter %s", ErrChoiceOutOfRange, index, len(s.choices), s.current.ID))
	}
	br := s.choices[index]
	next := s.graph.GetChapter(br.Chapter)
	if next == nil {
		return s.report(fmt.Errorf("%w: choice %d targets %s", story.ErrChapterNotFound, index, br.Chapter))
	}
	s.enterChapter(next, false)
	return nil
}

// enterChapter makes ch current. Forward transitions record where ch was
// entered from; back transitions leave history untouched.
func (s *Session) enterChapter(ch *story.Chapter, back bool) {
	from := s.current
	s.index = 0
	if !back && from != nil && from.ID != ch.ID && !s.isRootSentinel(ch.ID) {
		s.backLinks[ch.ID] = from.ID
	}
	s.current = ch

	if s.choices != nil {
		s.choices = nil
		s.presenter.HideChoices()
	}
	if s.ending {
		s.ending = false
		s.presenter.HideEnding()
	}

	if ch.BackgroundMusic == "" {
		s.logger.Printf("[story] chapter %s has no background music (keeping previous)", ch.ID)
	} else {
		s.presenter.SetBgm(ch.BackgroundMusic)
	}
	s.showMessage()
}

func (s *Session) showMessage() {
	msg := s.current.Messages[s.index]
	name := s.name.Get()

	if s.current.BackgroundImage == "" {
		s.logger.Printf("[story] chapter %s has no background image (keeping previous)", s.current.ID)
	} else {
		s.presenter.ShowBackground(s.current.BackgroundImage)
	}
	if msg.CharacterImage == "" {
		s.debugf("[story] chapter %s message %d has no character image (keeping previous)", s.current.ID, s.index)
	} else {
		s.presenter.ShowCharacter(msg.CharacterImage)
	}

	s.presenter.ShowCharacterName(SubstituteSpeaker(msg.CharacterName, name))
	s.seq.Start(Substitute(msg.Content, name))
}

func (s *Session) report(err error) error {
	s.logger.Printf("[story] %v", err)
	return err
}

func (s *Session) debugf(format string, args ...interface{}) {
	if s.debug {
		s.logger.Printf(format, args...)
	}
}

// CurrentChapter returns the chapter being played.
func (s *Session) CurrentChapter() *story.Chapter {
	return s.current
}

// MessageIndex returns the index of the message being shown.
func (s *Session) MessageIndex() int {
	return s.index
}

// ChoicesPending reports whether the player must pick a branch.
func (s *Session) ChoicesPending() bool {
	return s.choices != nil
}

// EndingShown reports whether the ending screen is up.
func (s *Session) EndingShown() bool {
	return s.ending
}

// Sequencer exposes the reveal state machine.
func (s *Session) Sequencer() *typewriter.Sequencer {
	return s.seq
}

// PlayerName returns the name provider used for substitution.
func (s *Session) PlayerName() *PlayerName {
	return s.name
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ChapterID       story.ChapterID
	PreviousChapter story.ChapterID
	MessageIndex    int
	Text            string
	Reveal          typewriter.State
	Choices         []string
	EndingShown     bool
	EndingName      string
	Paused          bool
}

// Snapshot captures the current cursors for transports and tests.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		MessageIndex: s.index,
		Text:         s.seq.Text(),
		Reveal:       s.seq.State(),
		EndingShown:  s.ending,
		Paused:       s.pause != nil && s.pause.IsPaused(),
	}
	if s.current != nil {
		snap.ChapterID = s.current.ID
		snap.PreviousChapter, _ = s.PreviousChapter(s.current.ID)
		if s.ending {
			snap.EndingName = s.current.EndingName
		}
	}
	for _, br := range s.choices {
		snap.Choices = append(snap.Choices, br.ChoiceMessage)
	}
	return snap
}
