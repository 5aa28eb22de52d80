// Package tui is the terminal presentation: a setup wizard that measures
// reading speed, and a verse-by-verse reader with a book picker and search.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/versepace/versepace/internal/search"
	"github.com/versepace/versepace/internal/service"
)

type screen int

const (
	screenMinutes screen = iota
	screenDays
	screenIntro
	screenCountdown
	screenSample
	screenResults
	screenReading
	screenBooks
	screenSearch
)

// Searcher finds verses for the search screen.
type Searcher interface {
	SearchWithParams(ctx context.Context, params search.SearchParams) (*search.SearchResult, error)
}

// Model is the Bubble Tea model for a reading session.
type Model struct {
	ctx      context.Context
	svc      *service.ReadingService
	sess     *service.Session
	searcher Searcher // nil when search is disabled
	now      func() time.Time

	screen        screen
	width, height int
	styles        styles
	theme         string
	fontSize      string
	err           error
	notice        string

	// Wizard
	input       string
	minutes     int
	introIdx    int
	tickSeq     int // Ignores ticks scheduled before the user skipped ahead
	countdown   int
	sampleStart time.Time
	result      *service.SampleResult

	// Book picker
	books      []service.BookProgress
	bookCursor int
	bookOffset int

	// Search
	query         string
	searchedQuery string // Query the hits on screen belong to
	hits          []search.Hit
	hitCursor     int
	searching     bool
	searchTotal   uint64
}

// Option configures a Model.
type Option func(*Model)

// WithSearcher enables the search screen.
func WithSearcher(s Searcher) Option {
	return func(m *Model) {
		m.searcher = s
	}
}

// WithClock replaces time.Now for the timed sample.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// New creates the model for an already started session. A session without
// a measured speed begins with the setup wizard; otherwise it goes straight
// to the reader, or to the book picker when no book is open.
func New(ctx context.Context, svc *service.ReadingService, sess *service.Session, opts ...Option) Model {
	m := Model{
		ctx:      ctx,
		svc:      svc,
		sess:     sess,
		now:      time.Now,
		width:    80,
		height:   24,
		theme:    ThemeDark,
		fontSize: FontNormal,
	}
	for _, opt := range opts {
		opt(&m)
	}

	sum := svc.Summary(sess)
	if sum.Theme != "" {
		m.theme = sum.Theme
	}
	if sum.FontSize != "" {
		m.fontSize = sum.FontSize
	}
	m.styles = newStyles(m.theme)

	switch {
	case sum.Pace.Speed <= 0:
		m.screen = screenMinutes
	case sum.BookOpen:
		m.screen = screenReading
	default:
		m.openBooks()
	}
	return m
}

// Run starts the program on the alternate screen and blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case introTickMsg:
		return m.onIntroTick(msg)

	case countdownTickMsg:
		return m.onCountdownTick(msg)

	case searchResultMsg:
		return m.onSearchResult(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.notice = ""

		switch m.screen {
		case screenMinutes, screenDays:
			return m.updateSetup(msg)
		case screenIntro:
			return m.updateIntro(msg)
		case screenCountdown:
			return m, nil
		case screenSample:
			return m.updateSample(msg)
		case screenResults:
			return m.updateResults(msg)
		case screenReading:
			return m.updateReading(msg)
		case screenBooks:
			return m.updateBooks(msg)
		case screenSearch:
			return m.updateSearch(msg)
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.screen {
	case screenMinutes, screenDays:
		body = m.viewSetup()
	case screenIntro:
		body = m.viewIntro()
	case screenCountdown:
		body = m.viewCountdown()
	case screenSample:
		body = m.viewSample()
	case screenResults:
		body = m.viewResults()
	case screenReading:
		body = m.viewReading()
	case screenBooks:
		body = m.viewBooks()
	case screenSearch:
		body = m.viewSearch()
	}

	if m.err != nil {
		body += "\n\n" + m.styles.err.Render("Erro: "+m.err.Error())
	}
	return body
}
