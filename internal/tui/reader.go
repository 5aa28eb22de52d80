package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/versepace/versepace/internal/domain"
	"github.com/versepace/versepace/internal/progress"
	"github.com/versepace/versepace/internal/search"
	"github.com/versepace/versepace/internal/service"
)

const searchLimit = 50

type searchResultMsg struct {
	query  string
	result *search.SearchResult
	err    error
}

func (m Model) updateReading(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "right", "l", " ", "enter":
		return m.move(m.svc.Advance, domain.StepVerse, "fim do livro")
	case "left", "h":
		return m.move(m.svc.Retreat, domain.StepVerse, "início do livro")
	case "n":
		return m.move(m.svc.Advance, domain.StepChapter, "último capítulo")
	case "p":
		return m.move(m.svc.Retreat, domain.StepChapter, "primeiro capítulo")
	case "b":
		m.openBooks()
	case "/":
		if m.searcher == nil {
			m.notice = "busca desativada"
			return m, nil
		}
		m.screen = screenSearch
		m.query = ""
		m.searchedQuery = ""
		m.hits = nil
		m.hitCursor = 0
	case "t":
		theme := ThemeLight
		if m.theme == ThemeLight {
			theme = ThemeDark
		}
		return m.setPreferences(theme, "")
	case "+", "=":
		return m.setPreferences("", nextFontSize(m.fontSize, 1))
	case "-":
		return m.setPreferences("", nextFontSize(m.fontSize, -1))
	case "s":
		return m.startWizard(), nil
	}
	return m, nil
}

type moveFunc func(ctx context.Context, sess *service.Session, step domain.Step) (progress.Move, error)

// move applies one cursor step; edge is shown when the cursor is already
// at the boundary.
func (m Model) move(fn moveFunc, step domain.Step, edge string) (tea.Model, tea.Cmd) {
	mv, err := fn(m.ctx, m.sess, step)
	m.err = err
	if err == nil && !mv.Moved {
		m.notice = edge
	}
	return m, nil
}

func (m Model) setPreferences(theme, fontSize string) (tea.Model, tea.Cmd) {
	req := service.PreferencesRequest{Theme: theme, FontSize: fontSize}
	if err := m.svc.SetPreferences(m.ctx, m.sess, req); err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	if theme != "" {
		m.theme = theme
		m.styles = newStyles(theme)
	}
	if fontSize != "" {
		m.fontSize = fontSize
	}
	return m, nil
}

func (m Model) viewReading() string {
	sum := m.svc.Summary(m.sess)

	var b strings.Builder
	b.WriteString(m.styles.title.Render(fmt.Sprintf("%s %d", sum.BookName, sum.ChapterNumber)))
	b.WriteString("\n")
	verse := m.styles.number.Render(fmt.Sprintf("%d", sum.VerseNumber)) + " " + sum.VerseText
	b.WriteString(m.styles.verseBlock(verse, m.fontSize, m.width))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("livro %.1f%%  total %.2f%%  hoje %.0f%%  semana %.0f%%",
		sum.BookPercent, sum.OverallPercent, sum.DailyPercent, sum.WeeklyPercent)
	if sum.Estimate.Determined {
		stats += fmt.Sprintf("  término %s", sum.Estimate.ProjectedDate.Format(dateLayout))
	}
	b.WriteString(m.styles.status.Render(stats))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(m.styles.muted.Render(m.notice) + "\n")
	}
	b.WriteString(m.styles.muted.Render("←/→ verso  n/p capítulo  b livros  / busca  t tema  +/- fonte  s velocidade  q sair"))
	return b.String()
}

// openBooks switches to the book picker with the current book selected.
func (m *Model) openBooks() {
	m.books = m.svc.Books(m.sess)
	m.bookCursor = 0
	if c, ok := m.sess.Cursor(); ok {
		m.bookCursor = c.Book
	}
	m.screen = screenBooks
	m.scrollBooks()
}

func (m *Model) scrollBooks() {
	visible := m.listHeight()
	if m.bookCursor < m.bookOffset {
		m.bookOffset = m.bookCursor
	}
	if m.bookCursor >= m.bookOffset+visible {
		m.bookOffset = m.bookCursor - visible + 1
	}
}

func (m Model) listHeight() int {
	return max(3, m.height-6)
}

func (m Model) updateBooks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.bookCursor > 0 {
			m.bookCursor--
		}
	case "down", "j":
		if m.bookCursor < len(m.books)-1 {
			m.bookCursor++
		}
	case "pgup":
		m.bookCursor = max(0, m.bookCursor-m.listHeight())
	case "pgdown":
		m.bookCursor = max(0, min(len(m.books)-1, m.bookCursor+m.listHeight()))
	case "enter":
		if len(m.books) == 0 {
			return m, nil
		}
		if _, err := m.svc.OpenBook(m.ctx, m.sess, m.books[m.bookCursor].Index); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.screen = screenReading
		return m, nil
	case "esc":
		if m.sess.BookOpen() {
			m.screen = screenReading
			return m, nil
		}
		return m, tea.Quit
	case "q":
		return m, tea.Quit
	}
	m.scrollBooks()
	return m, nil
}

func (m Model) viewBooks() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Livros"))
	b.WriteString("\n")

	if len(m.books) == 0 {
		b.WriteString(m.styles.muted.Render("nenhum livro encontrado no texto"))
		return b.String()
	}

	end := min(len(m.books), m.bookOffset+m.listHeight())
	for i := m.bookOffset; i < end; i++ {
		bk := m.books[i]
		line := fmt.Sprintf("%-18s %3d cap.  %5.1f%%", bk.Name, bk.Chapters, bk.Percent)
		if i == m.bookCursor {
			b.WriteString(m.styles.selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.item.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render("↑/↓ escolher  enter abrir  esc voltar"))
	return b.String()
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = screenReading
		if !m.sess.BookOpen() {
			m.openBooks()
		}
		return m, nil
	case tea.KeyUp:
		if m.hitCursor > 0 {
			m.hitCursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.hitCursor < len(m.hits)-1 {
			m.hitCursor++
		}
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeyEnter:
		return m.submitSearch()
	case tea.KeySpace:
		m.query += " "
		return m, nil
	case tea.KeyRunes:
		m.query += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

// submitSearch runs the query, or seeks to the selected hit when the results
// on screen are for the query as typed.
func (m Model) submitSearch() (tea.Model, tea.Cmd) {
	q := strings.TrimSpace(m.query)
	if len(m.hits) > 0 && q == m.searchedQuery {
		if _, err := m.svc.Seek(m.ctx, m.sess, m.hits[m.hitCursor].Cursor); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.screen = screenReading
		return m, nil
	}
	if q == "" {
		return m, nil
	}

	m.searching = true
	return m, m.runSearch(q)
}

func (m Model) runSearch(q string) tea.Cmd {
	ctx, searcher := m.ctx, m.searcher
	return func() tea.Msg {
		params := search.DefaultSearchParams()
		params.Query = q
		params.Limit = searchLimit
		params.HighlightStyle = search.HighlightANSI
		result, err := searcher.SearchWithParams(ctx, params)
		return searchResultMsg{query: q, result: result, err: err}
	}
}

func (m Model) onSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	m.searching = false
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	m.err = nil
	m.hits = msg.result.Hits
	m.searchTotal = msg.result.Total
	m.hitCursor = 0
	m.searchedQuery = msg.query
	return m, nil
}

func (m Model) viewSearch() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Busca"))
	b.WriteString("\n")
	b.WriteString(m.styles.dialog.Render(m.query + "_"))
	b.WriteString("\n\n")

	switch {
	case m.searching:
		b.WriteString(m.styles.muted.Render("buscando..."))
		b.WriteString("\n")
	case len(m.hits) == 0 && m.searchedQuery != "":
		b.WriteString(m.styles.muted.Render("nenhum versículo encontrado"))
		b.WriteString("\n")
	case len(m.hits) > 0:
		b.WriteString(m.styles.muted.Render(fmt.Sprintf("%d resultados", m.searchTotal)))
		b.WriteString("\n")
	}

	end := min(len(m.hits), m.listHeight()-4)
	for i := 0; i < end; i++ {
		hit := m.hits[i]
		text := hit.Fragment
		if text == "" {
			text = hit.Text
		}
		ref := fmt.Sprintf("%-16s", hit.Reference)
		if i == m.hitCursor {
			ref = m.styles.selected.Render("> " + ref)
		} else {
			ref = "  " + m.styles.number.Render(ref)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, ref, " ", text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render("enter buscar/abrir  ↑/↓ escolher  esc voltar"))
	return b.String()
}
