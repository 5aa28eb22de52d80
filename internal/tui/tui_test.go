package tui

import (
	"context"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versepace/versepace/internal/corpus"
	"github.com/versepace/versepace/internal/domain"
	"github.com/versepace/versepace/internal/errors"
	"github.com/versepace/versepace/internal/progress"
	"github.com/versepace/versepace/internal/search"
	"github.com/versepace/versepace/internal/service"
	"github.com/versepace/versepace/internal/store"
	"github.com/versepace/versepace/internal/validation"
)

const testCorpus = "»GENESIS[1]\n1 No princípio\n2 criou Deus\n" +
	"»GENESIS[2]\n1 os céus e a terra\n" +
	"»EXODO[1]\n1 Estes são os nomes"

// testClock is a settable clock shared by the model and the service.
type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

func setupModel(t *testing.T, opts ...Option) (Model, *service.ReadingService, *service.Session, *testClock) {
	t.Helper()

	kv, err := store.NewInMemory(slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	clock := &testClock{t: time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)}
	svc := service.NewReadingService(
		store.NewStateRepository(kv, slog.New(slog.DiscardHandler)),
		corpus.Parse(testCorpus),
		validation.New(),
		slog.New(slog.DiscardHandler),
		service.WithClock(clock.Now),
	)

	sess, err := svc.Start(context.Background())
	require.NoError(t, err)

	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return New(context.Background(), svc, sess, opts...), svc, sess, clock
}

// readyModel returns a model whose session already has a speed and an open
// book, so it starts on the reading screen.
func readyModel(t *testing.T, opts ...Option) (Model, *service.Session) {
	t.Helper()

	m, svc, sess, _ := setupModel(t)
	ctx := context.Background()
	require.NoError(t, svc.SetPace(ctx, sess, service.PaceRequest{DaysPerWeek: 5, MinutesPerDay: 30}))
	_, err := svc.RecordSample(ctx, sess, domain.SampleCharCount, time.Minute)
	require.NoError(t, err)
	_, err = svc.OpenBook(ctx, sess, 0)
	require.NoError(t, err)

	m = New(context.Background(), svc, sess, append([]Option{WithClock(m.now)}, opts...)...)
	require.Equal(t, screenReading, m.screen)
	return m, sess
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// send feeds msg to m and returns the updated model and command.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated, cmd
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = send(t, m, keyMsg(k))
	}
	return m
}

func TestWizard_FullFlow(t *testing.T) {
	m, _, sess, clock := setupModel(t)
	require.Equal(t, screenMinutes, m.screen)
	assert.Contains(t, m.View(), "Quantos minutos por dia?")

	m = press(t, m, "3", "x", "0", "enter")
	require.Equal(t, screenDays, m.screen)
	assert.Equal(t, 30, m.minutes)

	m = press(t, m, "5")
	m, cmd := send(t, m, keyMsg("enter"))
	require.Equal(t, screenIntro, m.screen)
	require.NotNil(t, cmd)
	assert.Equal(t, domain.PaceSettings{DaysPerWeek: 5, MinutesPerDay: 30}, sess.State.Pace())
	assert.Contains(t, m.View(), introMessages[0])

	// A tick scheduled before the latest one is ignored.
	stale := introTickMsg{seq: m.tickSeq - 1}
	m, _ = send(t, m, stale)
	assert.Equal(t, 0, m.introIdx)

	for i := 1; i < len(introMessages); i++ {
		m, _ = send(t, m, introTickMsg{seq: m.tickSeq})
		assert.Equal(t, i, m.introIdx)
	}
	m, _ = send(t, m, introTickMsg{seq: m.tickSeq})
	require.Equal(t, screenCountdown, m.screen)
	assert.Contains(t, m.View(), "3")

	// Keys do nothing during the countdown.
	m = press(t, m, "enter")
	assert.Equal(t, screenCountdown, m.screen)

	for range countdownFrom {
		m, _ = send(t, m, countdownTickMsg{seq: m.tickSeq})
	}
	require.Equal(t, screenSample, m.screen)
	assert.Contains(t, m.View(), "No princípio criou Deus")

	clock.t = clock.t.Add(time.Minute)
	m = press(t, m, "enter")
	require.Equal(t, screenResults, m.screen)
	require.NotNil(t, m.result)
	assert.InDelta(t, 5.0, sess.State.Pace().Speed, 1e-9)

	view := m.View()
	assert.Contains(t, view, "Velocidade: 5.00 caracteres/segundo")
	assert.Contains(t, view, "Tempo total de leitura: 218h 9m")
	assert.Contains(t, view, "Semanas necessárias: 88")
	assert.Contains(t, view, "Previsão de término: 20/11/2025")

	// No book open yet, so the picker comes next.
	m = press(t, m, "enter")
	require.Equal(t, screenBooks, m.screen)
	assert.Contains(t, m.View(), "Gênesis")

	m = press(t, m, "enter")
	assert.Equal(t, screenReading, m.screen)
	assert.True(t, sess.BookOpen())
}

func TestWizard_SkipIntro(t *testing.T) {
	m, _, _, _ := setupModel(t)
	m = press(t, m, "1", "0", "enter", "3", "enter")
	require.Equal(t, screenIntro, m.screen)

	m, cmd := send(t, m, keyMsg("esc"))
	assert.Equal(t, screenCountdown, m.screen)
	assert.Equal(t, countdownFrom, m.countdown)
	assert.NotNil(t, cmd)

	// The intro tick that was pending is now stale.
	m, _ = send(t, m, introTickMsg{seq: m.tickSeq - 1})
	assert.Equal(t, screenCountdown, m.screen)
}

func TestWizard_ZeroMinutesStillShowsReadingTime(t *testing.T) {
	m, _, sess, clock := setupModel(t)
	m = press(t, m, "0", "enter", "5", "enter", "esc")
	assert.Equal(t, domain.PaceSettings{DaysPerWeek: 5, MinutesPerDay: 0}, sess.State.Pace())
	for range countdownFrom {
		m, _ = send(t, m, countdownTickMsg{seq: m.tickSeq})
	}
	require.Equal(t, screenSample, m.screen)

	clock.t = clock.t.Add(time.Minute)
	m = press(t, m, "enter")
	require.Equal(t, screenResults, m.screen)

	view := m.View()
	assert.Contains(t, view, "Tempo total de leitura: 218h 9m")
	assert.Contains(t, view, "Semanas necessárias: indeterminado")
	assert.Contains(t, view, "Previsão de término: indeterminada")
}

func TestWizard_InvalidDays(t *testing.T) {
	m, _, sess, _ := setupModel(t)
	m = press(t, m, "3", "0", "enter", "9", "enter")

	assert.Equal(t, screenDays, m.screen)
	require.Error(t, m.err)
	assert.True(t, errors.Is(m.err, errors.ErrValidation))
	assert.Equal(t, domain.PaceSettings{}, sess.State.Pace())

	m = press(t, m, "backspace", "7", "enter")
	assert.Equal(t, screenIntro, m.screen)
	assert.NoError(t, m.err)
}

func TestWizard_EmptyInput(t *testing.T) {
	m, _, _, _ := setupModel(t)
	m = press(t, m, "enter")

	assert.Equal(t, screenMinutes, m.screen)
	assert.Equal(t, "digite um número", m.notice)
}

func TestWizard_SampleTooShort(t *testing.T) {
	m, _, sess, clock := setupModel(t)
	m = press(t, m, "1", "0", "enter", "3", "enter", "esc")
	for range countdownFrom {
		m, _ = send(t, m, countdownTickMsg{seq: m.tickSeq})
	}
	require.Equal(t, screenSample, m.screen)

	clock.t = clock.t.Add(200 * time.Millisecond)
	m = press(t, m, "enter")
	assert.Equal(t, screenSample, m.screen)
	assert.ErrorIs(t, m.err, progress.ErrSampleTooShort)
	assert.Zero(t, sess.State.Pace().Speed)
}

func TestReading_Navigation(t *testing.T) {
	m, sess := readyModel(t)

	assert.Contains(t, m.View(), "Gênesis 1")
	assert.Contains(t, m.View(), "No princípio")

	m = press(t, m, "right")
	c, _ := sess.Cursor()
	assert.Equal(t, domain.Cursor{Book: 0, Chapter: 0, Verse: 1}, c)
	assert.Contains(t, m.View(), "criou Deus")

	m = press(t, m, "n")
	c, _ = sess.Cursor()
	assert.Equal(t, domain.Cursor{Book: 0, Chapter: 1, Verse: 0}, c)
	assert.Contains(t, m.View(), "Gênesis 2")

	m = press(t, m, "n")
	assert.Equal(t, "último capítulo", m.notice)

	m = press(t, m, "p", "left")
	c, _ = sess.Cursor()
	assert.Equal(t, domain.Cursor{}, c)
	assert.Equal(t, "início do livro", m.notice)

	// Any key clears the notice.
	m = press(t, m, "x")
	assert.Empty(t, m.notice)
}

func TestReading_Preferences(t *testing.T) {
	m, sess := readyModel(t)
	assert.Equal(t, ThemeDark, m.theme)

	m = press(t, m, "t")
	assert.Equal(t, ThemeLight, m.theme)
	require.NotNil(t, sess.State.Theme)
	assert.Equal(t, ThemeLight, *sess.State.Theme)

	m = press(t, m, "+", "+")
	assert.Equal(t, FontLarge, m.fontSize)
	require.NotNil(t, sess.State.FontSize)
	assert.Equal(t, FontLarge, *sess.State.FontSize)

	m = press(t, m, "-", "-", "-")
	assert.Equal(t, FontCompact, m.fontSize)

	// Preferences are restored by a new model over the same session.
	restored := New(context.Background(), m.svc, sess)
	assert.Equal(t, ThemeLight, restored.theme)
	assert.Equal(t, FontCompact, restored.fontSize)
}

func TestBooks_Picker(t *testing.T) {
	m, sess := readyModel(t)

	m = press(t, m, "b")
	require.Equal(t, screenBooks, m.screen)
	require.Len(t, m.books, 2)
	assert.Equal(t, 0, m.bookCursor)

	m = press(t, m, "down", "down")
	assert.Equal(t, 1, m.bookCursor)

	m = press(t, m, "enter")
	assert.Equal(t, screenReading, m.screen)
	c, _ := sess.Cursor()
	assert.Equal(t, domain.Cursor{Book: 1}, c)
	assert.Contains(t, m.View(), "Estes são os nomes")

	m = press(t, m, "b", "esc")
	assert.Equal(t, screenReading, m.screen)
}

type fakeSearcher struct {
	params search.SearchParams
	result *search.SearchResult
}

func (f *fakeSearcher) SearchWithParams(_ context.Context, params search.SearchParams) (*search.SearchResult, error) {
	f.params = params
	return f.result, nil
}

func TestSearch_SeeksToHit(t *testing.T) {
	searcher := &fakeSearcher{result: &search.SearchResult{
		Total: 2,
		Hits: []search.Hit{
			{Cursor: domain.Cursor{Book: 0, Chapter: 0, Verse: 1}, Reference: "Gênesis 1:2", Text: "criou Deus"},
			{Cursor: domain.Cursor{Book: 0, Chapter: 1, Verse: 0}, Reference: "Gênesis 2:1", Text: "os céus e a terra"},
		},
	}}
	m, sess := readyModel(t, WithSearcher(searcher))

	m = press(t, m, "/")
	require.Equal(t, screenSearch, m.screen)

	m = press(t, m, "d", "e", "x", "backspace", "u", "s")
	assert.Equal(t, "deus", m.query)

	m, cmd := send(t, m, keyMsg("enter"))
	require.NotNil(t, cmd)
	assert.True(t, m.searching)

	m, _ = send(t, m, cmd())
	assert.False(t, m.searching)
	assert.Equal(t, "deus", searcher.params.Query)
	assert.Equal(t, search.HighlightANSI, searcher.params.HighlightStyle)
	require.Len(t, m.hits, 2)
	assert.Contains(t, m.View(), "2 resultados")

	m = press(t, m, "down", "enter")
	assert.Equal(t, screenReading, m.screen)
	c, _ := sess.Cursor()
	assert.Equal(t, domain.Cursor{Book: 0, Chapter: 1, Verse: 0}, c)
}

func TestSearch_Disabled(t *testing.T) {
	m, _ := readyModel(t)

	m = press(t, m, "/")
	assert.Equal(t, screenReading, m.screen)
	assert.Equal(t, "busca desativada", m.notice)
}

func TestQuitKeys(t *testing.T) {
	m, _ := readyModel(t)

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = send(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestWindowSize(t *testing.T) {
	m, _ := readyModel(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Equal(t, 34, m.listHeight())
}

func TestNextFontSize(t *testing.T) {
	assert.Equal(t, FontLarge, nextFontSize(FontNormal, 1))
	assert.Equal(t, FontLarge, nextFontSize(FontLarge, 1))
	assert.Equal(t, FontCompact, nextFontSize(FontCompact, -1))
	assert.Equal(t, FontCompact, nextFontSize("", -1))
}
