package service

import (
	"github.com/versepace/versepace/internal/domain"
	"github.com/versepace/versepace/internal/normalize"
	"github.com/versepace/versepace/internal/progress"
	"github.com/versepace/versepace/internal/search"
)

// Summary is everything a presentation needs to draw the reading screen.
// Verse fields are zero when no book is open.
type Summary struct {
	SessionID string `json:"session_id"`
	BookOpen  bool   `json:"book_open"`

	Cursor        domain.Cursor `json:"cursor"`
	BookName      string        `json:"book_name,omitempty"`
	ChapterNumber int           `json:"chapter_number,omitempty"`
	VerseNumber   int           `json:"verse_number,omitempty"`
	Reference     string        `json:"reference,omitempty"`
	VerseText     string        `json:"verse_text,omitempty"`
	ChapterCount  int           `json:"chapter_count,omitempty"`
	VerseCount    int           `json:"verse_count,omitempty"` // Verses in the current chapter

	BookPercent    float64 `json:"book_percent"`
	OverallPercent float64 `json:"overall_percent"`
	DailyPercent   float64 `json:"daily_percent"`
	WeeklyPercent  float64 `json:"weekly_percent"`

	CharsToday     int                 `json:"chars_today"`
	DailyGoalChars float64             `json:"daily_goal_chars"`
	RemainingChars int                 `json:"remaining_chars"`
	Pace           domain.PaceSettings `json:"pace"`
	Estimate       progress.Estimate   `json:"estimate"`
	Theme          string              `json:"theme,omitempty"`
	FontSize       string              `json:"font_size,omitempty"`
}

// Summary computes the current reading summary. It reads only the session's
// loaded state and never touches storage.
func (s *ReadingService) Summary(sess *Session) Summary {
	now := s.now()
	state := sess.State
	pace := state.Pace()
	remaining := progress.RemainingChars(s.doc, state)

	sum := Summary{
		SessionID:      sess.ID,
		BookOpen:       sess.open,
		OverallPercent: progress.OverallPercent(s.doc, state),
		DailyPercent:   progress.DailyPercent(state, now),
		WeeklyPercent:  progress.WeeklyPercent(state, now),
		CharsToday:     state.CharsOn(now),
		DailyGoalChars: progress.DailyGoalChars(pace),
		RemainingChars: remaining,
		Pace:           pace,
		Estimate:       progress.EstimateCompletion(remaining, pace.Speed, pace.DaysPerWeek, pace.MinutesPerDay, s.today()),
	}
	if state.Theme != nil {
		sum.Theme = *state.Theme
	}
	if state.FontSize != nil {
		sum.FontSize = *state.FontSize
	}

	if !sess.open {
		return sum
	}

	c := s.doc.Clamp(sess.cursor)
	book := s.doc.Book(c.Book)
	if book == nil {
		return sum
	}
	ch := book.Chapters[c.Chapter]
	v := ch.Verses[c.Verse]

	sum.Cursor = c
	sum.BookName = normalize.BookName(book.Name)
	sum.ChapterNumber = ch.Number
	sum.VerseNumber = v.Number
	sum.Reference = search.Reference(sum.BookName, ch.Number, v.Number)
	sum.VerseText = v.Text
	sum.ChapterCount = len(book.Chapters)
	sum.VerseCount = len(ch.Verses)
	sum.BookPercent = progress.CursorPercent(s.doc, c)

	return sum
}
