// Package progress computes reading progress, pacing goals and completion
// estimates. Every function is pure: the caller passes the Document and the
// loaded ReadingState, and nothing here touches storage.
package progress

import (
	"time"

	"github.com/versepace/versepace/internal/domain"
)

// BookCharsRead counts the characters before pos in a book: every chapter
// before the cursor chapter plus every verse before the cursor verse.
// Out-of-range positions are clamped first.
func BookCharsRead(doc *domain.Document, bookIndex int, pos domain.Position) int {
	b := doc.Book(bookIndex)
	if b == nil || len(b.Chapters) == 0 {
		return 0
	}
	pos = doc.ClampPosition(bookIndex, pos)

	n := 0
	for _, ch := range b.Chapters[:pos.Chapter] {
		n += ch.TotalChars
	}
	for _, v := range b.Chapters[pos.Chapter].Verses[:pos.Verse] {
		n += v.Length
	}
	return n
}

// CursorPercent is the percentage of the cursor's book that lies before it.
func CursorPercent(doc *domain.Document, c domain.Cursor) float64 {
	b := doc.Book(c.Book)
	if b == nil || b.TotalChars == 0 {
		return 0
	}
	return percent(float64(BookCharsRead(doc, c.Book, c.Position())), float64(b.TotalChars))
}

// BookPercent is the persisted progress through one book, in [0, 100].
// A book that was never opened, or that has no characters, reports 0.
func BookPercent(doc *domain.Document, state *domain.ReadingState, bookIndex int) float64 {
	pos, ok := state.Position(bookIndex)
	if !ok {
		return 0
	}
	return CursorPercent(doc, domain.Cursor{Book: bookIndex, Chapter: pos.Chapter, Verse: pos.Verse})
}

// TotalCharsRead sums BookCharsRead over every book with a persisted
// position. Positions naming books the Document does not have are ignored.
func TotalCharsRead(doc *domain.Document, state *domain.ReadingState) int {
	total := 0
	for _, i := range state.OpenedBooks() {
		if doc.Book(i) == nil {
			continue
		}
		pos, _ := state.Position(i)
		total += BookCharsRead(doc, i, pos)
	}
	return total
}

// OverallPercent measures TotalCharsRead against the fixed corpus size
// rather than the parsed total.
func OverallPercent(doc *domain.Document, state *domain.ReadingState) float64 {
	return percent(float64(TotalCharsRead(doc, state)), domain.TotalCorpusChars)
}

// RemainingChars is what is left of the fixed corpus size after
// TotalCharsRead, never negative.
func RemainingChars(doc *domain.Document, state *domain.ReadingState) int {
	return max(domain.TotalCorpusChars-TotalCharsRead(doc, state), 0)
}

// DailyGoalChars is the number of characters the pace settings allow per
// reading day. Zero when either minutes or speed is unset.
func DailyGoalChars(pace domain.PaceSettings) float64 {
	if pace.MinutesPerDay <= 0 || pace.Speed <= 0 {
		return 0
	}
	return float64(pace.MinutesPerDay) * 60 * pace.Speed
}

// WeeklyGoalChars is DailyGoalChars times the reading days per week.
func WeeklyGoalChars(pace domain.PaceSettings) float64 {
	if pace.DaysPerWeek <= 0 {
		return 0
	}
	return DailyGoalChars(pace) * float64(pace.DaysPerWeek)
}

// DailyPercent is the characters tallied on date against the daily goal.
// It is 0, not NaN or Inf, when the goal is 0 or unset. Reading past the
// goal yields more than 100.
func DailyPercent(state *domain.ReadingState, date time.Time) float64 {
	return percent(float64(state.CharsOn(date)), DailyGoalChars(state.Pace()))
}

// WeeklyPercent is the characters tallied over the Monday to Sunday week
// containing date against the weekly goal, with the same zero guard as
// DailyPercent.
func WeeklyPercent(state *domain.ReadingState, date time.Time) float64 {
	return percent(float64(WeekChars(state, date)), WeeklyGoalChars(state.Pace()))
}

// WeekChars sums the daily tally over the Monday to Sunday week containing date.
func WeekChars(state *domain.ReadingState, date time.Time) int {
	monday := WeekStart(date)
	total := 0
	for i := range 7 {
		total += state.CharsOn(monday.AddDate(0, 0, i))
	}
	return total
}

// WeekStart returns the Monday on or before date.
func WeekStart(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

func percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}
