package domain

import (
	"sort"
	"strconv"
	"time"
)

// DateLayout is the ISO day key used by the daily tally.
const DateLayout = "2006-01-02"

// BookPosition is the persisted, one-based form of a Position.
type BookPosition struct {
	Chapter int `json:"chapter"`
	Verse   int `json:"verse"`
}

// ReadingState is the single persisted record. It is read once at session
// start and written back whole after every mutation.
//
// Nil pointer fields mean "never set". Absence of the whole record is
// equivalent to NewReadingState().
type ReadingState struct {
	Books         map[string]BookPosition `json:"books"`
	Daily         map[string]int          `json:"daily"`
	DaysPerWeek   *int                    `json:"daysPerWeek"`
	MinutesPerDay *int                    `json:"minutesPerDay"`
	Speed         *float64                `json:"speed"`
	Theme         *string                 `json:"theme"`
	FontSize      *string                 `json:"fontSize"`
	CurrentBook   *int                    `json:"currentBook,omitempty"`
}

// NewReadingState returns the first-run defaults.
func NewReadingState() *ReadingState {
	return &ReadingState{
		Books: make(map[string]BookPosition),
		Daily: make(map[string]int),
	}
}

// Normalize fills in nil maps left by decoding a sparse record.
func (s *ReadingState) Normalize() {
	if s.Books == nil {
		s.Books = make(map[string]BookPosition)
	}
	if s.Daily == nil {
		s.Daily = make(map[string]int)
	}
}

// Position returns the zero-based persisted position for a book.
// The result is not clamped; ok is false if the book was never opened.
func (s *ReadingState) Position(bookIndex int) (Position, bool) {
	bp, ok := s.Books[strconv.Itoa(bookIndex)]
	if !ok {
		return Position{}, false
	}
	return Position{Chapter: bp.Chapter - 1, Verse: bp.Verse - 1}, true
}

// SetPosition records a zero-based position for a book.
func (s *ReadingState) SetPosition(bookIndex int, p Position) {
	s.Normalize()
	s.Books[strconv.Itoa(bookIndex)] = BookPosition{Chapter: p.Chapter + 1, Verse: p.Verse + 1}
}

// OpenedBooks returns the indices of books with a persisted position, in
// ascending order. Keys that are not canonical non-negative integers, such
// as "genesis", "-1", "00" or "+0", are skipped.
func (s *ReadingState) OpenedBooks() []int {
	out := make([]int, 0, len(s.Books))
	for key := range s.Books {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || strconv.Itoa(i) != key {
			continue
		}
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// SetCurrentBook records the most recently opened book.
func (s *ReadingState) SetCurrentBook(bookIndex int) {
	s.CurrentBook = &bookIndex
}

// PaceSettings is the user's reading cadence plus measured speed.
// Zero values mean unset.
type PaceSettings struct {
	DaysPerWeek   int     `json:"days_per_week"`
	MinutesPerDay int     `json:"minutes_per_day"`
	Speed         float64 `json:"speed"`
}

// Pace extracts the pace settings, substituting zero for unset fields.
func (s *ReadingState) Pace() PaceSettings {
	var p PaceSettings
	if s.DaysPerWeek != nil {
		p.DaysPerWeek = *s.DaysPerWeek
	}
	if s.MinutesPerDay != nil {
		p.MinutesPerDay = *s.MinutesPerDay
	}
	if s.Speed != nil {
		p.Speed = *s.Speed
	}
	return p
}

// SetSchedule stores days per week and minutes per day.
func (s *ReadingState) SetSchedule(daysPerWeek, minutesPerDay int) {
	s.DaysPerWeek = &daysPerWeek
	s.MinutesPerDay = &minutesPerDay
}

// SetSpeed stores the measured reading speed in characters per second.
func (s *ReadingState) SetSpeed(charsPerSecond float64) {
	s.Speed = &charsPerSecond
}

// SetPreferences stores presentation values. Empty strings leave the
// current value unchanged.
func (s *ReadingState) SetPreferences(theme, fontSize string) {
	if theme != "" {
		s.Theme = &theme
	}
	if fontSize != "" {
		s.FontSize = &fontSize
	}
}

// DateKey formats t as a daily tally key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// CharsOn returns the characters tallied on the day of t; 0 if none.
func (s *ReadingState) CharsOn(t time.Time) int {
	return s.Daily[DateKey(t)]
}

// AddChars credits n characters to the day of t. Non-positive n is ignored
// so the tally never decreases within a day.
func (s *ReadingState) AddChars(t time.Time, n int) {
	if n <= 0 {
		return
	}
	s.Normalize()
	s.Daily[DateKey(t)] += n
}
