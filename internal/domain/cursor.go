package domain

import "fmt"

// Position is a zero-based chapter/verse pair inside one book.
type Position struct {
	Chapter int `json:"chapter"`
	Verse   int `json:"verse"`
}

// Cursor is the active reading position: zero-based book, chapter and verse.
type Cursor struct {
	Book    int `json:"book"`
	Chapter int `json:"chapter"`
	Verse   int `json:"verse"`
}

// Position drops the book index.
func (c Cursor) Position() Position {
	return Position{Chapter: c.Chapter, Verse: c.Verse}
}

func (c Cursor) String() string {
	return fmt.Sprintf("%d:%d:%d", c.Book, c.Chapter, c.Verse)
}

// Step is the unit a cursor moves by.
type Step string

// Cursor step sizes.
const (
	StepVerse   Step = "verse"
	StepChapter Step = "chapter"
)

// Valid reports whether s is a known step size.
func (s Step) Valid() bool {
	return s == StepVerse || s == StepChapter
}
