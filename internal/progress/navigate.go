package progress

import "github.com/versepace/versepace/internal/domain"

// Move is the result of a cursor step.
type Move struct {
	Cursor domain.Cursor
	// Moved is false when the step was clamped at a book boundary.
	Moved bool
	// CharsRead is the length of the verse left behind by a verse-level
	// advance. It is 0 for every other kind of move.
	CharsRead int
}

// Advance moves the cursor forward by one step. Verse steps roll into the
// next chapter and stop at the last verse of the book. Chapter steps go to
// verse 0 of the next chapter and stop at the last chapter. The cursor never
// leaves its book.
func Advance(doc *domain.Document, c domain.Cursor, step domain.Step) Move {
	c = doc.Clamp(c)
	b := doc.Book(c.Book)
	if b == nil {
		return Move{Cursor: c}
	}

	if step == domain.StepChapter {
		return chapterMove(c, min(c.Chapter+1, b.LastChapterIndex()))
	}

	left := doc.Verse(c)
	switch {
	case c.Verse < len(b.Chapters[c.Chapter].Verses)-1:
		c.Verse++
	case c.Chapter < b.LastChapterIndex():
		c.Chapter++
		c.Verse = 0
	default:
		return Move{Cursor: c}
	}
	return Move{Cursor: c, Moved: true, CharsRead: left.Length}
}

// Retreat moves the cursor back by one step, mirroring Advance. Verse steps
// roll into the last verse of the previous chapter and stop at the first
// verse of the book. Retreating never credits characters.
func Retreat(doc *domain.Document, c domain.Cursor, step domain.Step) Move {
	c = doc.Clamp(c)
	b := doc.Book(c.Book)
	if b == nil {
		return Move{Cursor: c}
	}

	if step == domain.StepChapter {
		return chapterMove(c, max(c.Chapter-1, 0))
	}

	switch {
	case c.Verse > 0:
		c.Verse--
	case c.Chapter > 0:
		c.Chapter--
		c.Verse = len(b.Chapters[c.Chapter].Verses) - 1
	default:
		return Move{Cursor: c}
	}
	return Move{Cursor: c, Moved: true}
}

func chapterMove(c domain.Cursor, chapter int) Move {
	next := domain.Cursor{Book: c.Book, Chapter: chapter}
	return Move{Cursor: next, Moved: next != c}
}
