package domain

import "unicode/utf8"

// Verse is a single numbered verse. Length is the rune count of Text,
// cached at parse time.
type Verse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	Length int    `json:"length"`
}

// NewVerse creates a verse and caches its character count.
func NewVerse(number int, text string) Verse {
	return Verse{
		Number: number,
		Text:   text,
		Length: utf8.RuneCountInString(text),
	}
}

// Chapter holds the verses of one chapter of a book.
// TotalChars always equals the sum of the verse lengths.
type Chapter struct {
	Number     int     `json:"number"`
	Verses     []Verse `json:"verses"`
	TotalChars int     `json:"total_chars"`
}

// Book is a named run of chapters, in source order.
// Name is the raw token from the source heading; see normalize.BookName
// for the display form.
type Book struct {
	Name       string     `json:"name"`
	Chapters   []*Chapter `json:"chapters"`
	TotalChars int        `json:"total_chars"`
}

// NewBook starts an empty book.
func NewBook(name string) *Book {
	return &Book{Name: name}
}

// StartChapter appends an empty chapter and returns it.
func (b *Book) StartChapter(number int) *Chapter {
	ch := &Chapter{Number: number}
	b.Chapters = append(b.Chapters, ch)
	return ch
}

// AppendVerse adds a verse to the last chapter of the book, updating the
// chapter and book totals in the same step. It is a no-op when the book
// has no chapter yet.
func (b *Book) AppendVerse(v Verse) {
	if len(b.Chapters) == 0 {
		return
	}
	ch := b.Chapters[len(b.Chapters)-1]
	ch.Verses = append(ch.Verses, v)
	ch.TotalChars += v.Length
	b.TotalChars += v.Length
}

// DropEmptyLastChapter removes the last chapter if it ended up with no verses.
// Returns true if a chapter was removed.
func (b *Book) DropEmptyLastChapter() bool {
	if len(b.Chapters) == 0 {
		return false
	}
	last := b.Chapters[len(b.Chapters)-1]
	if len(last.Verses) > 0 {
		return false
	}
	b.Chapters = b.Chapters[:len(b.Chapters)-1]
	return true
}

// LastChapterIndex returns the index of the final chapter, or -1 for an empty book.
func (b *Book) LastChapterIndex() int {
	return len(b.Chapters) - 1
}

// Document is the parsed corpus. It is built once per load and is read-only
// afterwards, so it can be shared by any number of readers.
type Document struct {
	Books []*Book `json:"books"`
}

// BookCount returns the number of books.
func (d *Document) BookCount() int {
	if d == nil {
		return 0
	}
	return len(d.Books)
}

// Book returns the book at index i, or nil when i is out of range.
func (d *Document) Book(i int) *Book {
	if d == nil || i < 0 || i >= len(d.Books) {
		return nil
	}
	return d.Books[i]
}

// TotalChars returns the live parsed character total. This is kept apart
// from TotalCorpusChars, which is what overall progress is measured against.
func (d *Document) TotalChars() int {
	total := 0
	for _, b := range d.Books {
		total += b.TotalChars
	}
	return total
}

// Verse returns the verse under cursor c. The cursor must be in bounds;
// callers clamp first.
func (d *Document) Verse(c Cursor) Verse {
	return d.Books[c.Book].Chapters[c.Chapter].Verses[c.Verse]
}

// Clamp returns the closest in-bounds cursor to c. Negative indices clamp to
// zero and indices past the end clamp to the last book, chapter or verse.
// An empty document always yields the zero cursor.
func (d *Document) Clamp(c Cursor) Cursor {
	if d.BookCount() == 0 {
		return Cursor{}
	}
	c.Book = clampIndex(c.Book, len(d.Books)-1)
	pos := d.ClampPosition(c.Book, Position{Chapter: c.Chapter, Verse: c.Verse})
	c.Chapter, c.Verse = pos.Chapter, pos.Verse
	return c
}

// ClampPosition clamps a chapter/verse pair into the bounds of book bookIndex.
func (d *Document) ClampPosition(bookIndex int, p Position) Position {
	b := d.Book(bookIndex)
	if b == nil || len(b.Chapters) == 0 {
		return Position{}
	}
	p.Chapter = clampIndex(p.Chapter, len(b.Chapters)-1)
	p.Verse = clampIndex(p.Verse, len(b.Chapters[p.Chapter].Verses)-1)
	return p
}

func clampIndex(i, last int) int {
	if last < 0 || i < 0 {
		return 0
	}
	if i > last {
		return last
	}
	return i
}
