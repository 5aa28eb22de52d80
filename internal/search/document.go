// Package search provides full-text verse search using Bleve.
// Search hits carry a cursor so callers can jump straight to the verse.
package search

import (
	"fmt"

	"github.com/versepace/versepace/internal/domain"
	"github.com/versepace/versepace/internal/normalize"
)

// VerseDocument is the indexed form of one verse.
type VerseDocument struct {
	ID        string `json:"id"` // Cursor string, "book:chapter:verse"
	Book      int    `json:"book"`
	Chapter   int    `json:"chapter"`
	Verse     int    `json:"verse"`
	BookName  string `json:"book_name"` // Display name
	Reference string `json:"reference"` // e.g. "Gênesis 1:3"
	Text      string `json:"text"`
}

// NewVerseDocument builds the document for the verse under cursor c.
// The cursor must be in bounds.
func NewVerseDocument(doc *domain.Document, c domain.Cursor) *VerseDocument {
	book := doc.Books[c.Book]
	ch := book.Chapters[c.Chapter]
	v := ch.Verses[c.Verse]
	name := normalize.BookName(book.Name)

	return &VerseDocument{
		ID:        c.String(),
		Book:      c.Book,
		Chapter:   c.Chapter,
		Verse:     c.Verse,
		BookName:  name,
		Reference: Reference(name, ch.Number, v.Number),
		Text:      v.Text,
	}
}

// Reference formats a display reference such as "Salmos 23:1".
func Reference(bookName string, chapterNumber, verseNumber int) string {
	return fmt.Sprintf("%s %d:%d", bookName, chapterNumber, verseNumber)
}

// ToMap converts the document to a map with lowercase field names.
// This ensures field names match the Bleve index mapping.
func (d *VerseDocument) ToMap() map[string]any {
	return map[string]any{
		"id":        d.ID,
		"book":      d.Book,
		"chapter":   d.Chapter,
		"verse":     d.Verse,
		"book_name": d.BookName,
		"reference": d.Reference,
		"text":      d.Text,
	}
}
