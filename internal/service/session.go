package service

import (
	"github.com/versepace/versepace/internal/domain"
)

// Session is one user's reading session: the loaded state plus the active
// cursor. It is owned by a single caller and is not safe for concurrent use.
type Session struct {
	ID       string
	Document *domain.Document
	State    *domain.ReadingState

	cursor domain.Cursor
	open   bool
}

// Cursor returns the active cursor; ok is false until a book is opened.
func (s *Session) Cursor() (domain.Cursor, bool) {
	return s.cursor, s.open
}

// BookOpen reports whether a book is open.
func (s *Session) BookOpen() bool {
	return s.open
}

func (s *Session) moveTo(c domain.Cursor) {
	s.cursor = c
	s.open = true
	s.State.SetPosition(c.Book, c.Position())
	s.State.SetCurrentBook(c.Book)
}
