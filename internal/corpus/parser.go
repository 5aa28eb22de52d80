// Package corpus turns the scripture source text into a domain.Document.
package corpus

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/versepace/versepace/internal/domain"
)

// Sentinel marks the start of a chapter heading in the source text.
const Sentinel = '»'

// Line patterns. The heading pattern is deliberately unanchored: the first
// "<name>[<n>]" run anywhere on the line wins. Verse separators include
// Unicode space separators such as NBSP, not only ASCII whitespace.
var (
	headingPattern = regexp.MustCompile(`»?([^\[]+)\[(\d+)\]`)
	versePattern   = regexp.MustCompile(`^[\s\p{Zs}]*(\d+)[\s\p{Zs}]+(.*)`)
)

// Parse builds a Document from decoded source text. It never fails: lines
// that match neither a heading nor a verse are ignored, and so are verse
// lines that appear before the first heading.
func Parse(raw string) *domain.Document {
	p := &parser{doc: &domain.Document{Books: []*domain.Book{}}}
	for line := range strings.SplitSeq(JoinSoftWraps(raw), "\n") {
		p.line(line)
	}
	p.closeBook()
	return p.doc
}

// JoinSoftWraps removes carriage returns and replaces every newline that is
// not followed by an ASCII digit or the heading sentinel with a space, so
// wrapped verse text ends up on one line.
func JoinSoftWraps(raw string) string {
	src := []rune(strings.ReplaceAll(raw, "\r", ""))

	var b strings.Builder
	b.Grow(len(src))
	for i, r := range src {
		if r != '\n' {
			b.WriteRune(r)
			continue
		}
		if i+1 < len(src) && (isASCIIDigit(src[i+1]) || src[i+1] == Sentinel) {
			b.WriteRune('\n')
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

type parser struct {
	doc  *domain.Document
	book *domain.Book
}

func (p *parser) line(line string) {
	if m := headingPattern.FindStringSubmatch(line); m != nil {
		number, err := strconv.Atoi(m[2])
		if err != nil {
			return
		}
		p.heading(strings.TrimSpace(m[1]), number)
		return
	}

	m := versePattern.FindStringSubmatch(line)
	if m == nil || p.book == nil || len(p.book.Chapters) == 0 {
		return
	}
	number, err := strconv.Atoi(m[1])
	if err != nil {
		return
	}
	text := strings.TrimSpace(m[2])
	if text == "" {
		return
	}
	p.book.AppendVerse(domain.NewVerse(number, text))
}

func (p *parser) heading(name string, chapter int) {
	if p.book == nil || p.book.Name != name {
		p.closeBook()
		p.book = domain.NewBook(name)
	} else {
		p.book.DropEmptyLastChapter()
	}
	p.book.StartChapter(chapter)
}

// closeBook commits the open book, discarding a trailing empty chapter and
// the book itself if nothing is left.
func (p *parser) closeBook() {
	if p.book == nil {
		return
	}
	p.book.DropEmptyLastChapter()
	if len(p.book.Chapters) > 0 {
		p.doc.Books = append(p.doc.Books, p.book)
	}
	p.book = nil
}

// Counts summarizes the size of a Document.
type Counts struct {
	Books    int
	Chapters int
	Verses   int
	Chars    int
}

// Count walks doc and tallies its nodes.
func Count(doc *domain.Document) Counts {
	c := Counts{Books: doc.BookCount(), Chars: doc.TotalChars()}
	for _, b := range doc.Books {
		c.Chapters += len(b.Chapters)
		for _, ch := range b.Chapters {
			c.Verses += len(ch.Verses)
		}
	}
	return c
}
