package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/versepace/versepace/internal/domain"
	"github.com/versepace/versepace/internal/errors"
	"github.com/versepace/versepace/internal/id"
	"github.com/versepace/versepace/internal/normalize"
	"github.com/versepace/versepace/internal/progress"
	"github.com/versepace/versepace/internal/validation"
)

// StateStore loads, saves and deletes the whole ReadingState record.
type StateStore interface {
	Load(ctx context.Context) (*domain.ReadingState, error)
	Save(ctx context.Context, state *domain.ReadingState) error
	Reset(ctx context.Context) error
}

// ErrNoBookOpen is returned by cursor operations before OpenBook.
var ErrNoBookOpen = errors.Validation("no book is open")

// ReadingService drives a reading session: opening books, moving the
// cursor, tallying what was read, and pacing. Every mutation is followed by
// exactly one save of the whole record.
type ReadingService struct {
	repo      StateStore
	doc       *domain.Document
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a ReadingService.
type Option func(*ReadingService)

// WithClock replaces time.Now, which dates the daily tally and estimates.
func WithClock(now func() time.Time) Option {
	return func(s *ReadingService) {
		s.now = now
	}
}

// NewReadingService creates a reading service over a loaded Document.
func NewReadingService(repo StateStore, doc *domain.Document, validator *validation.Validator, logger *slog.Logger, opts ...Option) *ReadingService {
	s := &ReadingService{
		repo:      repo,
		doc:       doc,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Document returns the Document the service reads from.
func (s *ReadingService) Document() *domain.Document {
	return s.doc
}

// Start loads the persisted state once and returns a new session. If the
// record names a current book that exists, that book is reopened at its
// saved position; nothing is written.
func (s *ReadingService) Start(ctx context.Context) (*Session, error) {
	state, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reading state: %w", err)
	}

	sessionID, err := id.Generate(id.SessionPrefix)
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	sess := &Session{
		ID:       sessionID,
		Document: s.doc,
		State:    state,
	}

	if state.CurrentBook != nil && s.doc.Book(*state.CurrentBook) != nil {
		sess.cursor = s.restore(state, *state.CurrentBook)
		sess.open = true
	}

	s.logger.Info("reading session started",
		"session_id", sess.ID,
		"books_opened", len(state.OpenedBooks()),
		"book_open", sess.open,
	)
	return sess, nil
}

// Reset discards all persisted progress, pace and preferences. The session
// is left on first-run defaults with no book open.
func (s *ReadingService) Reset(ctx context.Context, sess *Session) error {
	if err := s.repo.Reset(ctx); err != nil {
		s.logger.Error("failed to reset reading state",
			"session_id", sess.ID,
			"error", err,
		)
		return fmt.Errorf("reset: %w", err)
	}

	sess.State = domain.NewReadingState()
	sess.cursor = domain.Cursor{}
	sess.open = false

	s.logger.Info("reading progress reset", "session_id", sess.ID)
	return nil
}

// restore returns the saved cursor for a book, clamped to the Document,
// or the start of the book if it was never opened.
func (s *ReadingService) restore(state *domain.ReadingState, bookIndex int) domain.Cursor {
	pos, _ := state.Position(bookIndex)
	pos = s.doc.ClampPosition(bookIndex, pos)
	return domain.Cursor{Book: bookIndex, Chapter: pos.Chapter, Verse: pos.Verse}
}

// OpenBook makes bookIndex the active book at its saved position.
func (s *ReadingService) OpenBook(ctx context.Context, sess *Session, bookIndex int) (domain.Cursor, error) {
	if s.doc.Book(bookIndex) == nil {
		return domain.Cursor{}, errors.NotFoundf("book %d does not exist", bookIndex).
			WithDetails(map[string]any{"book": bookIndex, "books": s.doc.BookCount()})
	}

	sess.moveTo(s.restore(sess.State, bookIndex))

	if err := s.persist(ctx, sess, "open book"); err != nil {
		return sess.cursor, err
	}

	s.logger.Debug("book opened",
		"session_id", sess.ID,
		"book", bookIndex,
		"chapter", sess.cursor.Chapter,
		"verse", sess.cursor.Verse,
	)
	return sess.cursor, nil
}

// Advance moves the cursor forward one step. A verse step credits the verse
// left behind to today's tally. A clamped move changes nothing and is not
// saved.
func (s *ReadingService) Advance(ctx context.Context, sess *Session, step domain.Step) (progress.Move, error) {
	return s.step(ctx, sess, step, progress.Advance, "advance")
}

// Retreat moves the cursor back one step.
func (s *ReadingService) Retreat(ctx context.Context, sess *Session, step domain.Step) (progress.Move, error) {
	return s.step(ctx, sess, step, progress.Retreat, "retreat")
}

type stepFunc func(*domain.Document, domain.Cursor, domain.Step) progress.Move

func (s *ReadingService) step(ctx context.Context, sess *Session, step domain.Step, fn stepFunc, op string) (progress.Move, error) {
	if !sess.open {
		return progress.Move{}, ErrNoBookOpen
	}
	if !step.Valid() {
		return progress.Move{Cursor: sess.cursor}, errors.Validationf("unknown step %q", step)
	}

	move := fn(s.doc, sess.cursor, step)
	if !move.Moved {
		return move, nil
	}

	sess.moveTo(move.Cursor)
	sess.State.AddChars(s.now(), move.CharsRead)

	if err := s.persist(ctx, sess, op); err != nil {
		return move, err
	}

	s.logger.Debug("cursor moved",
		"session_id", sess.ID,
		"op", op,
		"step", step,
		"book", move.Cursor.Book,
		"chapter", move.Cursor.Chapter,
		"verse", move.Cursor.Verse,
		"chars_read", move.CharsRead,
	)
	return move, nil
}

// Seek jumps to c, switching books if needed. The cursor is clamped into
// its book; seeking never credits the tally.
func (s *ReadingService) Seek(ctx context.Context, sess *Session, c domain.Cursor) (domain.Cursor, error) {
	if s.doc.Book(c.Book) == nil {
		return sess.cursor, errors.NotFoundf("book %d does not exist", c.Book)
	}

	sess.moveTo(s.doc.Clamp(c))

	if err := s.persist(ctx, sess, "seek"); err != nil {
		return sess.cursor, err
	}
	return sess.cursor, nil
}

// PaceRequest is the user-entered reading schedule.
type PaceRequest struct {
	DaysPerWeek   int `json:"days_per_week" validate:"min=1,max=7"`
	MinutesPerDay int `json:"minutes_per_day" validate:"gte=0,lte=1440"`
}

// SetPace stores the reading schedule.
func (s *ReadingService) SetPace(ctx context.Context, sess *Session, req PaceRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	sess.State.SetSchedule(req.DaysPerWeek, req.MinutesPerDay)
	return s.persist(ctx, sess, "set pace")
}

// SampleResult is the outcome of a timed reading sample.
type SampleResult struct {
	Speed    float64           `json:"speed"` // Characters per second
	Estimate progress.Estimate `json:"estimate"`
}

// RecordSample converts a timed sample into a reading speed, stores it, and
// estimates how long the whole corpus takes at the current schedule.
func (s *ReadingService) RecordSample(ctx context.Context, sess *Session, sampleChars int, elapsed time.Duration) (*SampleResult, error) {
	speed, err := progress.MeasureSpeed(sampleChars, elapsed.Seconds())
	if err != nil {
		return nil, err
	}

	sess.State.SetSpeed(speed)
	if err := s.persist(ctx, sess, "record sample"); err != nil {
		return nil, err
	}

	pace := sess.State.Pace()
	result := &SampleResult{
		Speed:    speed,
		Estimate: progress.EstimateCompletion(domain.TotalCorpusChars, speed, pace.DaysPerWeek, pace.MinutesPerDay, s.today()),
	}

	s.logger.Info("reading speed measured",
		"session_id", sess.ID,
		"speed", speed,
		"elapsed", elapsed,
		"weeks_needed", result.Estimate.WeeksNeeded,
	)
	return result, nil
}

// PreferencesRequest carries presentation settings. Empty fields are left
// unchanged.
type PreferencesRequest struct {
	Theme    string `json:"theme,omitempty" validate:"omitempty,max=32"`
	FontSize string `json:"fontSize,omitempty" validate:"omitempty,max=32"`
}

// SetPreferences stores presentation settings.
func (s *ReadingService) SetPreferences(ctx context.Context, sess *Session, req PreferencesRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	sess.State.SetPreferences(req.Theme, req.FontSize)
	return s.persist(ctx, sess, "set preferences")
}

func (s *ReadingService) persist(ctx context.Context, sess *Session, op string) error {
	if err := s.repo.Save(ctx, sess.State); err != nil {
		s.logger.Error("failed to save reading state",
			"session_id", sess.ID,
			"op", op,
			"error", err,
		)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// today is the current day at midnight in the local zone.
func (s *ReadingService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// BookProgress is one row of the book picker.
type BookProgress struct {
	Index    int     `json:"index"`
	Name     string  `json:"name"`
	Chapters int     `json:"chapters"`
	Percent  float64 `json:"percent"`
	Opened   bool    `json:"opened"`
}

// Books lists every book with its display name and saved progress.
func (s *ReadingService) Books(sess *Session) []BookProgress {
	out := make([]BookProgress, 0, s.doc.BookCount())
	for i, b := range s.doc.Books {
		_, opened := sess.State.Position(i)
		out = append(out, BookProgress{
			Index:    i,
			Name:     normalize.BookName(b.Name),
			Chapters: len(b.Chapters),
			Percent:  progress.BookPercent(s.doc, sess.State, i),
			Opened:   opened,
		})
	}
	return out
}
