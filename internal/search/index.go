package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/cespare/xxhash/v2"

	"github.com/versepace/versepace/internal/corpus"
	"github.com/versepace/versepace/internal/domain"
)

// VerseIndex wraps a Bleve index of every verse in a Document.
//
// Thread safety: All public methods are safe for concurrent use.
// The mutex protects against index corruption during rebuild operations.
type VerseIndex struct {
	index  bleve.Index
	path   string // Empty for an in-memory index
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the verse index.
type Options struct {
	DataPath string       // Directory for index storage; empty keeps the index in memory
	Logger   *slog.Logger // Logger for operations (uses discard if nil)
}

// mappingVersion is incremented whenever the index mapping changes.
// This triggers an automatic rebuild on startup when the version doesn't match.
const mappingVersion = "1"

// batchSize bounds the number of verses committed per Bleve batch.
const batchSize = 500

// fingerprintKey is the Bleve internal key holding the Fingerprint of the
// Document the index was last fully built from.
var fingerprintKey = []byte("corpus_fingerprint")

// NewVerseIndex creates or opens a verse index. With a DataPath an existing
// index is reopened; a corrupted index or one with an outdated mapping is
// removed and recreated.
func NewVerseIndex(opts Options) (*VerseIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if opts.DataPath == "" {
		index, err := bleve.NewMemOnly(buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create in-memory index: %w", err)
		}
		return &VerseIndex{index: index, logger: logger}, nil
	}

	indexPath := filepath.Join(opts.DataPath, "search.bleve")
	versionPath := filepath.Join(opts.DataPath, "search.version")

	var index bleve.Index
	var err error
	needsRebuild := false

	indexExists := false
	if _, statErr := os.Stat(indexPath); statErr == nil {
		indexExists = true
	}

	if indexExists {
		existingVersion, readErr := os.ReadFile(versionPath)
		if readErr != nil || string(existingVersion) != mappingVersion {
			logger.Info("search index mapping version changed, will rebuild",
				"old_version", string(existingVersion),
				"new_version", mappingVersion,
			)
			needsRebuild = true
		}
	}

	if !needsRebuild && indexExists {
		index, err = bleve.Open(indexPath)
		if err != nil {
			logger.Warn("failed to open existing index, will recreate",
				"path", indexPath,
				"error", err,
			)
			needsRebuild = true
		}
	}

	if needsRebuild {
		if removeErr := os.RemoveAll(indexPath); removeErr != nil {
			return nil, fmt.Errorf("remove old index: %w", removeErr)
		}
		index = nil
	}

	if index == nil {
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		if writeErr := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); writeErr != nil {
			logger.Warn("failed to write search version file", "error", writeErr)
		}
		logger.Info("created new search index", "path", indexPath, "mapping_version", mappingVersion)
	} else {
		logger.Info("opened existing search index", "path", indexPath)
	}

	return &VerseIndex{
		index:  index,
		path:   indexPath,
		logger: logger,
	}, nil
}

// Close closes the index and releases resources.
func (s *VerseIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexDocument adds every verse of doc to the index in batches and
// returns the number of verses indexed.
func (s *VerseIndex) IndexDocument(ctx context.Context, doc *domain.Document) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	batch := s.index.NewBatch()
	indexed := 0

	flush := func() error {
		if batch.Size() == 0 {
			return nil
		}
		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch ending at %d: %w", indexed, err)
		}
		batch.Reset()
		return nil
	}

	for bi, book := range doc.Books {
		for ci, ch := range book.Chapters {
			for vi := range ch.Verses {
				vd := NewVerseDocument(doc, domain.Cursor{Book: bi, Chapter: ci, Verse: vi})
				if err := batch.Index(vd.ID, vd.ToMap()); err != nil {
					return indexed, fmt.Errorf("batch index %s: %w", vd.ID, err)
				}
				indexed++

				if batch.Size() >= batchSize {
					if err := ctx.Err(); err != nil {
						return indexed, err
					}
					if err := flush(); err != nil {
						return indexed, err
					}
				}
			}
		}
	}

	if err := flush(); err != nil {
		return indexed, err
	}

	s.logger.Debug("verses indexed", "count", indexed)
	return indexed, nil
}

// EnsureIndexed indexes doc unless the index already holds exactly as many
// verses and was last built from a Document with the same Fingerprint. Any
// other non-empty index is rebuilt first. The fingerprint is stored only
// after every verse is committed, so an interrupted build is redone.
func (s *VerseIndex) EnsureIndexed(ctx context.Context, doc *domain.Document) error {
	want := uint64(corpus.Count(doc).Verses)
	fingerprint := Fingerprint(doc)

	have, err := s.DocumentCount()
	if err != nil {
		return fmt.Errorf("count indexed verses: %w", err)
	}
	stored, err := s.storedFingerprint()
	if err != nil {
		return fmt.Errorf("read corpus fingerprint: %w", err)
	}
	if have == want && stored == fingerprint {
		s.logger.Info("search index up to date", "verses", have)
		return nil
	}

	if have > 0 || stored != "" {
		s.logger.Info("search index is stale, rebuilding",
			"indexed", have,
			"verses", want,
			"fingerprint_match", stored == fingerprint,
		)
		if err := s.Rebuild(); err != nil {
			return err
		}
	}

	n, err := s.IndexDocument(ctx, doc)
	if err != nil {
		return err
	}
	if err := s.setFingerprint(fingerprint); err != nil {
		return fmt.Errorf("store corpus fingerprint: %w", err)
	}
	s.logger.Info("search index built", "verses", n)
	return nil
}

// Fingerprint hashes every book name, chapter number, verse number and
// verse text of doc in order.
func Fingerprint(doc *domain.Document) string {
	d := xxhash.New()
	for _, book := range doc.Books {
		fmt.Fprintf(d, "b%d:%s\x00", len(book.Name), book.Name)
		for _, ch := range book.Chapters {
			fmt.Fprintf(d, "c%d\x00", ch.Number)
			for _, v := range ch.Verses {
				fmt.Fprintf(d, "v%d:%d:%s\x00", v.Number, len(v.Text), v.Text)
			}
		}
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

func (s *VerseIndex) storedFingerprint() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, err := s.index.GetInternal(fingerprintKey)
	if err != nil {
		return "", err
	}
	return string(val), nil
}

func (s *VerseIndex) setFingerprint(fingerprint string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.SetInternal(fingerprintKey, []byte(fingerprint))
}

// DocumentCount returns the total number of indexed verses.
func (s *VerseIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Rebuild drops the existing index and creates an empty one.
//
// IMPORTANT: This acquires an exclusive lock and blocks all other operations.
func (s *VerseIndex) Rebuild() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Close(); err != nil {
		s.logger.Warn("error closing index for rebuild", "error", err)
	}

	if s.path == "" {
		index, err := bleve.NewMemOnly(buildIndexMapping())
		if err != nil {
			return fmt.Errorf("recreate in-memory index: %w", err)
		}
		s.index = index
		return nil
	}

	if err := os.RemoveAll(s.path); err != nil {
		return fmt.Errorf("remove index: %w", err)
	}
	index, err := bleve.New(s.path, buildIndexMapping())
	if err != nil {
		return fmt.Errorf("recreate index: %w", err)
	}
	s.index = index

	s.logger.Info("search index rebuilt", "path", s.path)
	return nil
}
