package corpus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/versepace/versepace/internal/domain"
	"github.com/versepace/versepace/internal/errors"
)

// Supported source encodings.
const (
	EncodingLatin1      = "latin1"
	EncodingWindows1252 = "windows-1252"
	EncodingUTF8        = "utf-8"
)

// lookupEncoding resolves an encoding name. The empty name means Latin-1,
// which is what the published corpus ships in.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingLatin1, "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case EncodingWindows1252, "cp1252":
		return charmap.Windows1252, nil
	case EncodingUTF8, "utf8":
		return unicode.UTF8BOM, nil
	default:
		return nil, errors.Validationf("unsupported corpus encoding %q", name)
	}
}

// ValidEncoding reports whether name is an encoding Decode accepts.
func ValidEncoding(name string) bool {
	_, err := lookupEncoding(name)
	return err == nil
}

// Decode reads all of r and converts it from the named encoding to UTF-8.
func Decode(r io.Reader, encodingName string) (string, error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return "", err
	}

	data, err := io.ReadAll(transform.NewReader(r, enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", encodingName, err)
	}
	return string(data), nil
}

// Loader reads and parses the corpus file.
type Loader struct {
	logger   *slog.Logger
	encoding string
}

// NewLoader creates a loader that decodes source files with the named encoding.
func NewLoader(encodingName string, logger *slog.Logger) *Loader {
	return &Loader{
		logger:   logger,
		encoding: encodingName,
	}
}

// Load reads, decodes and parses the corpus at path. Any failure to read or
// decode is a SOURCE_UNAVAILABLE error and no Document is returned.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.SourceUnavailable(err, "corpus load cancelled")
	}

	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.SourceUnavailable(err, "cannot open corpus").
			WithDetails(map[string]any{"path": path})
	}
	defer f.Close()

	text, err := Decode(f, l.encoding)
	if err != nil {
		return nil, errors.SourceUnavailable(err, "cannot decode corpus").
			WithDetails(map[string]any{"path": path, "encoding": l.encoding})
	}

	doc := Parse(text)
	counts := Count(doc)

	l.logger.Info("corpus loaded",
		"path", path,
		"books", counts.Books,
		"chapters", counts.Chapters,
		"verses", counts.Verses,
		"chars", counts.Chars,
		"duration", time.Since(start),
	)
	if counts.Books == 0 {
		l.logger.Warn("corpus contains no recognizable chapters", "path", path)
	}

	return doc, nil
}
