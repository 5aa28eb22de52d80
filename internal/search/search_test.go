package search

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versepace/versepace/internal/corpus"
	"github.com/versepace/versepace/internal/domain"
)

const testCorpus = "»GÊNESIS[1]\n" +
	"1 No princípio criou Deus os céus e a terra.\n" +
	"2 E a terra era sem forma e vazia; e havia trevas sobre a face do abismo.\n" +
	"3 E disse Deus: Haja luz; e houve luz.\n" +
	"»JOAO[1]\n" +
	"1 No princípio era o Verbo, e o Verbo estava com Deus.\n" +
	"5 E a luz resplandece nas trevas."

// setupTestIndex creates an in-memory verse index holding testCorpus.
func setupTestIndex(t *testing.T) (*VerseIndex, *domain.Document) {
	t.Helper()

	index, err := NewVerseIndex(Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	doc := corpus.Parse(testCorpus)
	n, err := index.IndexDocument(context.Background(), doc)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	return index, doc
}

func TestNewVerseIndex(t *testing.T) {
	index, err := NewVerseIndex(Options{})
	require.NoError(t, err)
	defer index.Close()

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestVerseIndex_Search(t *testing.T) {
	index, _ := setupTestIndex(t)

	result, err := index.Search(context.Background(), "luz", 10)
	require.NoError(t, err)
	require.Len(t, result.Hits, 2)
	assert.Equal(t, uint64(2), result.Total)

	refs := map[string]domain.Cursor{}
	for _, hit := range result.Hits {
		refs[hit.Reference] = hit.Cursor
		assert.Contains(t, hit.Fragment, "<mark>")
		assert.Contains(t, strings.ToLower(hit.Text), "luz")
	}
	assert.Equal(t, domain.Cursor{Book: 0, Chapter: 0, Verse: 2}, refs["Gênesis 1:3"])
	assert.Equal(t, domain.Cursor{Book: 1, Chapter: 0, Verse: 1}, refs["João 1:5"])
}

func TestVerseIndex_SearchBookFilter(t *testing.T) {
	index, _ := setupTestIndex(t)

	book := 1
	params := DefaultSearchParams()
	params.Query = "luz"
	params.Book = &book

	result, err := index.SearchWithParams(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "João 1:5", result.Hits[0].Reference)
}

func TestVerseIndex_SearchANSIHighlight(t *testing.T) {
	index, _ := setupTestIndex(t)

	params := DefaultSearchParams()
	params.Query = "abismo"
	params.HighlightStyle = HighlightANSI

	result, err := index.SearchWithParams(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.NotContains(t, result.Hits[0].Fragment, "<mark>")
	assert.Contains(t, result.Hits[0].Fragment, "\x1b[")
}

func TestVerseIndex_BlankQuery(t *testing.T) {
	index, _ := setupTestIndex(t)

	result, err := index.Search(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
}

func TestVerseIndex_BatchesLargeDocument(t *testing.T) {
	var b strings.Builder
	for ch := 1; ch <= 12; ch++ {
		fmt.Fprintf(&b, "»SALMOS[%d]\n", ch)
		for v := 1; v <= 100; v++ {
			fmt.Fprintf(&b, "%d Louvai ao Senhor verso %d do capitulo %d\n", v, v, ch)
		}
	}
	doc := corpus.Parse(b.String())

	index, err := NewVerseIndex(Options{})
	require.NoError(t, err)
	defer index.Close()

	n, err := index.IndexDocument(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 1200, n)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1200), count)
}

func TestVerseIndex_EnsureIndexedIsIdempotent(t *testing.T) {
	index, err := NewVerseIndex(Options{})
	require.NoError(t, err)
	defer index.Close()

	doc := corpus.Parse(testCorpus)
	ctx := context.Background()

	require.NoError(t, index.EnsureIndexed(ctx, doc))
	require.NoError(t, index.EnsureIndexed(ctx, doc))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), count)

	// A different corpus triggers a rebuild rather than a merge.
	smaller := corpus.Parse("»RUTE[1]\n1 E sucedeu")
	require.NoError(t, index.EnsureIndexed(ctx, smaller))
	count, err = index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestVerseIndex_EnsureIndexedSameCountDifferentText(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	index, err := NewVerseIndex(Options{DataPath: dir})
	require.NoError(t, err)
	require.NoError(t, index.EnsureIndexed(ctx, corpus.Parse("»RUTE[1]\n1 E sucedeu\n2 Houve fome")))
	require.NoError(t, index.Close())

	// Same verse count, different corpus.
	other := corpus.Parse("»ESTER[1]\n1 Nos dias de Assuero\n2 Reinava desde a India")
	index, err = NewVerseIndex(Options{DataPath: dir})
	require.NoError(t, err)
	defer index.Close()
	require.NoError(t, index.EnsureIndexed(ctx, other))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	result, err := index.Search(ctx, "Assuero", 5)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "Ester 1:1", result.Hits[0].Reference)

	result, err = index.Search(ctx, "fome", 5)
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
}

func TestVerseIndex_EnsureIndexedCancelled(t *testing.T) {
	index, err := NewVerseIndex(Options{})
	require.NoError(t, err)
	defer index.Close()

	doc := corpus.Parse(testCorpus)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = index.EnsureIndexed(ctx, doc)
	require.ErrorIs(t, err, context.Canceled)

	stored, err := index.storedFingerprint()
	require.NoError(t, err)
	assert.Empty(t, stored)

	// The next run completes the build.
	require.NoError(t, index.EnsureIndexed(context.Background(), doc))
	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), count)
	stored, err = index.storedFingerprint()
	require.NoError(t, err)
	assert.Equal(t, Fingerprint(doc), stored)
}

func TestFingerprint(t *testing.T) {
	doc := corpus.Parse(testCorpus)
	assert.Equal(t, Fingerprint(doc), Fingerprint(corpus.Parse(testCorpus)))
	assert.Len(t, Fingerprint(doc), 16)

	assert.NotEqual(t,
		Fingerprint(corpus.Parse("»RUTE[1]\n1 E sucedeu")),
		Fingerprint(corpus.Parse("»RUTE[1]\n1 E sucedeo")))
	assert.NotEqual(t,
		Fingerprint(corpus.Parse("»RUTE[1]\n1 E sucedeu")),
		Fingerprint(corpus.Parse("»RUTE[2]\n1 E sucedeu")))
}

func TestVerseIndex_PersistedReopen(t *testing.T) {
	dir := t.TempDir()
	doc := corpus.Parse(testCorpus)
	ctx := context.Background()

	index, err := NewVerseIndex(Options{DataPath: dir})
	require.NoError(t, err)
	require.NoError(t, index.EnsureIndexed(ctx, doc))
	require.NoError(t, index.Close())

	index, err = NewVerseIndex(Options{DataPath: dir})
	require.NoError(t, err)
	defer index.Close()

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), count)

	result, err := index.Search(ctx, "Verbo", 5)
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "João 1:1", result.Hits[0].Reference)
}

func TestReference(t *testing.T) {
	assert.Equal(t, "Salmos 23:1", Reference("Salmos", 23, 1))
}
