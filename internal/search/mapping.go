package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/pt"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for verse documents.
//
// Verse text gets the Portuguese analyzer (stop words, light stemming) and
// term vectors for highlighting. Indices are stored numerics so a hit can
// be turned back into a cursor without touching the Document.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = pt.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = pt.AnalyzerName
	textFieldMapping.Store = true
	textFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("text", textFieldMapping)

	// Book name - searchable without stemming ("Jó" should not match "jo" stems)
	bookNameFieldMapping := bleve.NewTextFieldMapping()
	bookNameFieldMapping.Analyzer = simple.Name
	bookNameFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("book_name", bookNameFieldMapping)

	referenceFieldMapping := bleve.NewTextFieldMapping()
	referenceFieldMapping.Analyzer = keyword.Name
	referenceFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("reference", referenceFieldMapping)

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	for _, field := range []string{"book", "chapter", "verse"} {
		numericFieldMapping := bleve.NewNumericFieldMapping()
		numericFieldMapping.Store = true
		docMapping.AddFieldMappingsAt(field, numericFieldMapping)
	}

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
