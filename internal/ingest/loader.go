package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	docxparser "github.com/cloudwego/eino-ext/components/document/parser/docx"
	pdfparser "github.com/cloudwego/eino-ext/components/document/parser/pdf"
	"github.com/cloudwego/eino/components/document/parser"
	"github.com/cloudwego/eino/schema"

	"github.com/narteyr/flashcards/internal/model"
)

// ErrNoLoader is returned when a file's media type has no extraction
// strategy. The whole batch fails on it; silently skipping a file
// would degrade generation quality downstream.
var ErrNoLoader = errors.New("no loader registered")

// Metadata keys stamped on every extracted document. These always win
// over loader-supplied values of the same name.
const (
	MetaSourceFileID   = "source_file_id"
	MetaSourceFileName = "source_file_name"
	MetaMimeType       = "mime_type"
	MetaChunkIndex     = "chunk_index"
)

// LoaderRegistry maps a normalized media type to the parser that
// extracts text from it.
type LoaderRegistry struct {
	parsers map[string]parser.Parser
}

func NewLoaderRegistry(ctx context.Context) (*LoaderRegistry, error) {
	pdfParser, err := pdfparser.NewPDFParser(ctx, &pdfparser.Config{ToPages: true})
	if err != nil {
		return nil, fmt.Errorf("init pdf parser: %w", err)
	}

	docxParser, err := docxparser.NewDocxParser(ctx, &docxparser.Config{
		ToSections:    false,
		IncludeTables: true,
	})
	if err != nil {
		return nil, fmt.Errorf("init docx parser: %w", err)
	}

	text := parser.TextParser{}

	return &LoaderRegistry{parsers: map[string]parser.Parser{
		"text/plain":         text,
		"text/markdown":      text,
		"text/csv":           text,
		"application/json":   text,
		"application/pdf":    pdfParser,
		"application/msword": docxParser,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": docxParser,
	}}, nil
}

// Lookup returns the parser for a media type, if one is registered.
func (r *LoaderRegistry) Lookup(contentType string) (parser.Parser, bool) {
	p, ok := r.parsers[NormalizeMediaType(contentType)]
	return p, ok
}

// Load extracts text documents from one stored file. Every returned
// document carries source_file_id, source_file_name and mime_type
// metadata and a stable ID, falling back to "<fileID>:<index>" when
// the parser did not assign one.
func (r *LoaderRegistry) Load(ctx context.Context, file *model.File, reader io.Reader) ([]*schema.Document, error) {
	mediaType := NormalizeMediaType(file.ContentType)
	p, ok := r.parsers[mediaType]
	if !ok {
		return nil, fmt.Errorf("%w for media type %q (file %s)", ErrNoLoader, mediaType, file.FileName)
	}

	docs, err := p.Parse(ctx, reader, parser.WithURI(file.FileName))
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", file.FileName, err)
	}

	for i, doc := range docs {
		if doc.ID == "" {
			doc.ID = fmt.Sprintf("%s:%d", file.ID, i)
		}
		meta := make(map[string]any, len(doc.MetaData)+3)
		for k, v := range doc.MetaData {
			meta[k] = v
		}
		meta[MetaSourceFileID] = file.ID.String()
		meta[MetaSourceFileName] = file.FileName
		meta[MetaMimeType] = mediaType
		doc.MetaData = meta
	}

	return docs, nil
}

// NormalizeMediaType strips parameters such as "; charset=utf-8" and
// lowercases the type.
func NormalizeMediaType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
