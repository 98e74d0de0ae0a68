package ingest

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/document/transformer/splitter/recursive"
	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/schema"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 100
)

// Chunker splits extracted documents into bounded, overlapping text
// windows, preferring paragraph, sentence and word boundaries before
// a hard cut. Splitting is pure: the same input always produces the
// same chunks, so a failed job can be retried without side effects.
type Chunker struct {
	splitter document.Transformer
}

func NewChunker(ctx context.Context, chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap <= 0 {
		overlap = DefaultChunkOverlap
	}

	splitter, err := recursive.NewSplitter(ctx, &recursive.Config{
		ChunkSize:   chunkSize,
		OverlapSize: overlap,
		Separators:  []string{"\n\n", "\n", ". ", " "},
	})
	if err != nil {
		return nil, fmt.Errorf("init splitter: %w", err)
	}

	return &Chunker{splitter: splitter}, nil
}

// Split chunks the documents and assigns each chunk a per-source
// contiguous index starting at 0 and an ID "<sourceFileID>:<index>",
// unique within one pipeline run.
func (c *Chunker) Split(ctx context.Context, docs []*schema.Document) ([]*schema.Document, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	chunks, err := c.splitter.Transform(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("split documents: %w", err)
	}

	counters := make(map[string]int)
	for _, chunk := range chunks {
		source, _ := chunk.MetaData[MetaSourceFileID].(string)
		if source == "" {
			source = chunk.ID
		}
		idx := counters[source]
		counters[source] = idx + 1

		meta := make(map[string]any, len(chunk.MetaData)+1)
		for k, v := range chunk.MetaData {
			meta[k] = v
		}
		meta[MetaChunkIndex] = idx
		chunk.MetaData = meta
		chunk.ID = fmt.Sprintf("%s:%d", source, idx)
	}

	return chunks, nil
}
