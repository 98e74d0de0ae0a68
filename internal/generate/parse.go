package generate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/schema"
)

var (
	ErrNoJSONArray = errors.New("response did not include JSON array")
	ErrParseFailed = errors.New("response JSON parse failed")
	ErrNotArray    = errors.New("malformed flashcard payload: expected array")
)

// ParseResponse extracts flashcards from a raw model response.
//
// Models wrap JSON in prose or code fences despite instructions, so
// the substring between the first '[' and the last ']' is treated as
// the payload. This is a boundary adapter for LLM output only, not a
// general JSON relaxation. Entries missing sourceChunkIds fall back to
// the chunk at the same positional index. Output is capped at
// maxCards.
func ParseResponse(raw string, chunks []*schema.Document, maxCards int) ([]Card, error) {
	if maxCards <= 0 {
		maxCards = DefaultMaxCards
	}

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end < start {
		return nil, ErrNoJSONArray
	}

	var payload interface{}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	entries, ok := payload.([]interface{})
	if !ok {
		return nil, ErrNotArray
	}

	cards := make([]Card, 0, len(entries))
	for i, entry := range entries {
		if len(cards) >= maxCards {
			break
		}

		obj, _ := entry.(map[string]interface{})

		card := Card{
			Front: coerceString(firstOf(obj, "front", "question")),
			Back:  coerceString(firstOf(obj, "back", "answer")),
			Tags:  coerceStringSlice(obj["tags"]),
		}

		card.SourceChunkIDs = coerceStringSlice(obj["sourceChunkIds"])
		if len(card.SourceChunkIDs) == 0 && i < len(chunks) {
			card.SourceChunkIDs = []string{chunks[i].ID}
		}

		cards = append(cards, card)
	}

	return cards, nil
}

func firstOf(obj map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func coerceString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func coerceStringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, coerceString(item))
	}
	return out
}
