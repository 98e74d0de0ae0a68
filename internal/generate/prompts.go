package generate

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
)

const (
	DefaultTopic    = "Study Material"
	DefaultTone     = "concise"
	DefaultMaxCards = 20

	// Bounds on how much source text one prompt may carry.
	maxPromptChunks  = 25
	excerptCharLimit = 1500
)

const systemPrompt = `You are a flashcard author for university students.
You respond with a JSON array and nothing else: no prose, no markdown,
no code fences. Each element is an object with "front" (question),
"back" (answer) and optional "tags" (array of strings).`

const userPromptTemplate = `Create up to {max_cards} study flashcards about "{topic}".
Write them in a {tone} style. Base every card strictly on the excerpts
below and do not invent facts that are not in them.

Excerpts:
{excerpts}

Return only the JSON array.`

var validTones = map[string]bool{
	"concise":  true,
	"detailed": true,
	"beginner": true,
	"advanced": true,
}

// BuildPrompt renders the user prompt from the chunk excerpts. At most
// maxPromptChunks chunks are included, each truncated to
// excerptCharLimit characters.
func BuildPrompt(chunks []*schema.Document, opts Options) string {
	var sb strings.Builder
	for i, chunk := range chunks {
		if i >= maxPromptChunks {
			break
		}
		sb.WriteString(fmt.Sprintf("[%d] (chunk %s)\n%s\n\n", i, chunk.ID, truncate(chunk.Content, excerptCharLimit)))
	}

	prompt := strings.ReplaceAll(userPromptTemplate, "{max_cards}", fmt.Sprintf("%d", opts.MaxCards))
	prompt = strings.ReplaceAll(prompt, "{topic}", opts.Topic)
	prompt = strings.ReplaceAll(prompt, "{tone}", opts.Tone)
	prompt = strings.ReplaceAll(prompt, "{excerpts}", strings.TrimRight(sb.String(), "\n"))
	return prompt
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
