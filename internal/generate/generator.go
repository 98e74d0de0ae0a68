package generate

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Card is one generated flashcard before persistence.
type Card struct {
	Front          string   `json:"front"`
	Back           string   `json:"back"`
	Tags           []string `json:"tags,omitempty"`
	SourceChunkIDs []string `json:"sourceChunkIds,omitempty"`
}

// Options control one generation run.
type Options struct {
	Topic       string
	Tone        string
	MaxCards    int
	Temperature float32
}

func (o *Options) normalize() {
	if o.Topic == "" {
		o.Topic = DefaultTopic
	}
	if !validTones[o.Tone] {
		o.Tone = DefaultTone
	}
	if o.MaxCards <= 0 {
		o.MaxCards = DefaultMaxCards
	}
	if o.Temperature <= 0 {
		o.Temperature = 0.2
	}
}

// Generator turns document chunks into flashcards through a single
// configured chat model.
type Generator struct {
	chatModel model.BaseChatModel
}

func NewGenerator(chatModel model.BaseChatModel) *Generator {
	return &Generator{chatModel: chatModel}
}

// Generate prompts the model with the chunk excerpts and parses its
// response. Empty input returns an empty deck without invoking the
// model.
func (g *Generator) Generate(ctx context.Context, chunks []*schema.Document, opts Options) ([]Card, error) {
	if len(chunks) == 0 {
		return nil, nil
	}
	opts.normalize()

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(BuildPrompt(chunks, opts)),
	}

	resp, err := g.chatModel.Generate(ctx, messages, model.WithTemperature(opts.Temperature))
	if err != nil {
		return nil, fmt.Errorf("llm generate: %w", err)
	}

	return ParseResponse(resp.Content, chunks, opts.MaxCards)
}
