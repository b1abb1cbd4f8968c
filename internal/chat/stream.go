package chat

import (
	"context"
	"errors"
	"io"
	"iter"
	"sync/atomic"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/josephgoksu/horizon/internal/config"
	"github.com/josephgoksu/horizon/internal/llm"
	"google.golang.org/genai"
)

// ErrStreamConsumed is yielded when a fragment sequence is iterated twice.
var ErrStreamConsumed = errors.New("chat stream already consumed")

// Streamer opens a streamed chat reply.
//
// Stream fails before any network call when the backend is not configured.
// The returned sequence is lazy, finite and can be ranged over only once; it
// yields non-empty text fragments and ends after the first error.
type Streamer interface {
	Stream(ctx context.Context, history []Turn, message string) (iter.Seq2[string, error], error)
}

// NewStreamer returns the streamer for the configured chat provider. Gemini
// uses gen directly; the other providers go through Eino chat models.
func NewStreamer(gen llm.ContentGenerator, cfg llm.Config) Streamer {
	if cfg.ChatModel == "" {
		cfg.ChatModel = llm.DefaultChatModelForProvider(cfg.ChatProvider)
	}
	switch cfg.ChatProvider {
	case "", llm.ProviderGemini:
		return NewGeminiStreamer(gen, cfg)
	default:
		return NewEinoStreamer(cfg, llm.NewChatModel)
	}
}

// GeminiStreamer streams replies from genai's GenerateContentStream.
type GeminiStreamer struct {
	gen llm.ContentGenerator
	cfg llm.Config
}

// NewGeminiStreamer creates a Gemini chat streamer.
func NewGeminiStreamer(gen llm.ContentGenerator, cfg llm.Config) *GeminiStreamer {
	if cfg.ChatModel == "" {
		cfg.ChatModel = llm.DefaultGeminiChatModel
	}
	return &GeminiStreamer{gen: gen, cfg: cfg}
}

// Stream implements Streamer.
func (g *GeminiStreamer) Stream(ctx context.Context, history []Turn, message string) (iter.Seq2[string, error], error) {
	if !g.cfg.HasCredential() {
		return nil, llm.ErrNoCredential
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, t := range history {
		var role genai.Role = genai.RoleUser
		if t.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	responses := g.gen.GenerateContentStream(ctx, g.cfg.ChatModel, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(config.SystemPromptArchitect, genai.RoleUser),
	})

	return once(func(yield func(string, error) bool) {
		for resp, err := range responses {
			if err != nil {
				yield("", &llm.ProviderError{Op: "chat stream", Err: err})
				return
			}
			if err := ctx.Err(); err != nil {
				yield("", err)
				return
			}
			if resp == nil {
				continue
			}
			text := resp.Text()
			if text == "" {
				continue
			}
			if !yield(text, nil) {
				return
			}
		}
	}), nil
}

// ModelFactory builds an Eino chat model from configuration.
type ModelFactory func(ctx context.Context, cfg llm.Config) (model.BaseChatModel, error)

// EinoStreamer streams replies from an Eino chat model (OpenAI, Ollama, Anthropic).
type EinoStreamer struct {
	cfg      llm.Config
	newModel ModelFactory
}

// NewEinoStreamer creates a streamer that builds its model with newModel on
// every Stream call.
func NewEinoStreamer(cfg llm.Config, newModel ModelFactory) *EinoStreamer {
	return &EinoStreamer{cfg: cfg, newModel: newModel}
}

// Stream implements Streamer.
func (e *EinoStreamer) Stream(ctx context.Context, history []Turn, message string) (iter.Seq2[string, error], error) {
	if !e.cfg.HasChatCredential() {
		return nil, llm.ErrNoCredential
	}

	chatModel, err := e.newModel(ctx, e.cfg)
	if err != nil {
		if errors.Is(err, llm.ErrNoCredential) {
			return nil, err
		}
		return nil, &llm.ProviderError{Op: "create chat model", Err: err}
	}

	messages := make([]*schema.Message, 0, len(history)+2)
	messages = append(messages, schema.SystemMessage(config.SystemPromptArchitect))
	for _, t := range history {
		if t.Role == RoleModel {
			messages = append(messages, schema.AssistantMessage(t.Text, nil))
		} else {
			messages = append(messages, schema.UserMessage(t.Text))
		}
	}
	messages = append(messages, schema.UserMessage(message))

	stream, err := chatModel.Stream(ctx, messages)
	if err != nil {
		return nil, &llm.ProviderError{Op: "chat stream", Err: err}
	}

	return once(func(yield func(string, error) bool) {
		defer stream.Close()
		for {
			chunk, err := stream.Recv()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield("", &llm.ProviderError{Op: "recv stream", Err: err})
				return
			}
			if err := ctx.Err(); err != nil {
				yield("", err)
				return
			}
			if chunk == nil || chunk.Content == "" {
				continue
			}
			if !yield(chunk.Content, nil) {
				return
			}
		}
	}), nil
}

// once makes seq non-restartable: later iterations yield ErrStreamConsumed.
func once(seq iter.Seq2[string, error]) iter.Seq2[string, error] {
	var used atomic.Bool
	return func(yield func(string, error) bool) {
		if used.Swap(true) {
			yield("", ErrStreamConsumed)
			return
		}
		seq(yield)
	}
}
