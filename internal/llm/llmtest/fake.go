// Package llmtest provides an in-memory llm.ContentGenerator for tests.
package llmtest

import (
	"context"
	"iter"
	"sync"

	"google.golang.org/genai"
)

// Call records one request made against the fake.
type Call struct {
	Model    string
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

// Generator is a scripted llm.ContentGenerator.
type Generator struct {
	Response *genai.GenerateContentResponse
	Err      error

	// ByModel and ErrByModel override Response and Err for a given model.
	ByModel    map[string]*genai.GenerateContentResponse
	ErrByModel map[string]error

	// Chunks are yielded in order by GenerateContentStream.
	Chunks []string
	// StreamErr, when set, is yielded after the chunks.
	StreamErr error

	mu    sync.Mutex
	calls []Call
}

// GenerateContent returns the scripted response or error.
func (g *Generator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	g.record(model, contents, config)
	if err, ok := g.ErrByModel[model]; ok {
		return nil, err
	}
	if resp, ok := g.ByModel[model]; ok {
		return resp, nil
	}
	if g.Err != nil {
		return nil, g.Err
	}
	return g.Response, nil
}

// GenerateContentStream yields one response per scripted chunk.
func (g *Generator) GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	g.record(model, contents, config)
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		if g.Err != nil {
			yield(nil, g.Err)
			return
		}
		for _, c := range g.Chunks {
			if !yield(TextResponse(c), nil) {
				return
			}
		}
		if g.StreamErr != nil {
			yield(nil, g.StreamErr)
		}
	}
}

// CallsFor returns the recorded requests made against model.
func (g *Generator) CallsFor(model string) []Call {
	var out []Call
	for _, c := range g.Calls() {
		if c.Model == model {
			out = append(out, c)
		}
	}
	return out
}

// Calls returns a copy of the recorded requests.
func (g *Generator) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Call, len(g.calls))
	copy(out, g.calls)
	return out
}

func (g *Generator) record(model string, contents []*genai.Content, config *genai.GenerateContentConfig) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, Call{Model: model, Contents: contents, Config: config})
}

// TextResponse builds a single-candidate response carrying text.
func TextResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(text, genai.RoleModel),
		}},
	}
}

// PartsResponse builds a single-candidate response carrying the given parts.
func PartsResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: string(genai.RoleModel), Parts: parts},
		}},
	}
}
