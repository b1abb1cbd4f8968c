// Package research answers free-text queries with search-grounded summaries.
package research

import (
	"context"
	"log/slog"

	"github.com/josephgoksu/horizon/internal/config"
	"github.com/josephgoksu/horizon/internal/llm"
	"google.golang.org/genai"
)

const (
	// NoCredentialText is returned instead of a search when no API key is set.
	NoCredentialText = "Please configure API Key to search."
	// NoResultsText replaces an empty summary.
	NoResultsText = "No results found."
)

// Link is a grounding source cited by a research result.
type Link struct {
	Title string `json:"title" yaml:"title"`
	URI   string `json:"uri" yaml:"uri"`
}

// Result is a research summary with its sources.
type Result struct {
	Text  string `json:"text" yaml:"text"`
	Links []Link `json:"links" yaml:"links"`
}

// Client performs search-grounded research.
type Client struct {
	gen llm.ContentGenerator
	cfg llm.Config
}

// NewClient creates a research client backed by gen.
func NewClient(gen llm.ContentGenerator, cfg llm.Config) *Client {
	if cfg.ResearchModel == "" {
		cfg.ResearchModel = llm.DefaultResearchModel
	}
	return &Client{gen: gen, cfg: cfg}
}

// Research summarizes what the web says about query. Without a credential it
// returns an advisory result rather than an error.
func (c *Client) Research(ctx context.Context, query string) (*Result, error) {
	if !c.cfg.HasCredential() {
		return &Result{Text: NoCredentialText, Links: []Link{}}, nil
	}

	resp, err := c.gen.GenerateContent(ctx, c.cfg.ResearchModel, genai.Text(query), &genai.GenerateContentConfig{
		Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		SystemInstruction: genai.NewContentFromText(config.SystemPromptResearch, genai.RoleUser),
	})
	if err != nil {
		return nil, &llm.ProviderError{Op: "research", Err: err}
	}

	result := &Result{Text: NoResultsText, Links: []Link{}}
	if resp == nil {
		return result, nil
	}
	if text := resp.Text(); text != "" {
		result.Text = text
	}
	result.Links = groundingLinks(resp)

	slog.Debug("research complete", "model", c.cfg.ResearchModel, "links", len(result.Links))
	return result, nil
}

// groundingLinks collects web sources from the first candidate in provider
// order. Chunks missing a title or URI are skipped; duplicates are kept. The
// result is never nil.
func groundingLinks(resp *genai.GenerateContentResponse) []Link {
	links := []Link{}
	if len(resp.Candidates) == 0 {
		return links
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return links
	}

	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		if chunk.Web.Title == "" || chunk.Web.URI == "" {
			continue
		}
		links = append(links, Link{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return links
}
