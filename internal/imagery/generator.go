// Package imagery renders a cover image for a project.
package imagery

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/josephgoksu/horizon/internal/config"
	"github.com/josephgoksu/horizon/internal/llm"
	"google.golang.org/genai"
)

// PlaceholderURL is returned whenever no generated image is available.
const PlaceholderURL = "https://picsum.photos/400/300"

// AspectRatio is the aspect ratio hint sent with every request.
const AspectRatio = "16:9"

// Generator produces project cover images. It never fails: every error path
// degrades to PlaceholderURL.
type Generator struct {
	gen llm.ContentGenerator
	cfg llm.Config
}

// NewGenerator creates an image generator backed by gen.
func NewGenerator(gen llm.ContentGenerator, cfg llm.Config) *Generator {
	if cfg.ImageModel == "" {
		cfg.ImageModel = llm.DefaultImageModel
	}
	return &Generator{gen: gen, cfg: cfg}
}

// Generate returns a data URI for an image depicting description, or the
// placeholder URL.
func (g *Generator) Generate(ctx context.Context, description string) string {
	if !g.cfg.HasCredential() {
		return PlaceholderURL
	}

	resp, err := g.gen.GenerateContent(ctx, g.cfg.ImageModel,
		genai.Text(fmt.Sprintf(config.PromptConceptArt, description)),
		&genai.GenerateContentConfig{
			ImageConfig: &genai.ImageConfig{AspectRatio: AspectRatio},
		})
	if err != nil {
		slog.Warn("image generation failed", "model", g.cfg.ImageModel, "error", err)
		return PlaceholderURL
	}

	if uri, ok := firstInlineImage(resp); ok {
		return uri
	}
	slog.Warn("image generation returned no inline data", "model", g.cfg.ImageModel)
	return PlaceholderURL
}

func firstInlineImage(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", false
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		return DataURI(part.InlineData.MIMEType, part.InlineData.Data), true
	}
	return "", false
}

// DataURI encodes data as a base64 data URI. An empty mime defaults to image/png.
func DataURI(mime string, data []byte) string {
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
