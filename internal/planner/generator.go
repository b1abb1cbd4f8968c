package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/josephgoksu/horizon/internal/config"
	"github.com/josephgoksu/horizon/internal/llm"
	"google.golang.org/genai"
)

// Generator produces validated project plans from raw ideas.
type Generator struct {
	gen llm.ContentGenerator
	cfg llm.Config
}

// NewGenerator creates a plan generator backed by gen.
func NewGenerator(gen llm.ContentGenerator, cfg llm.Config) *Generator {
	if cfg.PlanModel == "" {
		cfg.PlanModel = llm.DefaultPlanModel
	}
	if cfg.ThinkingBudget == 0 {
		cfg.ThinkingBudget = llm.DefaultThinkingBudget
	}
	return &Generator{gen: gen, cfg: cfg}
}

// GeneratePlan asks the provider for a structured plan of idea.
//
// It fails with llm.ErrNoCredential before any network call when no API key is
// configured, with *llm.ProviderError on transport failure, with
// llm.ErrEmptyResponse on an empty answer, and with *llm.ParseError when the
// answer is not JSON or does not satisfy the plan schema.
func (g *Generator) GeneratePlan(ctx context.Context, idea string) (*PlanResponse, error) {
	if !g.cfg.HasCredential() {
		return nil, llm.ErrNoCredential
	}

	budget := g.cfg.ThinkingBudget
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(config.SystemPromptArchitect, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    ResponseSchema(),
		ThinkingConfig:    &genai.ThinkingConfig{ThinkingBudget: &budget},
	}

	slog.Debug("generating plan", "model", g.cfg.PlanModel, "idea_len", len(idea))
	resp, err := g.gen.GenerateContent(ctx, g.cfg.PlanModel, genai.Text(fmt.Sprintf(config.PromptPlan, idea)), genCfg)
	if err != nil {
		return nil, &llm.ProviderError{Op: "generate plan", Err: err}
	}
	if resp == nil {
		return nil, llm.ErrEmptyResponse
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, llm.ErrEmptyResponse
	}

	return parsePlan(text)
}

func parsePlan(raw string) (*PlanResponse, error) {
	var plan PlanResponse
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, &llm.ParseError{Raw: raw, Err: err}
	}

	result := plan.Validate()
	if !result.Valid {
		return nil, &llm.ParseError{
			Raw:        raw,
			Err:        fmt.Errorf("plan failed schema validation"),
			Violations: result.Messages(),
		}
	}
	return &plan, nil
}
