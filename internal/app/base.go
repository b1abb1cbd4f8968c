// Package app provides the application layer that orchestrates business logic.
// The terminal workspace, the one-shot commands and the MCP server are thin
// adapters over these services and share one in-memory session.
package app

import (
	"context"
	"time"

	"github.com/josephgoksu/horizon/internal/chat"
	"github.com/josephgoksu/horizon/internal/imagery"
	"github.com/josephgoksu/horizon/internal/llm"
	"github.com/josephgoksu/horizon/internal/planner"
	"github.com/josephgoksu/horizon/internal/project"
	"github.com/josephgoksu/horizon/internal/research"
	"github.com/josephgoksu/horizon/internal/telemetry"
)

// Context holds shared dependencies for all app services.
type Context struct {
	LLMCfg    llm.Config
	Store     *project.Store
	Planner   *planner.Generator
	Imagery   *imagery.Generator
	Research  *research.Client
	Streamer  chat.Streamer
	Telemetry telemetry.Client

	// Timeout bounds each provider call. Zero means no timeout.
	Timeout time.Duration

	now func() time.Time
}

// NewContext creates an app context with a lazily connected Gemini client and
// an empty project store. A missing credential does not fail here; it surfaces
// from the operations that need one.
func NewContext(llmCfg llm.Config, tel telemetry.Client) *Context {
	return NewContextWithGenerator(llm.NewLazyGenerator(llmCfg), llmCfg, project.NewStore(), tel)
}

// NewContextWithGenerator creates an app context around an explicit content
// generator and store. Use this in tests or when the store is pre-seeded.
func NewContextWithGenerator(gen llm.ContentGenerator, llmCfg llm.Config, store *project.Store, tel telemetry.Client) *Context {
	if tel == nil {
		tel = telemetry.NewNoopClient()
	}
	if store == nil {
		store = project.NewStore()
	}
	return &Context{
		LLMCfg:    llmCfg,
		Store:     store,
		Planner:   planner.NewGenerator(gen, llmCfg),
		Imagery:   imagery.NewGenerator(gen, llmCfg),
		Research:  research.NewClient(gen, llmCfg),
		Streamer:  chat.NewStreamer(gen, llmCfg),
		Telemetry: tel,
		now:       time.Now,
	}
}

// Now returns the current time from the context clock.
func (c *Context) Now() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func (c *Context) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.Timeout)
}
