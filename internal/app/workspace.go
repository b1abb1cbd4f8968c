package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/josephgoksu/horizon/internal/chat"
	"github.com/josephgoksu/horizon/internal/research"
	"github.com/josephgoksu/horizon/internal/telemetry"
)

// ErrBlankQuery is returned when Research is called without a query.
var ErrBlankQuery = errors.New("research query is blank")

// WorkspaceApp owns the chat sessions of open project workspaces. A session
// lives from Open until Close; it is never persisted on the project.
type WorkspaceApp struct {
	ctx *Context

	mu       sync.Mutex
	sessions map[string]*chat.Session
}

// NewWorkspaceApp creates a new workspace application service.
func NewWorkspaceApp(ctx *Context) *WorkspaceApp {
	return &WorkspaceApp{ctx: ctx, sessions: make(map[string]*chat.Session)}
}

// Open returns the chat session for a project, starting one seeded with the
// welcome message if the workspace is not open yet.
func (w *WorkspaceApp) Open(projectID string) (*chat.Session, error) {
	p, err := w.ctx.Store.Resolve(projectID)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if s, ok := w.sessions[p.ID]; ok {
		return s, nil
	}
	s := chat.NewSession(w.ctx.Streamer, p.Title)
	w.sessions[p.ID] = s
	w.ctx.Telemetry.Track(telemetry.EventWorkspaceOpened, nil)
	return s, nil
}

// Close discards the chat session of a project. Closing a workspace that is
// not open is a no-op.
func (w *WorkspaceApp) Close(projectID string) {
	if p, err := w.ctx.Store.Resolve(projectID); err == nil {
		projectID = p.ID
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.sessions, projectID)
}

// IsOpen reports whether a project has a live chat session.
func (w *WorkspaceApp) IsOpen(projectID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.sessions[projectID]
	return ok
}

// Send sends text in the project's chat, opening the workspace if needed, and
// returns the conversation after the reply completes or fails.
func (w *WorkspaceApp) Send(ctx context.Context, projectID, text string, publish func([]chat.Message)) ([]chat.Message, error) {
	s, err := w.Open(projectID)
	if err != nil {
		return nil, err
	}

	sendCtx, cancel := w.ctx.withTimeout(ctx)
	defer cancel()

	err = s.Send(sendCtx, text, publish)
	switch {
	case errors.Is(err, chat.ErrBlankMessage), errors.Is(err, chat.ErrSendInFlight):
		return s.Messages(), err
	case err != nil:
		w.ctx.Telemetry.Track(telemetry.EventChatFailed, nil)
		return s.Messages(), fmt.Errorf("chat: %w", err)
	}
	w.ctx.Telemetry.Track(telemetry.EventChatMessageSent, nil)
	return s.Messages(), nil
}

// Research runs a search-grounded query. Results are not stored.
func (w *WorkspaceApp) Research(ctx context.Context, query string) (*research.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrBlankQuery
	}

	rctx, cancel := w.ctx.withTimeout(ctx)
	defer cancel()

	res, err := w.ctx.Research.Research(rctx, query)
	if err != nil {
		return nil, err
	}
	w.ctx.Telemetry.Track(telemetry.EventResearchComplete, telemetry.Properties{"links": len(res.Links)})
	return res, nil
}
