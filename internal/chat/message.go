// Package chat implements the per-project co-founder chat: provider streaming
// backends and the session state machine that folds a stream into messages.
package chat

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one entry of a chat session.
// IsStreaming is true only for the model message currently receiving fragments.
type Message struct {
	ID          string    `json:"id"`
	Role        Role      `json:"role"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
	IsStreaming bool      `json:"isStreaming,omitempty"`
}

// Turn is the role and text of a prior message, as sent to a provider.
type Turn struct {
	Role Role
	Text string
}

// WelcomeText is the model message a new session starts with.
func WelcomeText(projectTitle string) string {
	return fmt.Sprintf("Welcome to the workspace for **%s**. I've laid out an initial plan. Would you like to refine the tasks or start researching resources?", projectTitle)
}

func newMessageID() string {
	return uuid.NewString()
}

// turns strips messages down to the history form sent to providers.
func turns(msgs []Message) []Turn {
	out := make([]Turn, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, Turn{Role: m.Role, Text: m.Text})
	}
	return out
}
