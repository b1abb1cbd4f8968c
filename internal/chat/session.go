package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// ErrorText replaces a failed model reply.
const ErrorText = "Error connecting to AI agent."

var (
	// ErrBlankMessage is returned for an empty or whitespace-only send.
	ErrBlankMessage = errors.New("message is blank")
	// ErrSendInFlight is returned when a reply is still streaming.
	ErrSendInFlight = errors.New("a reply is already streaming")
)

// Session is the chat of one open project workspace. At most one Send runs at
// a time; messages are updated by id against the current state.
type Session struct {
	streamer Streamer
	now      func() time.Time

	mu       sync.Mutex
	messages []Message
	busy     bool
}

// NewSession starts a session seeded with the welcome message for projectTitle.
func NewSession(streamer Streamer, projectTitle string) *Session {
	s := &Session{streamer: streamer, now: time.Now}
	s.messages = []Message{{
		ID:        newMessageID(),
		Role:      RoleModel,
		Text:      WelcomeText(projectTitle),
		Timestamp: s.now(),
	}}
	return s
}

// Messages returns a snapshot of the conversation.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Busy reports whether a reply is streaming.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Send appends text as a user message and streams the model reply into a
// placeholder message, calling publish with a snapshot after every change.
//
// On failure, whether opening the stream or mid-stream, the placeholder is
// removed and a model message carrying ErrorText is appended; the error is
// also returned. Blank text and concurrent sends are rejected without any
// state change.
func (s *Session) Send(ctx context.Context, text string, publish func([]Message)) error {
	if strings.TrimSpace(text) == "" {
		return ErrBlankMessage
	}
	if publish == nil {
		publish = func([]Message) {}
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrSendInFlight
	}
	s.busy = true
	history := turns(s.messages)
	s.messages = append(s.messages, Message{
		ID:        newMessageID(),
		Role:      RoleUser,
		Text:      text,
		Timestamp: s.now(),
	})
	snap := s.snapshot()
	s.mu.Unlock()

	defer s.release()
	publish(snap)

	fragments, err := s.streamer.Stream(ctx, history, text)
	if err != nil {
		publish(s.fail(""))
		return err
	}

	replyID := newMessageID()
	publish(s.mutate(func() {
		s.messages = append(s.messages, Message{
			ID:          replyID,
			Role:        RoleModel,
			Timestamp:   s.now(),
			IsStreaming: true,
		})
	}))

	for fragment, err := range fragments {
		if err != nil {
			publish(s.fail(replyID))
			return err
		}
		publish(s.mutate(func() {
			if i := s.indexOf(replyID); i >= 0 {
				s.messages[i].Text += fragment
			}
		}))
	}

	publish(s.mutate(func() {
		if i := s.indexOf(replyID); i >= 0 {
			s.messages[i].IsStreaming = false
		}
	}))
	return nil
}

// fail drops the placeholder, if any, and appends the error message.
func (s *Session) fail(placeholderID string) []Message {
	return s.mutate(func() {
		if i := s.indexOf(placeholderID); i >= 0 {
			s.messages = append(s.messages[:i:i], s.messages[i+1:]...)
		}
		s.messages = append(s.messages, Message{
			ID:        newMessageID(),
			Role:      RoleModel,
			Text:      ErrorText,
			Timestamp: s.now(),
		})
		slog.Debug("chat reply failed", "messages", len(s.messages))
	})
}

func (s *Session) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *Session) mutate(fn func()) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
	return s.snapshot()
}

func (s *Session) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, m := range s.messages {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// snapshot must be called with mu held.
func (s *Session) snapshot() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}
