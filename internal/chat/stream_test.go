package chat

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/josephgoksu/horizon/internal/llm"
	"github.com/josephgoksu/horizon/internal/llm/llmtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// mockChatModel implements model.BaseChatModel for testing.
type mockChatModel struct {
	chunks    []string
	streamErr error

	input []*schema.Message
}

func (m *mockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return nil, errors.New("not used")
}

func (m *mockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	m.input = input
	if m.streamErr != nil {
		return nil, m.streamErr
	}
	msgs := make([]*schema.Message, 0, len(m.chunks))
	for _, c := range m.chunks {
		msgs = append(msgs, schema.AssistantMessage(c, nil))
	}
	return schema.StreamReaderFromArray(msgs), nil
}

func factory(m *mockChatModel) ModelFactory {
	return func(context.Context, llm.Config) (model.BaseChatModel, error) { return m, nil }
}

func collect(t *testing.T, seqErr error, fragments func(func(string, error) bool)) ([]string, error) {
	t.Helper()
	require.NoError(t, seqErr)
	var out []string
	var err error
	fragments(func(s string, e error) bool {
		if e != nil {
			err = e
			return false
		}
		out = append(out, s)
		return true
	})
	return out, err
}

func TestGeminiStreamer_NoCredential(t *testing.T) {
	fake := &llmtest.Generator{Chunks: []string{"x"}}
	_, err := NewGeminiStreamer(fake, llm.Config{}).Stream(context.Background(), nil, "hi")
	assert.ErrorIs(t, err, llm.ErrNoCredential)
	assert.Empty(t, fake.Calls())
}

func TestGeminiStreamer_YieldsNonEmptyFragments(t *testing.T) {
	fake := &llmtest.Generator{Chunks: []string{"Hel", "", "lo, ", "world"}}
	s := NewGeminiStreamer(fake, llm.Config{APIKey: "k"})

	seq, err := s.Stream(context.Background(), []Turn{
		{Role: RoleModel, Text: "Welcome"},
		{Role: RoleUser, Text: "earlier"},
	}, "hi")
	got, err := collect(t, err, seq)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hel", "lo, ", "world"}, got)

	call := fake.Calls()[0]
	assert.Equal(t, llm.DefaultGeminiChatModel, call.Model)
	require.Len(t, call.Contents, 3)
	assert.Equal(t, "model", call.Contents[0].Role)
	assert.Equal(t, "user", call.Contents[1].Role)
	assert.Equal(t, "hi", call.Contents[2].Parts[0].Text)
	assert.NotNil(t, call.Config.SystemInstruction)
}

func TestGeminiStreamer_MidStreamError(t *testing.T) {
	cause := errors.New("stream broke")
	fake := &llmtest.Generator{Chunks: []string{"a"}, StreamErr: cause}

	seq, err := NewGeminiStreamer(fake, llm.Config{APIKey: "k"}).Stream(context.Background(), nil, "hi")
	got, err := collect(t, err, seq)
	assert.Equal(t, []string{"a"}, got)
	var perr *llm.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, cause)
}

func TestGeminiStreamer_CancelledBetweenFragments(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fake := &llmtest.Generator{Chunks: []string{"a", "b", "c"}}

	seq, err := NewGeminiStreamer(fake, llm.Config{APIKey: "k"}).Stream(ctx, nil, "hi")
	require.NoError(t, err)

	var got []string
	var streamErr error
	for f, err := range seq {
		if err != nil {
			streamErr = err
			break
		}
		got = append(got, f)
		cancel()
	}
	assert.Equal(t, []string{"a"}, got)
	assert.ErrorIs(t, streamErr, context.Canceled)
}

func TestStream_NotRestartable(t *testing.T) {
	fake := &llmtest.Generator{Chunks: []string{"a"}}
	seq, err := NewGeminiStreamer(fake, llm.Config{APIKey: "k"}).Stream(context.Background(), nil, "hi")
	_, err = collect(t, err, seq)
	require.NoError(t, err)

	_, err = collect(t, nil, seq)
	assert.ErrorIs(t, err, ErrStreamConsumed)
}

func TestEinoStreamer_Stream(t *testing.T) {
	m := &mockChatModel{chunks: []string{"Hel", "", "lo"}}
	cfg := llm.Config{ChatProvider: llm.ProviderOpenAI, ChatAPIKey: "k"}

	seq, err := NewEinoStreamer(cfg, factory(m)).Stream(context.Background(), []Turn{
		{Role: RoleModel, Text: "Welcome"},
	}, "hi")
	got, err := collect(t, err, seq)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hel", "lo"}, got)

	require.Len(t, m.input, 3)
	assert.Equal(t, schema.System, m.input[0].Role)
	assert.Equal(t, schema.Assistant, m.input[1].Role)
	assert.Equal(t, schema.User, m.input[2].Role)
	assert.Equal(t, "hi", m.input[2].Content)
}

func TestEinoStreamer_NoCredential(t *testing.T) {
	called := false
	f := func(context.Context, llm.Config) (model.BaseChatModel, error) {
		called = true
		return nil, nil
	}
	_, err := NewEinoStreamer(llm.Config{ChatProvider: llm.ProviderAnthropic}, f).Stream(context.Background(), nil, "hi")
	assert.ErrorIs(t, err, llm.ErrNoCredential)
	assert.False(t, called)
}

func TestEinoStreamer_OpenError(t *testing.T) {
	m := &mockChatModel{streamErr: io.ErrUnexpectedEOF}
	cfg := llm.Config{ChatProvider: llm.ProviderOllama}

	_, err := NewEinoStreamer(cfg, factory(m)).Stream(context.Background(), nil, "hi")
	var perr *llm.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestNewStreamer_SelectsBackend(t *testing.T) {
	_, ok := NewStreamer(&llmtest.Generator{}, llm.Config{}).(*GeminiStreamer)
	assert.True(t, ok)

	_, ok = NewStreamer(&llmtest.Generator{}, llm.Config{ChatProvider: llm.ProviderOllama}).(*EinoStreamer)
	assert.True(t, ok)
}

func TestSession_WithGeminiStreamer(t *testing.T) {
	fake := &llmtest.Generator{Chunks: []string{"Hel", "lo, ", "world"}}
	s := NewSession(NewGeminiStreamer(fake, llm.Config{APIKey: "k"}), "P")

	require.NoError(t, s.Send(context.Background(), "hi", nil))
	last := s.Messages()[2]
	assert.Equal(t, "Hello, world", last.Text)
	assert.False(t, last.IsStreaming)
}
