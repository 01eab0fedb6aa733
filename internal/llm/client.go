package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"sitechat/internal/prompt"
)

// Invoker is the seam between the analysis service and the remote model.
// Tests substitute a fake; production uses *Client.
type Invoker interface {
	Invoke(ctx context.Context, messages []prompt.Message) (string, error)
}

// Options holds the generation parameters for one client. Temperature is
// in [0,2]; MaxTokens of 0 leaves the cap to the provider; MaxRetries is
// the number of additional attempts after the first.
type Options struct {
	Model       string
	Temperature float32
	MaxTokens   int
	MaxRetries  int
	Timeout     time.Duration
}

// ErrEmptyResponse marks a well-formed HTTP reply whose envelope carries
// no usable text (no choices, or blank content).
var ErrEmptyResponse = errors.New("completion response contains no text")

// Client calls an OpenAI-compatible chat-completion endpoint (Groq by
// default). It is constructed explicitly and passed in wherever a model
// call is needed; nothing reads ambient global state.
type Client struct {
	api  *openai.Client
	opts Options
}

func NewClient(apiKey, baseURL string, opts Options) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if opts.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		api:  openai.NewClientWithConfig(cfg),
		opts: opts,
	}
}

// Invoke sends the ordered message sequence and returns the text payload
// of the first choice. Transport failures are retried up to MaxRetries
// with a short backoff; a malformed envelope is not retried, since the
// provider answered and simply had nothing to say.
func (c *Client) Invoke(ctx context.Context, messages []prompt.Message) (string, error) {
	// go-openai omits a zero temperature from the request body, which
	// would leave sampling at the provider default. Temperature 0 is a
	// valid, deliberate setting (deterministic output), so send the
	// smallest representable value instead; providers treat it as 0.
	temperature := c.opts.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	req := openai.ChatCompletionRequest{
		Model:       c.opts.Model,
		Temperature: temperature,
		MaxTokens:   c.opts.MaxTokens,
		Messages:    toChatMessages(messages),
	}

	var lastErr error
	attempts := c.opts.MaxRetries + 1
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(i) * 500 * time.Millisecond):
			}
		}

		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Choices) == 0 {
			return "", ErrEmptyResponse
		}
		text := resp.Choices[0].Message.Content
		if strings.TrimSpace(text) == "" {
			return "", ErrEmptyResponse
		}
		return text, nil
	}

	return "", fmt.Errorf("chat completion failed after %d attempts: %w", attempts, lastErr)
}

func toChatMessages(messages []prompt.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == prompt.RoleSystem {
			role = openai.ChatMessageRoleSystem
		}
		out[i] = openai.ChatCompletionMessage{Role: role, Content: m.Text}
	}
	return out
}
