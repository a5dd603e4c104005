package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"council/internal/council"
)

// defaultBaseURL is the default OpenRouter API base URL.
const defaultBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter implements Client against the OpenRouter chat-completions API.
type OpenRouter struct {
	APIKey  string
	BaseURL string
	Client  HTTPDoer
}

// NewOpenRouter constructs a gateway client with explicit settings.
func NewOpenRouter(apiKey, baseURL string, client HTTPDoer) (*OpenRouter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenRouter{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
	}, nil
}

// Query sends a single non-streaming request and returns the reply.
// The reply's tool calls are returned unexecuted.
func (g *OpenRouter) Query(ctx context.Context, model string, messages []council.Message, tools []Tool, timeout time.Duration) (QueryResult, error) {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	reply, err := g.send(ctx, model, messages, tools, timeout)
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{
		Content:   reply.Content,
		ToolCalls: toToolCalls(reply.ToolCalls),
	}, nil
}

// send issues one request and returns the assistant message.
func (g *OpenRouter) send(ctx context.Context, model string, messages []council.Message, tools []Tool, timeout time.Duration) (wireMessage, error) {
	payload, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: buildWireMessages(messages),
		Tools:    buildWireTools(tools),
	})
	if err != nil {
		return wireMessage{}, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := g.post(ctx, payload)
	if err != nil {
		return wireMessage{}, wrapTransport(err, timeout)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return wireMessage{}, fmt.Errorf("gateway error: %s", strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		if isTimeout(err) || ctx.Err() != nil {
			return wireMessage{}, timeoutError(timeout)
		}
		return wireMessage{}, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return wireMessage{}, nil
	}
	return parsed.Choices[0].Message, nil
}

// post sends a JSON body to the chat-completions endpoint.
func (g *OpenRouter) post(ctx context.Context, payload []byte) (*http.Response, error) {
	endpoint := g.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")
	return g.Client.Do(req)
}

// withTimeout applies the per-request deadline when one is configured.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// timeoutError reports a wall-clock deadline expiry.
func timeoutError(timeout time.Duration) error {
	return errors.New("Timeout after " + formatSeconds(timeout) + "s")
}

// formatSeconds renders a duration as whole or fractional seconds.
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

// wrapTransport converts a transport failure, mapping deadline expiry to
// the timeout message contract.
func wrapTransport(err error, timeout time.Duration) error {
	if isTimeout(err) {
		return timeoutError(timeout)
	}
	return err
}

// isTimeout reports whether an error stems from a deadline expiry.
func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
