package gemini

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

const defaultHTTPTimeout = 60 * time.Second

// Completer produces a free-text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Turn is one message of a conversation transcript.
type Turn struct {
	Role string // "user" or "assistant"
	Text string
}

// Client wraps the Gemini API for profile extraction, categorization and the
// concierge chat.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client. A missing API key or model name is a
// configuration error and fails immediately.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("gemini model name is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: defaultHTTPTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Complete sends a single-prompt generation request and returns the text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	return resp.Text(), nil
}

// Converse sends a system prompt plus a conversation transcript and returns
// the model's reply. Assistant turns map to the model role.
func (c *Client) Converse(ctx context.Context, systemPrompt string, turns []Turn) (string, error) {
	contents := make([]*genai.Content, 0, len(turns)+1)
	contents = append(contents, genai.NewContentFromText(systemPrompt, genai.RoleUser))
	for _, turn := range turns {
		contents = append(contents, genai.NewContentFromText(turn.Text, turnRole(turn)))
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini chat failed: %w", err)
	}
	return resp.Text(), nil
}

// turnRole maps a transcript role onto the API's role set. Anything that is
// not the user (the frontend sends "assistant") becomes the model role.
func turnRole(t Turn) genai.Role {
	if t.Role == "user" {
		return genai.RoleUser
	}
	return genai.RoleModel
}

// ModelName returns the configured model (for logging).
func (c *Client) ModelName() string {
	return c.model
}
