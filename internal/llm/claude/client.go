// Package claude adapts the Anthropic Messages API to the single-shot text
// generation capability used for summarization and evidence discovery.
package claude

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// responseTokens bounds a single generation; summaries and discovery lists
// are short.
const responseTokens = 1024

// Client generates text through the Claude Messages API.
type Client struct {
	client anthropic.Client
	model  string
}

// New creates a Claude client with the given API key and model name. Extra
// request options (e.g. a test base URL) are appended after the key.
func New(apiKey, model string, opts ...option.RequestOption) *Client {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Client{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

// Generate sends a single-turn prompt and returns the concatenated text
// blocks of the response.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: responseTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude: %w", err)
	}

	var out strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	return out.String(), nil
}
