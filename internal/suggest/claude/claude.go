package claude

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
)

// maxTokens comfortably fits two or three recipes with steps and URLs.
const maxTokens = 2048

type Generator struct {
	model  string
	client *anthropic.Client
}

func NewGenerator(apiKey, model string, timeout time.Duration) *Generator {
	return &Generator{
		model: model,
		client: anthropic.NewClient(apiKey,
			anthropic.WithHTTPClient(&http.Client{Timeout: timeout}),
		),
	}
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(g.model),
		MaxTokens: maxTokens,
		Messages:  []anthropic.Message{anthropic.NewUserTextMessage(prompt)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call claude: %w", err)
	}

	var parts []string
	for _, content := range resp.Content {
		if content.Type == anthropic.MessagesContentTypeText {
			parts = append(parts, content.GetText())
		}
	}

	text := strings.TrimSpace(strings.Join(parts, "\n"))
	if text == "" {
		return "", fmt.Errorf("claude returned no text content")
	}
	return text, nil
}
