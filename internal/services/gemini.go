package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"simplifai-backend/internal/models"
)

// Provider is the only path to the language model. Every call carries the
// key it must authenticate with; implementations keep no per-key state.
type Provider interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
	Chat(ctx context.Context, apiKey string, history []models.ChatMessage, message string) (string, error)
}

var errEmptyResponse = errors.New("Gemini returned no text")

// GeminiProvider talks to the Gemini API with a fresh client per call.
type GeminiProvider struct {
	model     string
	opts      []option.ClientOption
	newClient func(ctx context.Context, opts ...option.ClientOption) (*genai.Client, error)
}

func NewGeminiProvider(model string, opts ...option.ClientOption) *GeminiProvider {
	return &GeminiProvider{model: model, opts: opts, newClient: genai.NewClient}
}

func (p *GeminiProvider) Model() string {
	return p.model
}

func (p *GeminiProvider) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	client, model, err := p.bind(ctx, apiKey)
	if err != nil {
		return "", err
	}
	defer client.Close()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

func (p *GeminiProvider) Chat(ctx context.Context, apiKey string, history []models.ChatMessage, message string) (string, error) {
	client, model, err := p.bind(ctx, apiKey)
	if err != nil {
		return "", err
	}
	defer client.Close()

	session := model.StartChat()
	session.History = toGenaiHistory(history)

	resp, err := session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

// bind creates the client for one request and attaches the fixed model.
// Construction errors are returned as-is so callers see the upstream text.
func (p *GeminiProvider) bind(ctx context.Context, apiKey string) (*genai.Client, *genai.GenerativeModel, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, p.opts...)
	client, err := p.newClient(ctx, opts...)
	if err != nil {
		return nil, nil, err
	}
	return client, client.GenerativeModel(p.model), nil
}

// toGenaiHistory keeps turn order, roles and part order exactly as received.
func toGenaiHistory(history []models.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		parts := make([]genai.Part, 0, len(msg.Parts))
		for _, p := range msg.Parts {
			parts = append(parts, genai.Text(p))
		}
		contents = append(contents, &genai.Content{
			Role:  string(msg.Role),
			Parts: parts,
		})
	}
	return contents
}

// responseText returns the text of the first candidate, like the Python
// SDK's response.text.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errEmptyResponse
	}

	var text strings.Builder
	found := false
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
			found = true
		}
	}
	if !found {
		return "", errEmptyResponse
	}
	return text.String(), nil
}
