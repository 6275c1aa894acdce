package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/msuss/codenames/internal/config"
)

const (
	openAIEndpoint    = "https://api.openai.com/v1/chat/completions"
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"
	geminiEndpoint    = "https://generativelanguage.googleapis.com/v1beta/models"
)

// Completer produces a JSON object from a system/user prompt pair.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (map[string]any, error)
}

// Client talks to one of the supported chat providers over plain HTTP.
type Client struct {
	provider   string
	model      string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg config.Config, model string) *Client {
	if model == "" {
		model = cfg.LLMModel
	}
	c := &Client{
		provider: cfg.LLMProvider,
		model:    model,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.AgentTimeoutSeconds) * time.Second,
		},
	}
	switch c.provider {
	case "anthropic":
		c.apiKey = cfg.AnthropicAPIKey
	case "gemini":
		c.apiKey = cfg.GeminiAPIKey
	default:
		c.provider = "openai"
		c.apiKey = cfg.OpenAIAPIKey
	}
	return c
}

func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (map[string]any, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, fmt.Errorf("%s API key is not configured", c.provider)
	}
	switch c.provider {
	case "anthropic":
		return c.completeAnthropic(ctx, systemPrompt, userPrompt)
	case "gemini":
		return c.completeGemini(ctx, systemPrompt, userPrompt)
	default:
		return c.completeOpenAI(ctx, systemPrompt, userPrompt)
	}
}

type openAIChatRequest struct {
	Model          string              `json:"model"`
	Messages       []openAIChatMessage `json:"messages"`
	ResponseFormat *openAIFormat       `json:"response_format,omitempty"`
}

type openAIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIFormat struct {
	Type string `json:"type"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) completeOpenAI(ctx context.Context, systemPrompt, userPrompt string) (map[string]any, error) {
	reqBody := openAIChatRequest{
		Model: c.model,
		Messages: []openAIChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		ResponseFormat: &openAIFormat{Type: "json_object"},
	}
	body, err := c.post(ctx, openAIEndpoint, reqBody, map[string]string{
		"Authorization": "Bearer " + strings.TrimSpace(c.apiKey),
	})
	if err != nil {
		return nil, err
	}
	var parsed openAIChatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, fmt.Errorf("OpenAI error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, errors.New("OpenAI returned no choices")
	}
	return ExtractJSON(parsed.Choices[0].Message.Content)
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) completeAnthropic(ctx context.Context, systemPrompt, userPrompt string) (map[string]any, error) {
	reqBody := anthropicRequest{
		Model:     c.model,
		MaxTokens: 1024,
		System:    systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: userPrompt},
		},
	}
	body, err := c.post(ctx, anthropicEndpoint, reqBody, map[string]string{
		"x-api-key":         strings.TrimSpace(c.apiKey),
		"anthropic-version": "2023-06-01",
	})
	if err != nil {
		return nil, err
	}
	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse Anthropic response: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, fmt.Errorf("Anthropic error: %s", parsed.Error.Message)
	}
	if len(parsed.Content) == 0 {
		return nil, errors.New("Anthropic returned no content")
	}
	return ExtractJSON(parsed.Content[0].Text)
}

type geminiRequest struct {
	SystemInstruction geminiContent   `json:"system_instruction"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  struct {
		ResponseMimeType string `json:"responseMimeType"`
	} `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) completeGemini(ctx context.Context, systemPrompt, userPrompt string) (map[string]any, error) {
	reqBody := geminiRequest{
		SystemInstruction: geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: userPrompt}}}},
	}
	reqBody.GenerationConfig.ResponseMimeType = "application/json"
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", geminiEndpoint, c.model, strings.TrimSpace(c.apiKey))
	body, err := c.post(ctx, url, reqBody, nil)
	if err != nil {
		return nil, err
	}
	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, fmt.Errorf("Gemini error: %s", parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("Gemini returned no candidates")
	}
	return ExtractJSON(parsed.Candidates[0].Content.Parts[0].Text)
}

func (c *Client) post(ctx context.Context, url string, reqBody any, headers map[string]string) ([]byte, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach %s: %w", c.provider, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", c.provider, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s request failed (%d)", c.provider, resp.StatusCode)
	}
	return body, nil
}

// ExtractJSON parses a JSON object from model output, tolerating markdown
// code fences around the payload.
func ExtractJSON(text string) (map[string]any, error) {
	trimmed := strings.TrimSpace(text)
	if idx := strings.Index(trimmed, "```json"); idx >= 0 {
		trimmed = trimmed[idx+len("```json"):]
		if end := strings.Index(trimmed, "```"); end >= 0 {
			trimmed = trimmed[:end]
		}
	} else if idx := strings.Index(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[idx+len("```"):]
		if end := strings.Index(trimmed, "```"); end >= 0 {
			trimmed = trimmed[:end]
		}
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(trimmed)), &out); err != nil {
		return nil, fmt.Errorf("model did not return valid JSON: %w", err)
	}
	return out, nil
}
