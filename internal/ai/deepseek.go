package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrExternalService marks a failure of the upstream model API. Callers show
// a fallback message instead of failing the whole request.
var ErrExternalService = errors.New("ai: external service error")

// Mode selects the prompt framing for a chat call.
type Mode string

const (
	ModeDialogue   Mode = "dialogue"
	ModeTranslate  Mode = "translate"
	ModeGenerate   Mode = "generating"
	ModeSynthesize Mode = "synthesize"
)

const (
	defaultModel     = "deepseek-chat"
	defaultMaxTokens = 2000
	systemPrompt     = "You are a helpful assistant. Please respond in the language the user uses."
)

// Client talks to a DeepSeek-compatible chat completions API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// New creates a client for the given API key and base URL. An empty baseURL
// falls back to the public DeepSeek endpoint.
func New(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ai: API key is not set")
	}
	if baseURL == "" {
		baseURL = "https://api.deepseek.com"
	}
	return &Client{
		apiKey:    apiKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		model:     defaultModel,
		maxTokens: defaultMaxTokens,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// Message represents one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the chat completions API.
type ChatRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

// ChatResponse represents a response from the chat completions API.
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat sends prompt through the given mode. The mode wraps the prompt in the
// framing instruction; language names the user's language for the modes that
// translate into it.
func (c *Client) Chat(ctx context.Context, prompt string, mode Mode, language string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("ai: empty prompt")
	}
	if language == "" {
		language = "zh"
	}

	var framed string
	switch mode {
	case ModeDialogue:
		framed = "Reply directly in the language the user writes in.\n" + prompt
	case ModeGenerate:
		framed = fmt.Sprintf("Translate the following content into %s.\n%s", language, prompt)
	case ModeTranslate:
		framed = "Translate the following content into Chinese:\n" + prompt
	case ModeSynthesize:
		framed = fmt.Sprintf("Translate the following content into %s:\n%s", language, prompt)
	default:
		return "", fmt.Errorf("ai: invalid mode %q", mode)
	}

	return c.complete(ctx, []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: framed},
	})
}

// ExplainWord returns a short learner-oriented explanation of an English
// word: meaning, register and one example sentence.
func (c *Client) ExplainWord(ctx context.Context, word string) (string, error) {
	prompt := fmt.Sprintf(
		"Explain the English word '%s' for a language learner: give its core meaning, "+
			"its part of speech, and one short example sentence. Keep it under 60 words.",
		word,
	)
	return c.complete(ctx, []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	})
}

// DocumentDifficulty asks the model to judge how hard the text is for a
// learner, given the words the analysis flagged as unknown.
func (c *Client) DocumentDifficulty(ctx context.Context, text string, gapWords []string) (string, error) {
	prompt := fmt.Sprintf(
		"A learner is reading the text below. These words were flagged as outside "+
			"their vocabulary: %s. Briefly rate the text's difficulty for them and name "+
			"the three most important words to learn first.\n\n%s",
		strings.Join(gapWords, ", "), text,
	)
	return c.complete(ctx, []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	})
}

// AnswerDocumentQuestion answers a question about an uploaded document.
func (c *Client) AnswerDocumentQuestion(ctx context.Context, document, question string) (string, error) {
	prompt := fmt.Sprintf("Answer the question using only the document below.\n\nDocument:\n%s\n\nQuestion: %s", document, question)
	return c.complete(ctx, []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	})
}

func (c *Client) complete(ctx context.Context, messages []Message) (string, error) {
	request := ChatRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: c.maxTokens,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("ai: marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(requestData))
	if err != nil {
		return "", fmt.Errorf("ai: create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrExternalService, resp.StatusCode)
	}

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrExternalService, err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrExternalService, response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrExternalService)
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
