// Package llm is the prompting/decision layer: single-shot, stateless calls
// to an OpenAI-compatible chat and embeddings API. No retries, no streaming.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/mselser95/polymarket-agent/pkg/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// defaultRatePerMin caps model calls when no rate is configured.
const defaultRatePerMin = 30

// Client talks to an OpenAI-compatible API.
type Client struct {
	apiKey         string
	baseURL        string
	model          string
	embeddingModel string
	httpClient     *http.Client
	limiter        *rate.Limiter
	logger         *zap.Logger
}

// Config holds LLM client configuration. RatePerMin caps calls per minute
// across chat and embeddings; zero selects the default.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	EmbeddingModel string
	RatePerMin     int
	Logger         *zap.Logger
}

// NewClient creates a new LLM client.
func NewClient(cfg *Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &types.LLMError{Op: "new-client", Err: fmt.Errorf("OPENAI_API_KEY is not set")}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = "text-embedding-3-small"
	}
	ratePerMin := cfg.RatePerMin
	if ratePerMin <= 0 {
		ratePerMin = defaultRatePerMin
	}

	return &Client{
		apiKey:         cfg.APIKey,
		baseURL:        baseURL,
		model:          model,
		embeddingModel: embeddingModel,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(float64(ratePerMin)/60.0), 1),
		logger:  cfg.Logger,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Ask sends free text to the model and returns its raw text response.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	return c.chat(ctx, "", prompt)
}

func (c *Client) chat(ctx context.Context, system, user string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: user})

	body, err := c.post(ctx, "/chat/completions", chatRequest{
		Model:    c.model,
		Messages: messages,
	}, "chat")
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	err = json.Unmarshal(body, &parsed)
	if err != nil {
		return "", &types.LLMError{Op: "chat", Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	if len(parsed.Choices) == 0 {
		return "", &types.LLMError{Op: "chat", Err: fmt.Errorf("response has no choices")}
	}

	return parsed.Choices[0].Message.Content, nil
}

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed returns one embedding vector per input text, index-aligned.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := c.post(ctx, "/embeddings", embeddingsRequest{
		Model: c.embeddingModel,
		Input: texts,
	}, "embed")
	if err != nil {
		return nil, err
	}

	var parsed embeddingsResponse
	err = json.Unmarshal(body, &parsed)
	if err != nil {
		return nil, &types.LLMError{Op: "embed", Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	if len(parsed.Data) != len(texts) {
		return nil, &types.LLMError{Op: "embed",
			Err: fmt.Errorf("expected %d embeddings, got %d", len(texts), len(parsed.Data))}
	}

	vectors := make([][]float32, len(texts))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, &types.LLMError{Op: "embed", Err: fmt.Errorf("embedding index %d out of range", d.Index)}
		}
		vectors[d.Index] = d.Embedding
	}

	return vectors, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, op string) ([]byte, error) {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return nil, &types.LLMError{Op: op, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, &types.LLMError{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, &types.LLMError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		CallErrorsTotal.Inc()
		return nil, &types.LLMError{Op: op, Err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close()

	CallsTotal.Inc()
	CallDurationSeconds.Observe(time.Since(start).Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.LLMError{Op: op, Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		CallErrorsTotal.Inc()
		return nil, &types.LLMError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", string(body)),
		}
	}

	c.logger.Debug("llm-call",
		zap.String("op", op),
		zap.Duration("elapsed", time.Since(start)))

	return body, nil
}
