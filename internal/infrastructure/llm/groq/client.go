// Package groq adapts the Groq OpenAI-compatible chat completion API
// as the text-generation oracle.
package groq

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/idea-coach/internal/core/domain"
	"github.com/kirillkom/idea-coach/internal/infrastructure/resilience"
)

const systemPreamble = "You are a friendly small-business coach."

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Options struct {
	HTTPTimeout time.Duration
	// ResilienceExecutor, when set, wraps every completion call with
	// retries and a circuit breaker. The caller still observes a
	// single success or failure.
	ResilienceExecutor *resilience.Executor
}

func New(baseURL, apiKey, model string) *Client {
	return NewWithOptions(baseURL, apiKey, model, Options{})
}

func NewWithOptions(baseURL, apiKey, model string, options Options) *Client {
	timeout := options.HTTPTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		executor:   options.ResilienceExecutor,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate performs one chat completion. The optional context block is
// embedded into the system message; the raw user text travels as the
// user message, matching the oracle contract.
func (c *Client) Generate(ctx context.Context, req domain.OracleRequest) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: buildSystemMessage(req.Instruction, req.Context)},
			{Role: "user", Content: req.UserText},
		},
		Temperature: req.Temperature,
	}

	var response chatResponse
	call := func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/chat/completions", payload, &response, "chat_completion")
	}

	var err error
	if c.executor != nil {
		err = c.executor.Run(ctx, "groq.chat_completion", call, classifyGroqError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", wrapTemporaryIfNeeded("chat_completion", err)
	}

	if len(response.Choices) == 0 {
		return "", domain.WrapError(domain.ErrOracle, "chat_completion", errors.New("response has no choices"))
	}
	text := strings.TrimSpace(response.Choices[0].Message.Content)
	if text == "" {
		return "", domain.WrapError(domain.ErrOracle, "chat_completion", errors.New("empty completion text"))
	}
	return text, nil
}

func buildSystemMessage(instruction, contextBlock string) string {
	var b strings.Builder
	b.WriteString(systemPreamble)
	b.WriteString("\n")
	b.WriteString(instruction)
	if strings.TrimSpace(contextBlock) != "" {
		b.WriteString("\n\nRelevant guide passages:\n")
		b.WriteString(contextBlock)
	}
	return b.String()
}
