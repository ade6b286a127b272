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
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"mailgenie/pkg/circuitbreaker"
	"mailgenie/pkg/logger"
	"mailgenie/pkg/metrics"
	"mailgenie/pkg/otel"
	pkgtrace "mailgenie/pkg/trace"
	"mailgenie/pkg/util"
)

// maxErrorBody caps how much of a failed upstream body is kept for logging.
const maxErrorBody = 4 << 10

// Completer sends one system/user pair to a chat-completion model and returns
// the first choice's content.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type ChatChoice struct {
	Message Message `json:"message"`
}

type ChatResponse struct {
	Choices []ChatChoice `json:"choices"`
}

type Options struct {
	URL    string
	Model  string
	APIKey string
	// zero leaves the http.Client default (no timeout)
	Timeout time.Duration
	// nil disables the breaker
	CircuitBreaker *circuitbreaker.CircuitBreaker
	HTTPClient     *http.Client
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	url        string
	model      string
	apiKey     string
	httpClient *http.Client
	cb         *circuitbreaker.CircuitBreaker
	logger     *zap.Logger
}

func NewClient(opts Options, logger *zap.Logger) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		url:        opts.URL,
		model:      opts.Model,
		apiKey:     opts.APIKey,
		httpClient: httpClient,
		cb:         opts.CircuitBreaker,
		logger:     logger,
	}
}

// NewCircuitBreaker builds a breaker that only trips on network failures,
// timeouts and upstream 5xx. Rate limiting, billing and other 4xx answers are the
// caller's problem, not an outage.
func NewCircuitBreaker(cfg circuitbreaker.Config) *circuitbreaker.CircuitBreaker {
	cfg.IsFailure = func(err error) bool {
		var upstreamErr *UpstreamError
		if errors.As(err, &upstreamErr) {
			return upstreamErr.StatusCode >= 500
		}
		return util.IsTransient(err)
	}
	return circuitbreaker.NewCircuitBreaker(cfg)
}

// Complete issues exactly one request. It never retries.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.cb == nil {
		return c.complete(ctx, systemPrompt, userPrompt)
	}

	var content string
	err := c.cb.Execute(func() error {
		var err error
		content, err = c.complete(ctx, systemPrompt, userPrompt)
		return err
	})
	if errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen) {
		return "", ErrUnavailable
	}
	return content, err
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	log := logger.WithTrace(ctx, c.logger)

	ctx, span := otel.StartSpan(ctx, "ai_gateway.chat_completion",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("ai.model", c.model)),
	)
	defer span.End()

	body, err := json.Marshal(ChatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("json.Marshal failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if traceID := pkgtrace.FromContext(ctx); traceID != "" {
		req.Header.Set(pkgtrace.HeaderName(), traceID)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		errType := util.ClassifyError(err)
		metrics.RecordAIGatewayCallLatency(errType, latency)
		log.Warn("AI gateway request failed", zap.String("error_type", errType), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return "", fmt.Errorf("AI gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	status := strconv.Itoa(resp.StatusCode)
	metrics.RecordAIGatewayCallLatency(status, latency)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Error("AI gateway error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(errBody)),
		)
		span.SetStatus(codes.Error, "HTTP "+status)
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(errBody)}
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to decode AI gateway response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return chatResp.Choices[0].Message.Content, nil
}
