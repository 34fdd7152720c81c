package openai

import (
	"context"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/medassist/docfinder/internal/domain/providers"
	"github.com/medassist/docfinder/pkg/config"
	apperrors "github.com/medassist/docfinder/pkg/errors"
)

// Client implements the ResponseProvider interface on the OpenAI chat
// completion API. It phrases replies strictly from the records in the
// compose request; the prompt forbids inventing doctor facts.
type Client struct {
	client  *openai.Client
	model   string
	limiter *tokenBucket
}

var _ providers.ResponseProvider = (*Client)(nil)

// NewClient creates a new OpenAI-backed response composer.
func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Client{
		client:  openai.NewClient(cfg.APIKey),
		model:   model,
		limiter: newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst),
	}, nil
}

// Compose sends the matched records and conversation context to the model
// and returns the phrased reply.
func (c *Client) Compose(ctx context.Context, req providers.ComposeRequest) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			recordComposeMetric(ctx, c.model, 0, err)
			return "", err
		}
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Transcript)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, turn := range req.Transcript {
		role := openai.ChatMessageRoleUser
		if turn.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: buildComposeUserPrompt(req),
	})

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.2,
	})
	recordComposeMetric(ctx, c.model, time.Since(start), err)
	if err != nil {
		return "", apperrors.NewUnavailableError("reply composition failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai response missing choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func newTokenBucket(rpm int, burst int) *tokenBucket {
	if rpm <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 5
	}

	bucket := &tokenBucket{tokens: make(chan struct{}, burst)}
	for i := 0; i < burst; i++ {
		bucket.tokens <- struct{}{}
	}

	interval := time.Minute / time.Duration(rpm)
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			select {
			case bucket.tokens <- struct{}{}:
			default:
			}
		}
	}()

	return bucket
}

type tokenBucket struct {
	tokens chan struct{}
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.tokens:
		return nil
	}
}

type composeMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var composeMetricsInit = false
var composeMetricsInst composeMetrics

func ensureComposeMetrics() {
	if composeMetricsInit {
		return
	}
	meter := otel.Meter("github.com/medassist/docfinder/openai")

	requestCount, err := meter.Int64Counter(
		"ai.compose.request.count",
		metric.WithDescription("Number of reply composition requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.compose.request.duration",
		metric.WithDescription("Reply composition duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.compose.request.errors",
		metric.WithDescription("Number of failed reply composition requests"),
	)
	if err != nil {
		return
	}

	composeMetricsInst = composeMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	composeMetricsInit = true
}

func recordComposeMetric(ctx context.Context, model string, duration time.Duration, err error) {
	ensureComposeMetrics()
	if !composeMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}

	composeMetricsInst.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	composeMetricsInst.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		composeMetricsInst.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
