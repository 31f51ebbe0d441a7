// Package deepseek implements the text generator over DeepSeek's OpenAI compatible
// chat completions API.
package deepseek

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/zatekoja/coachplan/internal/application/planning"
	"github.com/zatekoja/coachplan/internal/domain/providers"
	"github.com/zatekoja/coachplan/pkg/config"
	apperrors "github.com/zatekoja/coachplan/pkg/errors"
	"github.com/zatekoja/coachplan/pkg/retry"
)

const (
	defaultBaseURL = "https://api.deepseek.com/v1"
	defaultModel   = "deepseek-chat"
	maxErrorBody   = 500
)

// Client implements providers.TextGenerator.
type Client struct {
	api         openai.Client
	apiKey      string
	model       string
	maxAttempts int
	breaker     *gobreaker.CircuitBreaker
}

// NewClient builds a client from configuration. A missing API key is not an error here;
// every Generate call then fails with a configuration error before any network I/O.
func NewClient(cfg *config.GeneratorConfig, opts ...option.RequestOption) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	failures := cfg.BreakerFailures
	if failures <= 0 {
		failures = 5
	}

	requestOpts := append([]option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}, opts...)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "deepseek",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failures)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("text generator circuit breaker state changed")
		},
	})

	return &Client{
		api:         openai.NewClient(requestOpts...),
		apiKey:      cfg.APIKey,
		model:       model,
		maxAttempts: max(cfg.MaxAttempts, 1),
		breaker:     breaker,
	}
}

// Generate sends prompt as the user message and returns the trimmed completion text.
// Transport, timeout, HTTP and empty-content failures are retried immediately up to the
// configured attempts and surface as TRANSIENT_GENERATOR errors.
func (c *Client) Generate(ctx context.Context, prompt string, opts providers.GenerateOptions) (string, error) {
	if c.apiKey == "" {
		return "", apperrors.NewConfigurationError("text generator api key is missing")
	}

	var content string
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, retry.DoWithLog(ctx, retry.Immediate(c.maxAttempts), "deepseek", func() error {
			out, err := c.complete(ctx, prompt, opts)
			if err != nil {
				return err
			}
			content = out
			return nil
		}, func(attempt int, err error, _ time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", c.maxAttempts).
				Msg("text generator attempt failed")
		})
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", apperrors.NewTransientGeneratorError("text generator circuit open", err)
		}
		return "", apperrors.NewTransientGeneratorError("text generator request failed", err)
	}
	return content, nil
}

func (c *Client) complete(ctx context.Context, prompt string, opts providers.GenerateOptions) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(planning.SystemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(opts.Temperature),
	}
	if opts.MaxOutputTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxOutputTokens))
	}

	start := time.Now()
	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		classified, status := classify(ctx, err)
		recordGeneratorMetric(ctx, c.model, status, time.Since(start), classified)
		return "", classified
	}

	if len(resp.Choices) == 0 {
		recordGeneratorMetric(ctx, c.model, 200, time.Since(start), providers.ErrGeneratorEmptyResponse)
		return "", providers.ErrGeneratorEmptyResponse
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		recordGeneratorMetric(ctx, c.model, 200, time.Since(start), providers.ErrGeneratorEmptyResponse)
		return "", providers.ErrGeneratorEmptyResponse
	}

	recordGeneratorMetric(ctx, c.model, 200, time.Since(start), nil)
	return content, nil
}

// classify maps SDK errors onto the provider error taxonomy.
func classify(ctx context.Context, err error) (error, int) {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		body := apiErr.Message
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return &providers.GeneratorHTTPError{Status: apiErr.StatusCode, Body: body}, apiErr.StatusCode
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", providers.ErrGeneratorTimeout, err), 0
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", providers.ErrGeneratorTransport, ctx.Err()), 0
	}
	return fmt.Errorf("%w: %v", providers.ErrGeneratorTransport, err), 0
}

type generatorMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var (
	generatorMetricsOnce sync.Once
	generatorMetricsInit bool
	deepseekMetrics      generatorMetrics
)

func ensureGeneratorMetrics() {
	generatorMetricsOnce.Do(initGeneratorMetrics)
}

func initGeneratorMetrics() {
	meter := otel.Meter("github.com/zatekoja/coachplan/deepseek")

	requestCount, err := meter.Int64Counter(
		"ai.generator.request.count",
		metric.WithDescription("Number of text generator requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.generator.request.duration",
		metric.WithDescription("Text generator request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.generator.request.errors",
		metric.WithDescription("Number of text generator request errors"),
	)
	if err != nil {
		return
	}

	deepseekMetrics = generatorMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	generatorMetricsInit = true
}

func recordGeneratorMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureGeneratorMetrics()
	if !generatorMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "deepseek"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	deepseekMetrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	deepseekMetrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		deepseekMetrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
