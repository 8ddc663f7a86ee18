package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/seftonlabs/dealtriage/internal/common"
	"github.com/seftonlabs/dealtriage/internal/models"
)

// ClaudeAdjudicator implements the AI fallback against the Anthropic
// Claude API.
type ClaudeAdjudicator struct {
	config         *common.ClaudeConfig
	logger         arbor.ILogger
	client         anthropic.Client
	limiter        *rate.Limiter
	timeout        time.Duration
	maxTokens      int
	maxPromptChars int
}

// NewClaudeAdjudicator creates the Claude-backed adjudicator from
// configuration.
func NewClaudeAdjudicator(cfg *common.Config, logger arbor.ILogger) (*ClaudeAdjudicator, error) {
	claudeConfig := &cfg.Claude

	if claudeConfig.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required for the Claude adjudicator (set ANTHROPIC_API_KEY, DEALTRIAGE_CLAUDE_API_KEY, or claude.api_key in config)")
	}

	if claudeConfig.Model == "" {
		claudeConfig.Model = "claude-haiku-3-5-20241022"
	}

	timeout, err := time.ParseDuration(claudeConfig.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid claude timeout duration '%s': %w", claudeConfig.Timeout, err)
	}

	rateInterval, err := time.ParseDuration(claudeConfig.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid claude rate limit duration '%s': %w", claudeConfig.RateLimit, err)
	}

	maxTokens := claudeConfig.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	client := anthropic.NewClient(
		option.WithAPIKey(claudeConfig.APIKey),
	)

	a := &ClaudeAdjudicator{
		config:         claudeConfig,
		logger:         logger,
		client:         client,
		limiter:        rate.NewLimiter(rate.Every(rateInterval), 1),
		timeout:        timeout,
		maxTokens:      maxTokens,
		maxPromptChars: cfg.Pipeline.MaxPromptChars,
	}

	logger.Debug().
		Str("model", claudeConfig.Model).
		Dur("timeout", timeout).
		Int("max_tokens", maxTokens).
		Msg("Claude adjudicator initialized")

	return a, nil
}

// Adjudicate sends the bounded prompt to Claude and parses the structured
// verdict. Every failure mode degrades to an ai_unavailable inconclusive
// verdict; the returned error carries detail for logging only.
func (a *ClaudeAdjudicator) Adjudicate(ctx context.Context, ann *models.Announcement, features *models.FeatureSet) (models.StageVerdict, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return unavailableVerdict("rate limiter wait aborted"), err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	raw, err := a.generate(timeoutCtx, buildUserPrompt(ann, features, a.maxPromptChars))
	if err != nil {
		return unavailableVerdict("claude call failed"), fmt.Errorf("claude adjudication failed: %w", err)
	}

	verdict, err := parseVerdict(raw)
	if err != nil {
		return unavailableVerdict("unparseable claude response"), fmt.Errorf("claude verdict parse failed: %w", err)
	}

	a.logger.Debug().
		Str("decision", string(verdict.Decision)).
		Float64("confidence", verdict.Confidence).
		Dur("duration", time.Since(start)).
		Msg("Claude adjudication completed")

	return verdict, nil
}

// generate performs the API call with at most one retry on transient
// failure.
func (a *ClaudeAdjudicator) generate(ctx context.Context, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.config.Model),
		MaxTokens: int64(a.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		System: []anthropic.TextBlockParam{
			{Text: systemInstruction},
		},
	}
	if a.config.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(a.config.Temperature))
	}

	var resp *anthropic.Message
	var apiErr error
	for attempt := 0; attempt < 2; attempt++ {
		resp, apiErr = a.client.Messages.New(ctx, params)
		if apiErr == nil {
			break
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("claude API call aborted: %w", ctx.Err())
		}
		a.logger.Warn().
			Int("attempt", attempt+1).
			Err(apiErr).
			Msg("Retrying Claude API call")
	}
	if apiErr != nil {
		return "", fmt.Errorf("claude API call failed: %w", apiErr)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("empty response from claude API")
	}

	return text.String(), nil
}

// Name identifies the provider.
func (a *ClaudeAdjudicator) Name() string {
	return "claude"
}

// Close releases the client.
func (a *ClaudeAdjudicator) Close() error {
	a.client = anthropic.Client{}
	return nil
}
