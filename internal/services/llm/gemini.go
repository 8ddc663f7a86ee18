package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/seftonlabs/dealtriage/internal/common"
	"github.com/seftonlabs/dealtriage/internal/models"
)

// GeminiAdjudicator implements the AI fallback against the Google Gemini
// API. It requests structured JSON output via a response schema so the
// verdict shape is enforced by the provider.
type GeminiAdjudicator struct {
	config         *common.GeminiConfig
	logger         arbor.ILogger
	client         *genai.Client
	limiter        *rate.Limiter
	timeout        time.Duration
	maxPromptChars int
}

// NewGeminiAdjudicator creates the Gemini-backed adjudicator from
// configuration.
func NewGeminiAdjudicator(cfg *common.Config, logger arbor.ILogger) (*GeminiAdjudicator, error) {
	geminiConfig := &cfg.Gemini

	if geminiConfig.APIKey == "" {
		return nil, fmt.Errorf("Google API key is required for the Gemini adjudicator (set GEMINI_API_KEY, DEALTRIAGE_GEMINI_API_KEY, or gemini.api_key in config)")
	}

	if geminiConfig.Model == "" {
		geminiConfig.Model = "gemini-2.0-flash"
	}

	timeout, err := time.ParseDuration(geminiConfig.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid gemini timeout duration '%s': %w", geminiConfig.Timeout, err)
	}

	rateInterval, err := time.ParseDuration(geminiConfig.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid gemini rate limit duration '%s': %w", geminiConfig.RateLimit, err)
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	a := &GeminiAdjudicator{
		config:         geminiConfig,
		logger:         logger,
		client:         client,
		limiter:        rate.NewLimiter(rate.Every(rateInterval), 1),
		timeout:        timeout,
		maxPromptChars: cfg.Pipeline.MaxPromptChars,
	}

	logger.Debug().
		Str("model", geminiConfig.Model).
		Dur("timeout", timeout).
		Msg("Gemini adjudicator initialized")

	return a, nil
}

// Adjudicate sends the bounded prompt to Gemini and parses the structured
// verdict. Every failure mode degrades to an ai_unavailable inconclusive
// verdict; the returned error carries detail for logging only.
func (a *GeminiAdjudicator) Adjudicate(ctx context.Context, ann *models.Announcement, features *models.FeatureSet) (models.StageVerdict, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return unavailableVerdict("rate limiter wait aborted"), err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	raw, err := a.generate(timeoutCtx, buildUserPrompt(ann, features, a.maxPromptChars))
	if err != nil {
		return unavailableVerdict("gemini call failed"), fmt.Errorf("gemini adjudication failed: %w", err)
	}

	verdict, err := parseVerdict(raw)
	if err != nil {
		return unavailableVerdict("unparseable gemini response"), fmt.Errorf("gemini verdict parse failed: %w", err)
	}

	a.logger.Debug().
		Str("decision", string(verdict.Decision)).
		Float64("confidence", verdict.Confidence).
		Dur("duration", time.Since(start)).
		Msg("Gemini adjudication completed")

	return verdict, nil
}

// generate performs the API call with at most one retry on transient
// failure.
func (a *GeminiAdjudicator) generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{genai.NewPartFromText(prompt)},
		},
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    verdictSchema(),
	}
	if a.config.Temperature > 0 {
		config.Temperature = genai.Ptr(a.config.Temperature)
	}

	var resp *genai.GenerateContentResponse
	var apiErr error
	for attempt := 0; attempt < 2; attempt++ {
		resp, apiErr = a.client.Models.GenerateContent(ctx, a.config.Model, contents, config)
		if apiErr == nil {
			break
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("gemini API call aborted: %w", ctx.Err())
		}
		a.logger.Warn().
			Int("attempt", attempt+1).
			Err(apiErr).
			Msg("Retrying Gemini API call")
	}
	if apiErr != nil {
		return "", fmt.Errorf("gemini API call failed: %w", apiErr)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from gemini API")
	}

	return text, nil
}

// verdictSchema enforces the structured verdict shape in the provider.
func verdictSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"is_ma_transaction": {Type: genai.TypeBoolean, Description: "Whether the announcement is a genuine M&A transaction."},
			"confidence":        {Type: genai.TypeNumber, Description: "Confidence in the decision, 0.0 to 1.0."},
			"reasoning":         {Type: genai.TypeString, Description: "One or two sentence justification."},
		},
		Required: []string{"is_ma_transaction", "confidence", "reasoning"},
	}
}

// Name identifies the provider.
func (a *GeminiAdjudicator) Name() string {
	return "gemini"
}

// Close releases the client.
func (a *GeminiAdjudicator) Close() error {
	a.client = nil
	return nil
}
