// Package app wires the application components together: lexicon, feature
// extractor, rule engine, AI adjudicator, pipeline orchestrator, and the
// HTTP handlers that expose them.
package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/seftonlabs/dealtriage/internal/common"
	"github.com/seftonlabs/dealtriage/internal/handlers"
	"github.com/seftonlabs/dealtriage/internal/interfaces"
	"github.com/seftonlabs/dealtriage/internal/services/features"
	"github.com/seftonlabs/dealtriage/internal/services/lexicon"
	"github.com/seftonlabs/dealtriage/internal/services/llm"
	"github.com/seftonlabs/dealtriage/internal/services/pipeline"
)

// App holds all application components and dependencies.
type App struct {
	Config      *common.Config
	Logger      arbor.ILogger
	Adjudicator interfaces.Adjudicator
	Classifier  interfaces.Classifier

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	ClassifyHandler *handlers.ClassifyHandler
}

// New creates and wires the application. Configuration has already been
// validated; anything failing here is a startup error and the process
// must not serve.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	lex, err := lexicon.Load(config.Lexicon.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}
	if err := lex.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lexicon: %w", err)
	}

	extractor := features.NewExtractor(lex)
	engine := pipeline.NewRuleEngine(config.Pipeline.MinDealAmountUSD)

	adjudicator, err := llm.NewAdjudicator(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize adjudicator: %w", err)
	}

	orchestrator := pipeline.NewOrchestrator(extractor, engine, adjudicator, config.Pipeline.MaxInputChars, logger)

	// Request bodies carry JSON overhead on top of the raw text limit.
	maxBodyBytes := int64(config.Pipeline.MaxInputChars*2 + 4096)

	a := &App{
		Config:          config,
		Logger:          logger,
		Adjudicator:     adjudicator,
		Classifier:      orchestrator,
		APIHandler:      handlers.NewAPIHandler(),
		ClassifyHandler: handlers.NewClassifyHandler(orchestrator, maxBodyBytes, logger),
	}

	logger.Info().
		Float64("min_deal_amount_usd", config.Pipeline.MinDealAmountUSD).
		Int("max_input_chars", config.Pipeline.MaxInputChars).
		Str("llm_provider", string(config.LLM.Provider)).
		Msg("Application initialized")

	return a, nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Adjudicator != nil {
		if err := a.Adjudicator.Close(); err != nil {
			return fmt.Errorf("failed to close adjudicator: %w", err)
		}
	}
	return nil
}
