package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/seftonlabs/dealtriage/internal/common"
	"github.com/seftonlabs/dealtriage/internal/interfaces"
)

// NewAdjudicator creates the configured AI fallback provider.
func NewAdjudicator(cfg *common.Config, logger arbor.ILogger) (interfaces.Adjudicator, error) {
	logger.Info().Str("provider", string(cfg.LLM.Provider)).Msg("Initializing AI adjudicator")

	switch cfg.LLM.Provider {
	case common.LLMProviderClaude:
		return NewClaudeAdjudicator(cfg, logger)
	case common.LLMProviderGemini:
		return NewGeminiAdjudicator(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q: must be 'claude' or 'gemini'", cfg.LLM.Provider)
	}
}
