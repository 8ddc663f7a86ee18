// Package pipeline implements the classification pipeline: pre-filter,
// rule engine, and the orchestrator that sequences them ahead of the AI
// fallback. The deterministic stages are pure functions over the extracted
// feature set; only the AI stage may block.
package pipeline

import (
	"fmt"

	"github.com/seftonlabs/dealtriage/internal/models"
)

// Prefilter rejects announcement categories that are never M&A. It is a
// deterministic lookup with no I/O so it can absorb the bulk of traffic in
// sub-millisecond time: an exclusion-set tag with no inclusion-set tag is
// a final reject; anything else defers to the rule engine.
func Prefilter(features *models.FeatureSet) models.StageVerdict {
	if features.HasExclusionTag() && !features.HasInclusionTag() {
		tag := features.FirstExclusionTag()
		return models.StageVerdict{
			Decision:   models.DecisionReject,
			Confidence: 1.0,
			Reasoning:  fmt.Sprintf("announcement category %q is never an M&A transaction", tag),
			Stage:      models.StagePrefilter,
		}
	}

	return models.StageVerdict{
		Decision:  models.DecisionInconclusive,
		Reasoning: "no exclusion-only category matched",
		Stage:     models.StagePrefilter,
	}
}
