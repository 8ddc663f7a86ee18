package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/seftonlabs/dealtriage/internal/models"
)

// aiVerdict is the structured response shape expected from the model.
type aiVerdict struct {
	IsMATransaction bool    `json:"is_ma_transaction"`
	Confidence      float64 `json:"confidence"`
	Reasoning       string  `json:"reasoning"`
}

// parseVerdict converts the raw model response into a committed stage
// verdict. The AI stage is the last in the pipeline, so a parsed verdict
// is always accept or reject; any response that does not contain the
// expected JSON object is an error and the caller degrades to
// ai_unavailable.
func parseVerdict(raw string) (models.StageVerdict, error) {
	payload := extractJSONObject(raw)
	if payload == "" {
		return models.StageVerdict{}, fmt.Errorf("response contains no JSON object: %q", truncate(raw, 120))
	}

	var v aiVerdict
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return models.StageVerdict{}, fmt.Errorf("failed to unmarshal verdict JSON: %w", err)
	}

	if v.Reasoning == "" {
		return models.StageVerdict{}, fmt.Errorf("verdict JSON missing reasoning")
	}

	decision := models.DecisionReject
	if v.IsMATransaction {
		decision = models.DecisionAccept
	}

	confidence := v.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return models.StageVerdict{
		Decision:   decision,
		Confidence: confidence,
		Reasoning:  v.Reasoning,
		Stage:      models.StageAI,
	}, nil
}

// unavailableVerdict is the degraded verdict returned for any AI failure
// mode. The orchestrator maps it to the conservative fallback policy.
func unavailableVerdict(reason string) models.StageVerdict {
	return models.StageVerdict{
		Decision:  models.DecisionInconclusive,
		Reasoning: fmt.Sprintf("%s: %s", models.ReasonAIUnavailable, reason),
		Stage:     models.StageAI,
	}
}

// extractJSONObject returns the first top-level {...} span in the
// response, tolerating markdown code fences and surrounding prose.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
