package llm

import (
	"strings"
	"testing"

	"github.com/seftonlabs/dealtriage/internal/models"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		wantErr        bool
		wantDecision   models.Decision
		wantConfidence float64
	}{
		{
			name:           "plain JSON accept",
			raw:            `{"is_ma_transaction": true, "confidence": 0.85, "reasoning": "clear acquisition of a controlling stake"}`,
			wantDecision:   models.DecisionAccept,
			wantConfidence: 0.85,
		},
		{
			name:           "plain JSON reject",
			raw:            `{"is_ma_transaction": false, "confidence": 0.9, "reasoning": "routine earnings report"}`,
			wantDecision:   models.DecisionReject,
			wantConfidence: 0.9,
		},
		{
			name:           "markdown code fence tolerated",
			raw:            "```json\n{\"is_ma_transaction\": true, \"confidence\": 0.7, \"reasoning\": \"equity joint venture\"}\n```",
			wantDecision:   models.DecisionAccept,
			wantConfidence: 0.7,
		},
		{
			name:           "surrounding prose tolerated",
			raw:            `Here is my assessment: {"is_ma_transaction": false, "confidence": 0.6, "reasoning": "bond issuance"} I hope that helps.`,
			wantDecision:   models.DecisionReject,
			wantConfidence: 0.6,
		},
		{
			name:           "confidence clamped to one",
			raw:            `{"is_ma_transaction": true, "confidence": 1.4, "reasoning": "obvious takeover"}`,
			wantDecision:   models.DecisionAccept,
			wantConfidence: 1.0,
		},
		{
			name:           "negative confidence clamped to zero",
			raw:            `{"is_ma_transaction": false, "confidence": -0.2, "reasoning": "not a deal"}`,
			wantDecision:   models.DecisionReject,
			wantConfidence: 0,
		},
		{
			name:    "missing reasoning rejected",
			raw:     `{"is_ma_transaction": true, "confidence": 0.8}`,
			wantErr: true,
		},
		{
			name:    "no JSON object",
			raw:     "I cannot classify this announcement.",
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			raw:     `{"is_ma_transaction": true, "confidence": }`,
			wantErr: true,
		},
		{
			name:    "empty response",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := parseVerdict(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseVerdict() expected error, got %+v", verdict)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseVerdict() unexpected error: %v", err)
			}
			if verdict.Decision != tt.wantDecision {
				t.Errorf("decision = %v, want %v", verdict.Decision, tt.wantDecision)
			}
			if verdict.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", verdict.Confidence, tt.wantConfidence)
			}
			if verdict.Stage != models.StageAI {
				t.Errorf("stage = %v, want %v", verdict.Stage, models.StageAI)
			}
			if verdict.Decision == models.DecisionInconclusive {
				t.Error("parsed verdict must never be inconclusive")
			}
		})
	}
}

func TestUnavailableVerdict(t *testing.T) {
	verdict := unavailableVerdict("request timed out")

	if verdict.Decision != models.DecisionInconclusive {
		t.Errorf("decision = %v, want inconclusive", verdict.Decision)
	}
	if !strings.HasPrefix(verdict.Reasoning, models.ReasonAIUnavailable) {
		t.Errorf("reasoning = %q, want %q prefix", verdict.Reasoning, models.ReasonAIUnavailable)
	}
	if !strings.Contains(verdict.Reasoning, "request timed out") {
		t.Errorf("reasoning = %q, want underlying cause included", verdict.Reasoning)
	}
}
