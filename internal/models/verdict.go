package models

import "time"

// Decision is the tri-state outcome of a pipeline stage. It is a dedicated
// type rather than a nullable bool so "no opinion" can never be read as a
// rejection.
type Decision string

const (
	DecisionAccept       Decision = "accept"
	DecisionReject       Decision = "reject"
	DecisionInconclusive Decision = "inconclusive"
)

// Stage identifies which pipeline stage produced a verdict or decided a
// final result.
type Stage string

const (
	StagePrefilter Stage = "prefilter"
	StageRules     Stage = "rules"
	StageAI        Stage = "ai"

	// StageAIFallback marks results where the AI stage was unavailable and
	// the orchestrator applied the conservative reject policy.
	StageAIFallback Stage = "ai_unavailable_fallback"
)

// ReasonAIUnavailable is the distinguished reasoning tag an adjudicator
// returns when the external model call failed, timed out, or produced an
// unparseable response.
const ReasonAIUnavailable = "ai_unavailable"

// StageVerdict is the outcome of one pipeline stage invocation.
type StageVerdict struct {
	Decision   Decision `json:"decision"`
	Confidence float64  `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
	Stage      Stage    `json:"stage"`
}

// Inconclusive reports whether the verdict defers to the next stage.
func (v StageVerdict) Inconclusive() bool {
	return v.Decision == DecisionInconclusive
}

// ClassificationResult is the final output of the classification pipeline.
// DecidingStage is the first stage in pipeline order whose verdict was not
// inconclusive.
type ClassificationResult struct {
	RequestID       string          `json:"request_id"`
	IsMATransaction bool            `json:"is_ma_transaction"`
	Confidence      float64         `json:"confidence"`
	Reasoning       string          `json:"reasoning"`
	DecidingStage   Stage           `json:"deciding_stage"`
	Theme           string          `json:"theme,omitempty"`
	AIInvoked       bool            `json:"ai_invoked"`
	ElapsedMs       int64           `json:"elapsed_ms"`
	StageTimings    map[Stage]int64 `json:"stage_timings_ms,omitempty"`
}

// RecordStageTiming stores the elapsed milliseconds for one stage.
func (r *ClassificationResult) RecordStageTiming(stage Stage, elapsed time.Duration) {
	if r.StageTimings == nil {
		r.StageTimings = make(map[Stage]int64)
	}
	r.StageTimings[stage] = elapsed.Milliseconds()
}
