package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/seftonlabs/dealtriage/internal/interfaces"
	"github.com/seftonlabs/dealtriage/internal/models"
	"github.com/seftonlabs/dealtriage/internal/services/features"
)

// Sentinel errors for input validation. These are the only errors Classify
// returns; everything downstream is recovered into a completed result.
var (
	ErrEmptyInput    = errors.New("announcement text is empty")
	ErrInputTooLarge = errors.New("announcement text exceeds maximum size")
)

// undeterminableConfidence is the confidence attached to the conservative
// reject applied when the AI stage is unavailable.
const undeterminableConfidence = 0.2

// Orchestrator sequences feature extraction, pre-filter, rule engine, and
// AI fallback in fixed order with early exit at the first non-inconclusive
// verdict. Safe for concurrent use: every invocation works on
// request-scoped values only.
type Orchestrator struct {
	extractor     *features.Extractor
	engine        *RuleEngine
	adjudicator   interfaces.Adjudicator
	maxInputChars int
	logger        arbor.ILogger
}

// NewOrchestrator wires the pipeline stages together.
func NewOrchestrator(extractor *features.Extractor, engine *RuleEngine, adjudicator interfaces.Adjudicator, maxInputChars int, logger arbor.ILogger) *Orchestrator {
	return &Orchestrator{
		extractor:     extractor,
		engine:        engine,
		adjudicator:   adjudicator,
		maxInputChars: maxInputChars,
		logger:        logger,
	}
}

// Classify runs the pipeline for one announcement. Input validation
// failures return an error before the pipeline starts; every other
// failure mode yields a completed, conservative result.
func (o *Orchestrator) Classify(ctx context.Context, text, source string) (*models.ClassificationResult, error) {
	if len(text) == 0 {
		return nil, ErrEmptyInput
	}
	if len(text) > o.maxInputChars {
		return nil, fmt.Errorf("%w: %d chars (max %d)", ErrInputTooLarge, len(text), o.maxInputChars)
	}

	start := time.Now()
	requestID := uuid.New().String()
	result := &models.ClassificationResult{RequestID: requestID}

	ann := models.NewAnnouncement(text, source)

	stageStart := time.Now()
	featureSet := o.extractor.Extract(ann)
	extractElapsed := time.Since(stageStart)

	o.logger.Debug().
		Str("request_id", requestID).
		Str("source", source).
		Int("text_chars", len(text)).
		Int("tags", len(featureSet.Tags)).
		Int("amounts", len(featureSet.Amounts)).
		Dur("extract_duration", extractElapsed).
		Msg("Features extracted")

	stageStart = time.Now()
	verdict := Prefilter(featureSet)
	result.RecordStageTiming(models.StagePrefilter, time.Since(stageStart))

	if verdict.Inconclusive() {
		stageStart = time.Now()
		verdict = o.engine.Evaluate(featureSet)
		result.RecordStageTiming(models.StageRules, time.Since(stageStart))
	}

	if verdict.Inconclusive() {
		stageStart = time.Now()
		verdict = o.adjudicate(ctx, requestID, ann, featureSet)
		result.RecordStageTiming(models.StageAI, time.Since(stageStart))
		result.AIInvoked = true
	}

	o.finalize(result, verdict, featureSet)
	result.ElapsedMs = time.Since(start).Milliseconds()

	o.logger.Info().
		Str("request_id", requestID).
		Bool("is_ma_transaction", result.IsMATransaction).
		Str("deciding_stage", string(result.DecidingStage)).
		Float64("confidence", result.Confidence).
		Bool("ai_invoked", result.AIInvoked).
		Int64("elapsed_ms", result.ElapsedMs).
		Msg("Announcement classified")

	return result, nil
}

// adjudicate invokes the AI fallback and shields the pipeline from its
// failure modes: any error becomes an inconclusive ai_unavailable verdict
// for finalize to map to the conservative fallback policy.
func (o *Orchestrator) adjudicate(ctx context.Context, requestID string, ann *models.Announcement, featureSet *models.FeatureSet) models.StageVerdict {
	verdict, err := o.adjudicator.Adjudicate(ctx, ann, featureSet)
	if err != nil {
		o.logger.Warn().
			Str("request_id", requestID).
			Str("provider", o.adjudicator.Name()).
			Err(err).
			Msg("AI adjudication failed")
	}
	if verdict.Stage == "" {
		verdict.Stage = models.StageAI
	}
	return verdict
}

// finalize maps the deciding stage verdict onto the result. An
// inconclusive verdict can only come from an unavailable AI stage; the
// policy there is a deliberate conservative reject, distinguishable from a
// normal reject through the deciding stage and the "undeterminable"
// reasoning prefix.
func (o *Orchestrator) finalize(result *models.ClassificationResult, verdict models.StageVerdict, featureSet *models.FeatureSet) {
	if verdict.Inconclusive() {
		result.IsMATransaction = false
		result.Confidence = undeterminableConfidence
		result.Reasoning = fmt.Sprintf("undeterminable: %s", verdict.Reasoning)
		result.DecidingStage = models.StageAIFallback
		return
	}

	result.IsMATransaction = verdict.Decision == models.DecisionAccept
	result.Confidence = verdict.Confidence
	result.Reasoning = verdict.Reasoning
	result.DecidingStage = verdict.Stage

	if result.IsMATransaction {
		if tag := featureSet.FirstInclusionTag(); tag != "" {
			result.Theme = string(tag)
		}
	}
}
