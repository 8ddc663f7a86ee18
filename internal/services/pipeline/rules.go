package pipeline

import (
	"fmt"

	"github.com/seftonlabs/dealtriage/internal/models"
)

// rule is one predicate in the decision table. eval returns the verdict
// and true when the rule fires; document order is priority order.
type rule struct {
	name string
	eval func(*models.FeatureSet) (models.StageVerdict, bool)
}

// RuleEngine applies an ordered rule table to extracted features; the
// first matching rule wins. Amount comparisons operate on the canonical
// USD-equivalent value only: amounts whose currency could not be
// normalized are treated as unknown and fall through to inconclusive
// rather than guessing.
type RuleEngine struct {
	minDealUSD float64
	rules      []rule
}

// NewRuleEngine builds the decision table with the configured minimum deal
// size (USD-equivalent).
func NewRuleEngine(minDealUSD float64) *RuleEngine {
	e := &RuleEngine{minDealUSD: minDealUSD}
	e.rules = []rule{
		{name: "large-inclusion-deal", eval: e.largeInclusionDeal},
		{name: "below-threshold", eval: e.belowThreshold},
		{name: "wholly-owned-subsidiary", eval: e.whollyOwnedSubsidiary},
		{name: "no-deterministic-signal", eval: e.noDeterministicSignal},
		{name: "conflicting-signals", eval: e.conflictingSignals},
	}
	return e
}

// Evaluate runs the rule table in order and returns the first verdict.
func (e *RuleEngine) Evaluate(features *models.FeatureSet) models.StageVerdict {
	for _, r := range e.rules {
		if verdict, ok := r.eval(features); ok {
			return verdict
		}
	}

	return models.StageVerdict{
		Decision:  models.DecisionInconclusive,
		Reasoning: "no rule matched",
		Stage:     models.StageRules,
	}
}

// Rule 1: a clearly-worded deal at or above the threshold with no
// exclusion-set noise is an accept.
func (e *RuleEngine) largeInclusionDeal(f *models.FeatureSet) (models.StageVerdict, bool) {
	amount, ok := f.LargestUSDAmount()
	if !ok || amount < e.minDealUSD {
		return models.StageVerdict{}, false
	}
	if !f.HasInclusionTag() || f.HasExclusionTag() {
		return models.StageVerdict{}, false
	}

	tag := f.FirstInclusionTag()
	return models.StageVerdict{
		Decision:   models.DecisionAccept,
		Confidence: 0.9,
		Reasoning: fmt.Sprintf("%s with deal value %s at or above the %s threshold",
			tag, formatUSD(amount), formatUSD(e.minDealUSD)),
		Stage: models.StageRules,
	}, true
}

// Rule 2: every detected amount is known and below the threshold. Amounts
// with unknown currency disqualify the rule (amount is unknown, not
// small).
func (e *RuleEngine) belowThreshold(f *models.FeatureSet) (models.StageVerdict, bool) {
	amount, ok := f.LargestUSDAmount()
	if !ok || f.HasUnknownCurrencyAmount() || amount >= e.minDealUSD {
		return models.StageVerdict{}, false
	}
	// Simultaneous inclusion and exclusion tags make the small amount
	// ambiguous; defer instead of rejecting.
	if f.HasInclusionTag() && f.HasExclusionTag() {
		return models.StageVerdict{}, false
	}

	return models.StageVerdict{
		Decision:   models.DecisionReject,
		Confidence: 0.88,
		Reasoning: fmt.Sprintf("below threshold: largest deal value %s is under the %s minimum",
			formatUSD(amount), formatUSD(e.minDealUSD)),
		Stage: models.StageRules,
	}, true
}

// Rule 3: incorporating a wholly-owned subsidiary with no external
// counterparty is an internal restructure, not M&A.
func (e *RuleEngine) whollyOwnedSubsidiary(f *models.FeatureSet) (models.StageVerdict, bool) {
	if !f.HasTag(models.TagSubsidiaryIncorporation) {
		return models.StageVerdict{}, false
	}
	if len(f.EntitiesByCategory(models.EntityPEFirm)) > 0 ||
		len(f.EntitiesByCategory(models.EntityAdvisor)) > 0 {
		return models.StageVerdict{}, false
	}
	if f.HasInclusionTag() {
		return models.StageVerdict{}, false
	}

	return models.StageVerdict{
		Decision:   models.DecisionReject,
		Confidence: 0.85,
		Reasoning:  "wholly-owned subsidiary incorporation with no external counterparty",
		Stage:      models.StageRules,
	}, true
}

// Rule 4: nothing deterministic to act on; defer to the AI fallback.
func (e *RuleEngine) noDeterministicSignal(f *models.FeatureSet) (models.StageVerdict, bool) {
	_, hasAmount := f.LargestUSDAmount()
	if hasAmount || f.HasUnknownCurrencyAmount() {
		return models.StageVerdict{}, false
	}
	if f.HasInclusionTag() && !f.HasExclusionTag() {
		return models.StageVerdict{}, false
	}

	return models.StageVerdict{
		Decision:  models.DecisionInconclusive,
		Reasoning: "no monetary amount and no unambiguous deal-type signal",
		Stage:     models.StageRules,
	}, true
}

// Rule 5: inclusion and exclusion signals of comparable salience.
func (e *RuleEngine) conflictingSignals(f *models.FeatureSet) (models.StageVerdict, bool) {
	if !f.HasInclusionTag() || !f.HasExclusionTag() {
		return models.StageVerdict{}, false
	}

	return models.StageVerdict{
		Decision: models.DecisionInconclusive,
		Reasoning: fmt.Sprintf("conflicting signals: %s alongside %s",
			f.FirstInclusionTag(), f.FirstExclusionTag()),
		Stage: models.StageRules,
	}, true
}

func formatUSD(amount float64) string {
	switch {
	case amount >= 1e9:
		return fmt.Sprintf("USD %.1fB", amount/1e9)
	case amount >= 1e6:
		return fmt.Sprintf("USD %.1fM", amount/1e6)
	default:
		return fmt.Sprintf("USD %.0f", amount)
	}
}
