package pipeline

import (
	"testing"

	"github.com/seftonlabs/dealtriage/internal/models"
)

func featureSetWithTags(tags ...models.DealTypeTag) *models.FeatureSet {
	fs := models.NewFeatureSet()
	for _, tag := range tags {
		fs.Tags[tag] = true
	}
	return fs
}

func TestPrefilter(t *testing.T) {
	tests := []struct {
		name         string
		features     *models.FeatureSet
		wantDecision models.Decision
	}{
		{
			name:         "financial result rejected",
			features:     featureSetWithTags(models.TagFinancialResult),
			wantDecision: models.DecisionReject,
		},
		{
			name:         "property transaction rejected",
			features:     featureSetWithTags(models.TagPropertyTransaction),
			wantDecision: models.DecisionReject,
		},
		{
			name:         "debt issuance rejected",
			features:     featureSetWithTags(models.TagDebtIssuance),
			wantDecision: models.DecisionReject,
		},
		{
			name:         "exclusion alongside inclusion defers",
			features:     featureSetWithTags(models.TagFinancialResult, models.TagAcquisition),
			wantDecision: models.DecisionInconclusive,
		},
		{
			name:         "inclusion only defers",
			features:     featureSetWithTags(models.TagAcquisition),
			wantDecision: models.DecisionInconclusive,
		},
		{
			name:         "no tags defers",
			features:     models.NewFeatureSet(),
			wantDecision: models.DecisionInconclusive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := Prefilter(tt.features)
			if verdict.Decision != tt.wantDecision {
				t.Errorf("Prefilter() decision = %v, want %v", verdict.Decision, tt.wantDecision)
			}
			if verdict.Stage != models.StagePrefilter {
				t.Errorf("Prefilter() stage = %v, want %v", verdict.Stage, models.StagePrefilter)
			}
			if verdict.Decision == models.DecisionReject && verdict.Confidence != 1.0 {
				t.Errorf("Prefilter() reject confidence = %v, want 1.0", verdict.Confidence)
			}
		})
	}
}

func TestPrefilterNamesCategory(t *testing.T) {
	verdict := Prefilter(featureSetWithTags(models.TagDebtIssuance))
	if verdict.Reasoning == "" {
		t.Fatal("expected reasoning naming the rejected category")
	}
}
