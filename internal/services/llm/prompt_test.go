package llm

import (
	"strings"
	"testing"

	"github.com/seftonlabs/dealtriage/internal/models"
)

func TestBuildUserPrompt(t *testing.T) {
	ann := models.NewAnnouncement("GHI Corp enters strategic partnership with JKL Inc", "test")
	fs := models.NewFeatureSet()
	fs.Tags[models.TagStrategicInvestment] = true
	fs.Amounts = append(fs.Amounts, models.MonetaryAmount{
		Value: 10_000_000, Currency: "SGD", USD: 7_400_000, Normalized: true,
	})

	prompt := buildUserPrompt(ann, fs, 12_000)

	if !strings.Contains(prompt, ann.Raw) {
		t.Error("prompt missing announcement text")
	}
	if !strings.Contains(prompt, "strategic-investment") {
		t.Error("prompt missing deal-type signal summary")
	}
	if !strings.Contains(prompt, "SGD") {
		t.Error("prompt missing amount summary")
	}
}

func TestBuildUserPromptTruncates(t *testing.T) {
	long := strings.Repeat("a", 30_000)
	ann := models.NewAnnouncement(long, "test")

	prompt := buildUserPrompt(ann, models.NewFeatureSet(), 12_000)

	if strings.Contains(prompt, long) {
		t.Error("prompt contains untruncated text")
	}
	if !strings.Contains(prompt, long[:12_000]) {
		t.Error("prompt missing truncated text prefix")
	}
}

func TestBuildUserPromptNoFeatures(t *testing.T) {
	ann := models.NewAnnouncement("short notice", "test")

	prompt := buildUserPrompt(ann, models.NewFeatureSet(), 12_000)

	if strings.Contains(prompt, "Deterministic signals") {
		t.Error("prompt has a signal section with no signals present")
	}
}

func TestSystemInstructionDemandsJSON(t *testing.T) {
	if !strings.Contains(systemInstruction, "is_ma_transaction") {
		t.Error("system instruction missing the JSON contract")
	}
	if !strings.Contains(systemInstruction, "USD 5 million") {
		t.Error("system instruction missing the deal-size threshold")
	}
}
