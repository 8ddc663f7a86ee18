// Package llm implements the AI fallback adjudicator against cloud
// language-model providers. Both providers share the same rubric prompt
// and structured-verdict parsing; the provider is selected by
// configuration through NewAdjudicator.
package llm

import (
	"fmt"
	"strings"

	"github.com/seftonlabs/dealtriage/internal/models"
)

// systemInstruction is the fixed decision rubric supplied with every
// adjudication request. The qualify / does-not-qualify lists mirror the
// published classification criteria.
const systemInstruction = `You are a corporate announcements analyst. Classify whether the provided announcement describes a genuine M&A transaction.

Qualifies as M&A:
- Acquisitions, mergers, takeovers
- Strategic investments above USD 5 million
- Change of control transactions
- Joint ventures with equity stakes
- Substantial asset acquisitions

Does NOT qualify:
- Financial results or earnings reports
- Property transactions
- Debt or bond issuance
- Deals below USD 5 million
- Procedural or administrative corporate updates

You must commit to a decision. Respond with a single JSON object:
{"is_ma_transaction": true|false, "confidence": 0.0-1.0, "reasoning": "<one or two sentences>"}

Respond with the JSON object only, no surrounding prose or code fences.`

// buildUserPrompt assembles the bounded adjudication prompt: truncated
// announcement text plus a short summary of the deterministic signals that
// failed to decide the case.
func buildUserPrompt(ann *models.Announcement, features *models.FeatureSet, maxChars int) string {
	text := ann.Raw
	if len(text) > maxChars {
		text = text[:maxChars]
	}

	var b strings.Builder
	b.WriteString("Classify the following corporate announcement:\n\n---\n")
	b.WriteString(text)
	b.WriteString("\n---\n")

	if summary := summarizeFeatures(features); summary != "" {
		b.WriteString("\nDeterministic signals detected (inconclusive on their own):\n")
		b.WriteString(summary)
	}

	return b.String()
}

func summarizeFeatures(features *models.FeatureSet) string {
	if features == nil {
		return ""
	}

	var lines []string
	for tag := range features.Tags {
		lines = append(lines, fmt.Sprintf("- deal-type signal: %s", tag))
	}
	for _, a := range features.Amounts {
		if a.Normalized {
			lines = append(lines, fmt.Sprintf("- amount: %.0f %s (~USD %.0f)", a.Value, a.Currency, a.USD))
		} else {
			lines = append(lines, fmt.Sprintf("- amount: %.0f %s (unconverted)", a.Value, a.Currency))
		}
	}
	for _, e := range features.Entities {
		lines = append(lines, fmt.Sprintf("- entity (%s): %s", e.Category, e.Name))
	}

	return strings.Join(lines, "\n")
}
