// Package lexicon holds the keyword, entity-name, and currency tables the
// feature extractor matches against. The tables are configuration data:
// defaults ship in code and a TOML file given in config replaces any
// section wholesale, so lists can be extended without code changes. Tables
// are loaded once at process start and read-only afterwards.
package lexicon

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/seftonlabs/dealtriage/internal/models"
)

// Lexicon is the full set of match tables used by feature extraction.
type Lexicon struct {
	// Keywords maps each deal-type tag to the phrases that signal it.
	// Matching is case-insensitive; single words are matched on word
	// boundaries, multi-word phrases as substrings.
	Keywords map[models.DealTypeTag][]string `toml:"keywords"`

	// PEFirms and Advisors are name fragments matched case-insensitively
	// as substrings.
	PEFirms  []string `toml:"pe_firms"`
	Advisors []string `toml:"advisors"`

	// IssuerMarkers are phrases whose surrounding text names the issuing
	// company itself (used by the wholly-owned subsidiary rule).
	IssuerMarkers []string `toml:"issuer_markers"`

	// CurrencyRates maps ISO-ish currency codes to their USD conversion
	// rate. A detected currency absent from this table stays unnormalized.
	CurrencyRates map[string]float64 `toml:"currency_rates"`
}

// Default returns the built-in seed lexicon.
func Default() *Lexicon {
	return &Lexicon{
		Keywords: map[models.DealTypeTag][]string{
			models.TagAcquisition: {
				"acquisition", "acquire", "acquires", "acquired",
				"takeover", "takeover bid", "purchase of the entire issued share capital",
				"stake in", "buyout", "to purchase all shares",
			},
			models.TagMerger: {
				"merger", "merge", "merges", "amalgamation", "business combination",
			},
			models.TagStrategicInvestment: {
				"strategic investment", "proposed strategic investment",
				"equity investment", "cornerstone investment",
			},
			models.TagJointVenture: {
				"joint venture", "jv agreement", "equity joint venture",
			},
			models.TagPrivatization: {
				"privatisation", "privatization", "taking the company private",
				"delisting proposal", "voluntary general offer",
			},
			models.TagSubsidiaryIncorporation: {
				"incorporation of a subsidiary", "incorporation of a wholly-owned subsidiary",
				"wholly-owned subsidiary", "wholly owned subsidiary",
				"establishment of a subsidiary",
			},
			models.TagSchemeUpdate: {
				"scheme of arrangement update", "scheme meeting", "scheme booklet",
				"court approval of the scheme", "scheme update",
			},
			models.TagCompletionUpdate: {
				"completion of the proposed", "completion update",
				"settlement has occurred", "transaction has completed",
			},
			models.TagFinancialResult: {
				"financial results", "unaudited financial results", "quarterly results",
				"half year results", "full year results", "annual results",
				"net profit", "net loss", "earnings per share", "interim dividend",
				"results for q", "profit guidance", "revenue increased", "revenue decreased",
			},
			models.TagPropertyTransaction: {
				"property", "industrial property", "commercial property",
				"real estate", "freehold", "leasehold", "sells industrial",
				"disposal of its commercial property", "property sale",
			},
			models.TagDebtIssuance: {
				"bonds", "corporate bonds", "notes due", "bond issue",
				"debt issuance", "convertible notes", "medium term notes",
				"debentures", "loan facility", "credit facility",
			},
		},
		PEFirms: []string{
			"kkr", "blackstone", "carlyle", "tpg", "bain capital",
			"warburg pincus", "apollo global", "advent international",
			"cvc capital", "permira", "gic", "temasek", "partners group",
			"private equity firm", "private equity fund", "ghi partners",
		},
		Advisors: []string{
			"goldman sachs", "morgan stanley", "j.p. morgan", "jpmorgan",
			"hsbc", "ubs", "citigroup", "credit suisse", "lazard",
			"rothschild", "macquarie capital", "kpmg", "deloitte",
			"pricewaterhousecoopers", "financial adviser", "financial advisor",
		},
		IssuerMarkers: []string{
			"the company", "the issuer", "the board of directors",
		},
		CurrencyRates: map[string]float64{
			"USD": 1.0,
			"AUD": 0.66,
			"SGD": 0.74,
			"HKD": 0.128,
			"EUR": 1.08,
			"GBP": 1.27,
			"JPY": 0.0067,
			"CNY": 0.14,
			"NZD": 0.61,
			"CAD": 0.73,
		},
	}
}

// Load returns the default lexicon merged with overrides from the TOML
// file at path. An empty path returns the defaults unchanged. Sections
// present in the file replace the default section wholesale.
func Load(path string) (*Lexicon, error) {
	lex := Default()
	if path == "" {
		return lex, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file %s: %w", path, err)
	}

	var override Lexicon
	if err := toml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file %s: %w", path, err)
	}

	if len(override.Keywords) > 0 {
		lex.Keywords = override.Keywords
	}
	if len(override.PEFirms) > 0 {
		lex.PEFirms = override.PEFirms
	}
	if len(override.Advisors) > 0 {
		lex.Advisors = override.Advisors
	}
	if len(override.IssuerMarkers) > 0 {
		lex.IssuerMarkers = override.IssuerMarkers
	}
	if len(override.CurrencyRates) > 0 {
		lex.CurrencyRates = override.CurrencyRates
	}

	return lex, nil
}

// Validate checks the lexicon is usable: every inclusion and exclusion tag
// needs at least one keyword, and USD must be present in the rate table.
func (l *Lexicon) Validate() error {
	required := make([]models.DealTypeTag, 0, len(models.InclusionTags)+len(models.ExclusionTags))
	required = append(required, models.InclusionTags...)
	required = append(required, models.ExclusionTags...)

	for _, tag := range required {
		if len(l.Keywords[tag]) == 0 {
			return fmt.Errorf("lexicon has no keywords for deal-type tag %q", tag)
		}
	}

	if _, ok := l.CurrencyRates["USD"]; !ok {
		return fmt.Errorf("lexicon currency table must include USD")
	}

	return nil
}
