// Package features implements the lexical feature extractor: pure,
// deterministic scanning of normalized announcement text for keyword
// signals, monetary amounts, and entity mentions. Match tables come from
// the lexicon and are compiled once at construction; extraction itself
// performs no I/O and has no failure modes beyond yielding an empty
// feature set for empty input.
package features

import (
	"regexp"
	"strings"

	"github.com/seftonlabs/dealtriage/internal/models"
	"github.com/seftonlabs/dealtriage/internal/services/lexicon"
)

// keywordMatcher matches one lexicon phrase. Single words are matched on
// word boundaries; multi-word phrases as plain substrings.
type keywordMatcher struct {
	keyword string
	pattern *regexp.Regexp // nil for substring matching
}

func (m keywordMatcher) matches(text string) bool {
	if m.pattern != nil {
		return m.pattern.MatchString(text)
	}
	return strings.Contains(text, m.keyword)
}

func newKeywordMatcher(keyword string) keywordMatcher {
	kw := strings.ToLower(keyword)
	if strings.ContainsAny(kw, " -") {
		return keywordMatcher{keyword: kw}
	}
	return keywordMatcher{
		keyword: kw,
		pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`),
	}
}

// Extractor derives a FeatureSet from an Announcement. Safe for concurrent
// use: all state is read-only after construction.
type Extractor struct {
	tagMatchers   map[models.DealTypeTag][]keywordMatcher
	peFirms       []string
	advisors      []string
	issuerMarkers []string
	rates         map[string]float64
}

// NewExtractor compiles the lexicon's match tables.
func NewExtractor(lex *lexicon.Lexicon) *Extractor {
	e := &Extractor{
		tagMatchers: make(map[models.DealTypeTag][]keywordMatcher, len(lex.Keywords)),
		rates:       lex.CurrencyRates,
	}

	for tag, keywords := range lex.Keywords {
		matchers := make([]keywordMatcher, 0, len(keywords))
		for _, kw := range keywords {
			matchers = append(matchers, newKeywordMatcher(kw))
		}
		e.tagMatchers[tag] = matchers
	}

	for _, name := range lex.PEFirms {
		e.peFirms = append(e.peFirms, strings.ToLower(name))
	}
	for _, name := range lex.Advisors {
		e.advisors = append(e.advisors, strings.ToLower(name))
	}
	for _, name := range lex.IssuerMarkers {
		e.issuerMarkers = append(e.issuerMarkers, strings.ToLower(name))
	}

	return e
}

// Extract scans the announcement's normalized text. Empty or nil input
// yields an empty feature set. A text segment may legitimately match
// several deal-type tags at once; exclusivity is a rule-engine concern.
func (e *Extractor) Extract(ann *models.Announcement) *models.FeatureSet {
	fs := models.NewFeatureSet()
	if ann == nil || ann.Normalized == "" {
		return fs
	}

	text := ann.Normalized

	for tag, matchers := range e.tagMatchers {
		for _, m := range matchers {
			if m.matches(text) {
				fs.Tags[tag] = true
				fs.Keywords = append(fs.Keywords, m.keyword)
			}
		}
	}

	fs.Amounts = extractAmounts(text, e.rates)

	for _, name := range e.peFirms {
		if strings.Contains(text, name) {
			fs.Entities = append(fs.Entities, models.EntityMention{Name: name, Category: models.EntityPEFirm})
		}
	}
	for _, name := range e.advisors {
		if strings.Contains(text, name) {
			fs.Entities = append(fs.Entities, models.EntityMention{Name: name, Category: models.EntityAdvisor})
		}
	}
	for _, name := range e.issuerMarkers {
		if strings.Contains(text, name) {
			fs.Entities = append(fs.Entities, models.EntityMention{Name: name, Category: models.EntityIssuer})
		}
	}

	return fs
}
