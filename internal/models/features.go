package models

// DealTypeTag is a categorical label attached to detected textual patterns
// indicating the nature of an announcement.
type DealTypeTag string

const (
	TagAcquisition             DealTypeTag = "acquisition"
	TagMerger                  DealTypeTag = "merger"
	TagStrategicInvestment     DealTypeTag = "strategic-investment"
	TagJointVenture            DealTypeTag = "joint-venture"
	TagPrivatization           DealTypeTag = "privatization"
	TagSubsidiaryIncorporation DealTypeTag = "subsidiary-incorporation"
	TagSchemeUpdate            DealTypeTag = "scheme-update"
	TagCompletionUpdate        DealTypeTag = "completion-update"
	TagFinancialResult         DealTypeTag = "financial-result"
	TagPropertyTransaction     DealTypeTag = "property-transaction"
	TagDebtIssuance            DealTypeTag = "debt-issuance"
)

// InclusionTags lists deal-type tags that indicate a potential M&A
// transaction, in canonical priority order.
var InclusionTags = []DealTypeTag{
	TagAcquisition,
	TagMerger,
	TagStrategicInvestment,
	TagJointVenture,
	TagPrivatization,
}

// ExclusionTags lists deal-type tags for categories that are never M&A,
// in the order the pre-filter checks them.
var ExclusionTags = []DealTypeTag{
	TagFinancialResult,
	TagPropertyTransaction,
	TagDebtIssuance,
	TagSchemeUpdate,
	TagCompletionUpdate,
}

// EntityCategory distinguishes the kinds of entity mentions the extractor
// recognizes.
type EntityCategory string

const (
	EntityPEFirm  EntityCategory = "pe-firm"
	EntityAdvisor EntityCategory = "advisor"
	EntityIssuer  EntityCategory = "issuer"
)

// EntityMention is a detected entity name with its category.
type EntityMention struct {
	Name     string         `json:"name"`
	Category EntityCategory `json:"category"`
}

// MonetaryAmount is a detected money figure. USD holds the canonical
// USD-equivalent value when the currency could be normalized; when it
// could not, Normalized is false and Value/Currency carry the raw figure.
type MonetaryAmount struct {
	Value      float64 `json:"value"`
	Currency   string  `json:"currency"`
	USD        float64 `json:"usd,omitempty"`
	Normalized bool    `json:"normalized"`
}

// FeatureSet holds the lexical signals derived from one announcement.
// Derived deterministically; never mutated after extraction.
type FeatureSet struct {
	Keywords []string             `json:"keywords,omitempty"`
	Amounts  []MonetaryAmount     `json:"amounts,omitempty"`
	Entities []EntityMention      `json:"entities,omitempty"`
	Tags     map[DealTypeTag]bool `json:"tags,omitempty"`
}

// NewFeatureSet returns an empty feature set.
func NewFeatureSet() *FeatureSet {
	return &FeatureSet{Tags: make(map[DealTypeTag]bool)}
}

// HasTag reports whether the given deal-type tag was detected.
func (f *FeatureSet) HasTag(tag DealTypeTag) bool {
	return f.Tags[tag]
}

// FirstInclusionTag returns the first detected inclusion tag in canonical
// order, or "" when none is present.
func (f *FeatureSet) FirstInclusionTag() DealTypeTag {
	for _, tag := range InclusionTags {
		if f.Tags[tag] {
			return tag
		}
	}
	return ""
}

// FirstExclusionTag returns the first detected exclusion tag in check
// order, or "" when none is present.
func (f *FeatureSet) FirstExclusionTag() DealTypeTag {
	for _, tag := range ExclusionTags {
		if f.Tags[tag] {
			return tag
		}
	}
	return ""
}

// HasInclusionTag reports whether any inclusion-set tag was detected.
func (f *FeatureSet) HasInclusionTag() bool {
	return f.FirstInclusionTag() != ""
}

// HasExclusionTag reports whether any exclusion-set tag was detected.
func (f *FeatureSet) HasExclusionTag() bool {
	return f.FirstExclusionTag() != ""
}

// LargestUSDAmount returns the largest normalized USD-equivalent amount.
// The boolean is false when no normalized amount was detected.
func (f *FeatureSet) LargestUSDAmount() (float64, bool) {
	largest := 0.0
	found := false
	for _, a := range f.Amounts {
		if a.Normalized && a.USD > largest {
			largest = a.USD
			found = true
		}
	}
	return largest, found
}

// HasUnknownCurrencyAmount reports whether any detected amount could not
// be normalized to USD.
func (f *FeatureSet) HasUnknownCurrencyAmount() bool {
	for _, a := range f.Amounts {
		if !a.Normalized {
			return true
		}
	}
	return false
}

// EntitiesByCategory returns the detected entity names for one category.
func (f *FeatureSet) EntitiesByCategory(category EntityCategory) []string {
	var names []string
	for _, e := range f.Entities {
		if e.Category == category {
			names = append(names, e.Name)
		}
	}
	return names
}
