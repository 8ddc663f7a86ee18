package features

import (
	"testing"

	"github.com/seftonlabs/dealtriage/internal/models"
	"github.com/seftonlabs/dealtriage/internal/services/lexicon"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	lex := lexicon.Default()
	if err := lex.Validate(); err != nil {
		t.Fatalf("default lexicon invalid: %v", err)
	}
	return NewExtractor(lex)
}

func TestExtractTags(t *testing.T) {
	extractor := newTestExtractor(t)

	tests := []struct {
		name     string
		text     string
		wantTags []models.DealTypeTag
	}{
		{
			name:     "acquisition with consideration",
			text:     "ABC Corp announces acquisition of XYZ Pte Ltd for $200 million",
			wantTags: []models.DealTypeTag{models.TagAcquisition},
		},
		{
			name:     "financial results",
			text:     "XYZ Limited announces unaudited financial results for Q3 FY2024 with net profit of $12M",
			wantTags: []models.DealTypeTag{models.TagFinancialResult},
		},
		{
			name:     "property disposal",
			text:     "DEF Corp sells industrial property in Tuas for S$85 million",
			wantTags: []models.DealTypeTag{models.TagPropertyTransaction},
		},
		{
			name:     "debt issuance",
			text:     "JKL Holdings announces issue of $50 million corporate bonds due 2027",
			wantTags: []models.DealTypeTag{models.TagDebtIssuance},
		},
		{
			name:     "wholly-owned subsidiary incorporation",
			text:     "Announcement on the incorporation of a wholly-owned subsidiary in Singapore",
			wantTags: []models.DealTypeTag{models.TagSubsidiaryIncorporation},
		},
		{
			name:     "case insensitive matching",
			text:     "PROPOSED MERGER OF EQUALS BETWEEN ALPHA AND BETA",
			wantTags: []models.DealTypeTag{models.TagMerger},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := extractor.Extract(models.NewAnnouncement(tt.text, "test"))
			for _, tag := range tt.wantTags {
				if !fs.HasTag(tag) {
					t.Errorf("expected tag %q, got tags %v", tag, fs.Tags)
				}
			}
		})
	}
}

func TestExtractWordBoundaries(t *testing.T) {
	extractor := newTestExtractor(t)

	// "merge" must not fire inside "submerged".
	fs := extractor.Extract(models.NewAnnouncement("the submerged pipeline project update", "test"))
	if fs.HasTag(models.TagMerger) {
		t.Errorf("merger tag fired on substring match: keywords %v", fs.Keywords)
	}
}

func TestExtractEntities(t *testing.T) {
	extractor := newTestExtractor(t)

	fs := extractor.Extract(models.NewAnnouncement(
		"GHI Partners announces takeover bid, with Goldman Sachs acting as financial adviser to the company", "test"))

	if got := fs.EntitiesByCategory(models.EntityPEFirm); len(got) == 0 {
		t.Errorf("expected a pe-firm mention, entities %v", fs.Entities)
	}
	if got := fs.EntitiesByCategory(models.EntityAdvisor); len(got) == 0 {
		t.Errorf("expected an advisor mention, entities %v", fs.Entities)
	}
	if got := fs.EntitiesByCategory(models.EntityIssuer); len(got) == 0 {
		t.Errorf("expected an issuer marker mention, entities %v", fs.Entities)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	extractor := newTestExtractor(t)

	for _, ann := range []*models.Announcement{nil, models.NewAnnouncement("", "test")} {
		fs := extractor.Extract(ann)
		if fs == nil {
			t.Fatal("Extract returned nil feature set")
		}
		if len(fs.Tags) != 0 || len(fs.Amounts) != 0 || len(fs.Entities) != 0 {
			t.Errorf("expected empty feature set, got %+v", fs)
		}
	}
}

func TestExtractDeterministic(t *testing.T) {
	extractor := newTestExtractor(t)
	ann := models.NewAnnouncement("ABC Corp announces acquisition of XYZ Pte Ltd for $200 million", "test")

	first := extractor.Extract(ann)
	second := extractor.Extract(ann)

	if len(first.Tags) != len(second.Tags) || len(first.Amounts) != len(second.Amounts) {
		t.Errorf("extraction not deterministic: %+v vs %+v", first, second)
	}
}
