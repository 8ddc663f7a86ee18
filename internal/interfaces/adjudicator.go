package interfaces

import (
	"context"

	"github.com/seftonlabs/dealtriage/internal/models"
)

// Adjudicator is the narrow boundary to the external language-model
// capability used as the pipeline's last stage. Implementations build a
// bounded prompt from the announcement and rubric, invoke the model with an
// enforced timeout, and parse a structured verdict.
//
// A successfully parsed verdict is always accept or reject. Any failure
// (timeout, transport error, unparseable response) is converted into an
// inconclusive verdict whose reasoning starts with
// models.ReasonAIUnavailable; implementations never propagate a raw fault.
type Adjudicator interface {
	// Adjudicate classifies an announcement the deterministic stages could
	// not decide. The returned error is advisory (for logging); callers
	// must treat the verdict as authoritative.
	Adjudicate(ctx context.Context, ann *models.Announcement, features *models.FeatureSet) (models.StageVerdict, error)

	// Name identifies the underlying provider ("claude", "gemini", "stub").
	Name() string

	// Close releases provider resources.
	Close() error
}
