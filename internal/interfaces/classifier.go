package interfaces

import (
	"context"

	"github.com/seftonlabs/dealtriage/internal/models"
)

// Classifier is the inbound boundary the presentation layer calls. One
// synchronous request, one completed ClassificationResult.
//
// Input validation failures (empty or oversized text) are the only errors
// returned; every other failure mode is recovered into a conservative
// result per the pipeline's error policy.
type Classifier interface {
	Classify(ctx context.Context, text, source string) (*models.ClassificationResult, error)
}
