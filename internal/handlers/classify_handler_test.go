package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/seftonlabs/dealtriage/internal/models"
	"github.com/seftonlabs/dealtriage/internal/services/pipeline"
)

// stubClassifier records the text it was given and returns a canned
// result.
type stubClassifier struct {
	gotText   string
	gotSource string
	result    *models.ClassificationResult
	err       error
}

func (s *stubClassifier) Classify(ctx context.Context, text, source string) (*models.ClassificationResult, error) {
	s.gotText = text
	s.gotSource = source
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestClassifyHandler(stub *stubClassifier) *ClassifyHandler {
	return NewClassifyHandler(stub, 64*1024, arbor.NewLogger())
}

func postClassify(t *testing.T, handler *ClassifyHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/classify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ClassifyHandler(rec, req)
	return rec
}

func TestClassifyHandlerSuccess(t *testing.T) {
	stub := &stubClassifier{
		result: &models.ClassificationResult{
			RequestID:       "req-1",
			IsMATransaction: true,
			Confidence:      0.9,
			Reasoning:       "acquisition with deal value USD 200.0M at or above the USD 5.0M threshold",
			DecidingStage:   models.StageRules,
			Theme:           "acquisition",
		},
	}
	handler := newTestClassifyHandler(stub)

	rec := postClassify(t, handler, `{"text": "ABC Corp announces acquisition of XYZ Pte Ltd for $200 million", "source": "asx"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.ClassificationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.IsMATransaction)
	assert.Equal(t, models.StageRules, result.DecidingStage)
	assert.Equal(t, "asx", stub.gotSource)
}

func TestClassifyHandlerPrependsTitle(t *testing.T) {
	stub := &stubClassifier{result: &models.ClassificationResult{RequestID: "req-2"}}
	handler := newTestClassifyHandler(stub)

	rec := postClassify(t, handler, `{"title": "Proposed Acquisition", "text": "details follow"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(stub.gotText, "Proposed Acquisition\n\n"))
	assert.True(t, strings.HasSuffix(stub.gotText, "details follow"))
}

func TestClassifyHandlerRejectsNonPost(t *testing.T) {
	handler := newTestClassifyHandler(&stubClassifier{})

	req := httptest.NewRequest("GET", "/api/classify", nil)
	rec := httptest.NewRecorder()
	handler.ClassifyHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestClassifyHandlerRejectsInvalidJSON(t *testing.T) {
	handler := newTestClassifyHandler(&stubClassifier{})

	rec := postClassify(t, handler, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassifyHandlerRejectsMissingText(t *testing.T) {
	handler := newTestClassifyHandler(&stubClassifier{})

	rec := postClassify(t, handler, `{"source": "asx"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "text is required")
}

func TestClassifyHandlerRejectsOversizedBody(t *testing.T) {
	handler := newTestClassifyHandler(&stubClassifier{})

	var body bytes.Buffer
	body.WriteString(`{"text": "`)
	body.WriteString(strings.Repeat("a", 128*1024))
	body.WriteString(`"}`)

	rec := postClassify(t, handler, body.String())
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestClassifyHandlerMapsPipelineErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"empty input", pipeline.ErrEmptyInput, http.StatusBadRequest},
		{"input too large", pipeline.ErrInputTooLarge, http.StatusRequestEntityTooLarge},
		{"internal failure", errors.New("extractor blew up"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestClassifyHandler(&stubClassifier{err: tt.err})

			rec := postClassify(t, handler, `{"text": "some announcement"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
