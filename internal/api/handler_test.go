package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BerylCAtieno/segment-persona-agent/internal/analyzer"
	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
	"github.com/BerylCAtieno/segment-persona-agent/internal/rules"
	"github.com/BerylCAtieno/segment-persona-agent/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNarrator struct {
	text string
	err  error
	got  []models.AnalysisResult
}

func (s *stubNarrator) DescribePersona(_ context.Context, result models.AnalysisResult) (string, error) {
	s.got = append(s.got, result)
	return s.text, s.err
}

func travelSegment() models.SegmentInput {
	return models.SegmentInput{
		Domain:            "Travel",
		AgeGroup:          models.Age20s,
		Gender:            models.GenderMale,
		VisitFrequency:    models.VisitOccasional,
		PaymentTier:       models.PaymentMid,
		Goal:              "conversion",
		ChannelPreference: models.ChannelPush,
	}
}

func newRouter(narrator Narrator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(analyzer.NewService(nil, nil), narrator, nil).Register(r)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	w := do(t, newRouter(nil), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestAnalyze(t *testing.T) {
	w := do(t, newRouter(nil), http.MethodPost, "/api/analyze", travelSegment())
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[models.AnalysisResult](t, w)
	if diff := cmp.Diff(analyzer.AnalyzeSegment(travelSegment()), got); diff != "" {
		t.Errorf("analysis mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyze_InvalidPayload(t *testing.T) {
	input := travelSegment()
	input.AgeGroup = "70s"
	input.Domain = ""

	w := do(t, newRouter(nil), http.MethodPost, "/api/analyze", input)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode[errorResponse](t, w)
	assert.Equal(t, "Invalid payload", resp.Message)
	assert.Equal(t, []string{"domain", "ageGroup"}, validation.Fields(resp.Issues))
	assert.Equal(t, validation.CodeInvalidEnum, resp.Issues[1].Code)
}

func TestAnalyze_MalformedJSON(t *testing.T) {
	w := do(t, newRouter(nil), http.MethodPost, "/api/analyze", `{"domain":`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode[errorResponse](t, w)
	require.Len(t, resp.Issues, 1)
	assert.Equal(t, "body", resp.Issues[0].Field)
}

func TestImpact(t *testing.T) {
	body := map[string]any{
		"approachId": rules.ApproachReactivation,
		"segment":    travelSegment(),
		"extras":     map[string]any{rules.FieldDiscountRate: 25},
	}
	w := do(t, newRouter(nil), http.MethodPost, "/api/impact", body)
	require.Equal(t, http.StatusOK, w.Code)

	want := rules.EstimateImpact(rules.ApproachReactivation, travelSegment(), map[string]string{rules.FieldDiscountRate: "25"})
	assert.Equal(t, want, decode[models.ExpectedImpact](t, w))

	noExtras := rules.EstimateImpact(rules.ApproachReactivation, travelSegment(), nil)
	assert.NotEqual(t, noExtras, want)
}

func TestImpact_StringExtras(t *testing.T) {
	body := `{"approachId":"high-value-retention","segment":` + mustJSON(t, travelSegment()) +
		`,"extras":{"vipTouchpoint":"weekly"}}`
	w := do(t, newRouter(nil), http.MethodPost, "/api/impact", body)
	require.Equal(t, http.StatusOK, w.Code)

	want := rules.EstimateImpact(rules.ApproachHighValue, travelSegment(), map[string]string{rules.FieldVIPTouchpoint: "weekly"})
	assert.Equal(t, want, decode[models.ExpectedImpact](t, w))
}

func TestImpact_Invalid(t *testing.T) {
	input := travelSegment()
	input.Gender = ""
	w := do(t, newRouter(nil), http.MethodPost, "/api/impact", map[string]any{"segment": input})
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode[errorResponse](t, w)
	assert.Equal(t, []string{"approachId", "segment.gender"}, validation.Fields(resp.Issues))

	w = do(t, newRouter(nil), http.MethodPost, "/api/impact",
		`{"approachId":"bundle-upsell","segment":{},"extras":{"bundleDepth":[1]}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "body", decode[errorResponse](t, w).Issues[0].Field)
}

func TestExtraFields(t *testing.T) {
	r := newRouter(nil)

	w := do(t, r, http.MethodGet, "/api/extra-fields", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.ExtraFieldDefinition](t, w), 5)

	w = do(t, r, http.MethodGet, "/api/extra-fields?ids=bundleDepth,%20nope,discountRate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	defs := decode[[]models.ExtraFieldDefinition](t, w)
	require.Len(t, defs, 2)
	assert.Equal(t, rules.FieldBundleDepth, defs[0].ID)
	assert.Equal(t, rules.FieldDiscountRate, defs[1].ID)
	require.NotNil(t, defs[1].Max)
	assert.Equal(t, 40.0, *defs[1].Max)
}

func TestOptions(t *testing.T) {
	w := do(t, newRouter(nil), http.MethodGet, "/api/options", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, rules.Options(), decode[rules.FormOptions](t, w))
}

func TestNarrative(t *testing.T) {
	narrator := &stubNarrator{text: "A curious traveler."}
	w := do(t, newRouter(narrator), http.MethodPost, "/api/narrative", travelSegment())
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[NarrativeResponse](t, w)
	assert.Equal(t, "A curious traveler.", resp.Narrative)
	assert.Equal(t, "grp_travel_20s_male_occasional_mid", resp.Analysis.Persona.ID)
	require.Len(t, narrator.got, 1)
	assert.Equal(t, resp.Analysis.Persona.ID, narrator.got[0].Persona.ID)
}

func TestNarrative_Unavailable(t *testing.T) {
	w := do(t, newRouter(nil), http.MethodPost, "/api/narrative", travelSegment())
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNarrative_Failures(t *testing.T) {
	narrator := &stubNarrator{err: errors.New("quota exceeded")}
	r := newRouter(narrator)

	w := do(t, r, http.MethodPost, "/api/narrative", travelSegment())
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "quota")

	w = do(t, r, http.MethodPost, "/api/narrative", `[]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, narrator.got, 1)
}

func TestExtraValue_UnmarshalJSON(t *testing.T) {
	var extras map[string]ExtraValue
	require.NoError(t, json.Unmarshal([]byte(`{"a":"weekly","b":12.5,"c":null,"d":true}`), &extras))
	assert.Equal(t, map[string]ExtraValue{"a": "weekly", "b": "12.5", "c": "", "d": "true"}, extras)

	err := json.Unmarshal([]byte(`{"a":{"x":1}}`), &extras)
	assert.Error(t, err)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return strings.TrimSpace(string(raw))
}
