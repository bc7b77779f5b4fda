package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BerylCAtieno/segment-persona-agent/internal/a2a"
	"github.com/BerylCAtieno/segment-persona-agent/internal/analyzer"
	"github.com/BerylCAtieno/segment-persona-agent/internal/api"
	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSegment() models.SegmentInput {
	return models.SegmentInput{
		IndustryType:      models.IndustryB2B,
		Domain:            "Fintech",
		AgeGroup:          models.Age40s,
		Gender:            models.GenderOther,
		VisitFrequency:    models.VisitRegular,
		PaymentTier:       models.PaymentHigh,
		Goal:              "arpu",
		ChannelPreference: models.ChannelSMS,
		Note:              "pays yearly",
	}
}

func TestSegmentText_ParsesBack(t *testing.T) {
	parsed, ok := a2a.ParseSegmentText(segmentText(testSegment()))
	require.True(t, ok)
	assert.Equal(t, testSegment(), parsed)
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLocalCommand(t *testing.T) {
	out, err := runCLI(t, "local", "--domain", "Gaming", "--age", "10s", "--gender", "male",
		"--visit", "new", "--payment", "low", "--goal", "conversion", "--channel", "push")
	require.NoError(t, err)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "grp_gaming_10s_male_new_low", result.Persona.ID)
	assert.NotEmpty(t, result.Approaches)
}

func TestLocalCommand_Impact(t *testing.T) {
	out, err := runCLI(t, "local", "--domain", "Travel", "--age", "20s", "--gender", "female",
		"--visit", "occasional", "--payment", "mid", "--approach", "reactivation-loop", "--extra", "discountRate=30")
	t.Cleanup(func() { localApproach, localExtras = "", nil })
	require.NoError(t, err)

	var impact models.ExpectedImpact
	require.NoError(t, json.Unmarshal([]byte(out), &impact))
	assert.LessOrEqual(t, impact.ConversionLiftPctMin, impact.ConversionLiftPctMax)
}

func TestLocalCommand_InvalidSegment(t *testing.T) {
	out, err := runCLI(t, "local", "--age", "70s")
	t.Cleanup(func() { segment.age = "30s" })
	require.Error(t, err)
	assert.Contains(t, out, "ageGroup")
}

func TestRunAllTests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := analyzer.NewService(nil, nil)
	router := gin.New()
	api.NewHandler(service, nil, nil).Register(router)
	handler := a2a.NewA2AHandler(service, nil)
	router.GET("/.well-known/agent.json", handler.ServeAgentCard)
	router.POST("/a2a/persona", handler.HandlePersona)

	srv := httptest.NewServer(router)
	defer srv.Close()

	passed, failed := NewTestClient(srv.URL+"/", 5*time.Second).runAllTests(testSegment())
	assert.Equal(t, 5, passed)
	assert.Zero(t, failed)
}
