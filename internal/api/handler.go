// Package api exposes the analysis engine over a JSON REST surface.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/segment-persona-agent/internal/analyzer"
	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
	"github.com/BerylCAtieno/segment-persona-agent/internal/rules"
	"github.com/BerylCAtieno/segment-persona-agent/internal/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Narrator writes a free-text description of an analysis.
type Narrator interface {
	DescribePersona(ctx context.Context, result models.AnalysisResult) (string, error)
}

type Handler struct {
	service  *analyzer.Service
	narrator Narrator
	logger   *zap.Logger
}

// NewHandler builds the REST handler. narrator may be nil, in which case the
// narrative route answers 503.
func NewHandler(service *analyzer.Service, narrator Narrator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service:  service,
		narrator: narrator,
		logger:   logger,
	}
}

// ImpactRequest asks for a single approach's impact under explicit extra values.
type ImpactRequest struct {
	ApproachID string                `json:"approachId"`
	Segment    models.SegmentInput   `json:"segment"`
	Extras     map[string]ExtraValue `json:"extras"`
}

// NarrativeResponse pairs the rule-based analysis with the generated text.
type NarrativeResponse struct {
	Analysis  models.AnalysisResult `json:"analysis"`
	Narrative string                `json:"narrative"`
}

type errorResponse struct {
	Message string             `json:"message"`
	Issues  []validation.Issue `json:"issues,omitempty"`
}

const invalidPayload = "Invalid payload"

// Register mounts the REST routes under /api and the health check.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", Health)

	group := r.Group("/api")
	group.POST("/analyze", h.Analyze)
	group.POST("/impact", h.Impact)
	group.POST("/narrative", h.Narrative)
	group.GET("/extra-fields", h.ExtraFields)
	group.GET("/options", h.Options)
}

func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (h *Handler) Analyze(c *gin.Context) {
	input, ok := h.bindSegment(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.service.Analyze(c.Request.Context(), input))
}

func (h *Handler) Impact(c *gin.Context) {
	var req ImpactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.rejectBody(c, err)
		return
	}

	var issues []validation.Issue
	if strings.TrimSpace(req.ApproachID) == "" {
		issues = append(issues, validation.Issue{
			Field:   "approachId",
			Code:    validation.CodeRequired,
			Message: "Please select an approach.",
		})
	}
	for _, issue := range validation.Segment(req.Segment) {
		issue.Field = "segment." + issue.Field
		issues = append(issues, issue)
	}
	if len(issues) > 0 {
		h.reject(c, issues)
		return
	}

	extras := make(map[string]string, len(req.Extras))
	for id, v := range req.Extras {
		extras[id] = string(v)
	}
	c.JSON(http.StatusOK, h.service.RecalculateImpact(req.ApproachID, req.Segment, extras))
}

func (h *Handler) Narrative(c *gin.Context) {
	if h.narrator == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Message: "Narrative generation is not configured"})
		return
	}

	input, ok := h.bindSegment(c)
	if !ok {
		return
	}

	result := h.service.Analyze(c.Request.Context(), input)
	narrative, err := h.narrator.DescribePersona(c.Request.Context(), result)
	if err != nil {
		h.logger.Error("narrative generation failed", zap.String("persona", result.Persona.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, errorResponse{Message: "Failed to generate narrative"})
		return
	}

	c.JSON(http.StatusOK, NarrativeResponse{Analysis: result, Narrative: narrative})
}

// ExtraFields returns the definitions for ?ids=a,b, or all of them.
func (h *Handler) ExtraFields(c *gin.Context) {
	var ids []string
	for _, id := range strings.Split(c.Query("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		c.JSON(http.StatusOK, rules.ExtraFieldDefinitions())
		return
	}
	c.JSON(http.StatusOK, rules.ExtraFieldDefinitionsFor(ids))
}

func (h *Handler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, rules.Options())
}

func (h *Handler) bindSegment(c *gin.Context) (models.SegmentInput, bool) {
	var input models.SegmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.rejectBody(c, err)
		return input, false
	}
	if issues := validation.Segment(input); len(issues) > 0 {
		h.reject(c, issues)
		return input, false
	}
	return input, true
}

func (h *Handler) rejectBody(c *gin.Context, err error) {
	h.reject(c, []validation.Issue{{
		Field:   "body",
		Code:    validation.CodeInvalid,
		Message: "Request body must be a valid JSON object.",
	}})
	h.logger.Debug("malformed request body", zap.Error(err))
}

func (h *Handler) reject(c *gin.Context, issues []validation.Issue) {
	h.logger.Info("payload rejected",
		zap.String("path", c.Request.URL.Path),
		zap.Strings("fields", validation.Fields(issues)),
	)
	c.JSON(http.StatusBadRequest, errorResponse{Message: invalidPayload, Issues: issues})
}

// ExtraValue accepts a JSON string, number or boolean and keeps its text form.
type ExtraValue string

func (v *ExtraValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = ""
	case string:
		*v = ExtraValue(x)
	case float64:
		*v = ExtraValue(strconv.FormatFloat(x, 'f', -1, 64))
	case bool:
		*v = ExtraValue(strconv.FormatBool(x))
	default:
		return errors.New("extra values must be strings or numbers")
	}
	return nil
}
