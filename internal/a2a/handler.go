package a2a

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/segment-persona-agent/internal/agent"
	"github.com/BerylCAtieno/segment-persona-agent/internal/analyzer"
	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
	"github.com/BerylCAtieno/segment-persona-agent/internal/rules"
	"github.com/BerylCAtieno/segment-persona-agent/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const segmentHelp = "Please describe the segment, for example: " +
	"domain: SaaS, age: 30s, gender: female, visit: loyal, payment: high, goal: retention, channel: email"

type A2AHandler struct {
	service *analyzer.Service
	logger  *zap.Logger
}

func NewA2AHandler(service *analyzer.Service, logger *zap.Logger) *A2AHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &A2AHandler{
		service: service,
		logger:  logger,
	}
}

// RequestLoggingMiddleware logs raw A2A request bodies at debug level.
func RequestLoggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !logger.Core().Enabled(zap.DebugLevel) || c.Request.Body == nil {
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			logger.Warn("failed to read request body", zap.Error(err))
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		logger.Debug("a2a request",
			zap.String("path", c.Request.URL.Path),
			zap.ByteString("body", bodyBytes),
		)
		c.Next()
	}
}

// HandlePersona processes A2A messages
func (h *A2AHandler) HandlePersona(c *gin.Context) {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("failed to read request body", zap.Error(err))
		h.sendErrorResponse(c, nil, "Failed to read request body", CodeParseError)
		return
	}

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(bodyBytes, &rpcReq); err != nil || rpcReq.Method == "" {
		// Some clients post the message params without the JSON-RPC envelope.
		h.handleDirectMessage(c, bodyBytes)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.logger.Warn("invalid json-rpc version", zap.String("version", rpcReq.JSONRPC))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case MethodMessageSend, MethodAgentTask:
		h.handleTask(c, rpcReq)
	default:
		h.logger.Warn("unknown json-rpc method", zap.String("method", rpcReq.Method))
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

func (h *A2AHandler) handleDirectMessage(c *gin.Context, bodyBytes []byte) {
	var msgParams MessageParams
	if err := json.Unmarshal(bodyBytes, &msgParams); err != nil || len(msgParams.Message.Parts) == 0 {
		h.logger.Warn("request is neither json-rpc nor a direct message", zap.Error(err))
		h.sendErrorResponse(c, nil, "Invalid request format", CodeParseError)
		return
	}

	h.sendSuccessResponse(c, nil, h.runTask(c, msgParams.Message))
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	var msgParams MessageParams
	if len(rpcReq.Params) == 0 {
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}
	if err := json.Unmarshal(rpcReq.Params, &msgParams); err != nil {
		h.logger.Warn("failed to decode message params", zap.ByteString("rpc_id", rpcReq.ID), zap.Error(err))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	h.sendSuccessResponse(c, rpcReq.ID, h.runTask(c, msgParams.Message))
}

// runTask always yields a task; segment problems are reported through the
// task state rather than as JSON-RPC errors.
func (h *A2AHandler) runTask(c *gin.Context, msg A2AMessage) TaskResult {
	taskID := msg.TaskID
	if taskID == "" {
		taskID = uuid.NewString()
	}
	contextID := msg.ContextID
	if contextID == "" {
		contextID = uuid.NewString()
	}

	segment, err := ExtractSegment(msg)
	if errors.Is(err, ErrNoSegment) {
		h.logger.Info("no segment in message", zap.String("task", taskID))
		return h.createStatusTaskResult(taskID, contextID, StateInputRequired, segmentHelp)
	}

	if issues := validation.Segment(segment); len(issues) > 0 {
		h.logger.Info("segment rejected",
			zap.String("task", taskID),
			zap.Strings("fields", validation.Fields(issues)),
		)
		return h.createStatusTaskResult(taskID, contextID, StateFailed, formatIssues(issues))
	}

	result := h.service.Analyze(c.Request.Context(), segment)
	task, err := h.createSuccessTaskResult(taskID, contextID, result)
	if err != nil {
		h.logger.Error("failed to build task result", zap.String("task", taskID), zap.Error(err))
		return h.createStatusTaskResult(taskID, contextID, StateFailed, "Failed to encode the analysis.")
	}
	return task
}

// ServeAgentCard serves the agent card using Gin
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	if err := agent.LoadAgentCard(); err != nil {
		h.logger.Error("error loading agent card", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}

	c.Data(http.StatusOK, "application/json", agent.AgentCardData)
}

func (h *A2AHandler) createSuccessTaskResult(taskID, contextID string, result models.AnalysisResult) (TaskResult, error) {
	summary := FormatAnalysis(result)
	data, err := DataPart(result)
	if err != nil {
		return TaskResult{}, err
	}

	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.NewString(),
				TaskID:    taskID,
				ContextID: contextID,
				Parts:     []MessagePart{TextPart(summary)},
			},
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.NewString(),
				Name:       "Segment Analysis",
				Parts:      []MessagePart{TextPart(summary), data},
			},
		},
	}, nil
}

func (h *A2AHandler) createStatusTaskResult(taskID, contextID, state, text string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.NewString(),
				TaskID:    taskID,
				ContextID: contextID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
	}
}

func formatIssues(issues []validation.Issue) string {
	var builder strings.Builder
	builder.WriteString("The segment could not be analyzed:\n")
	for _, issue := range issues {
		fmt.Fprintf(&builder, "- %s: %s\n", issue.Field, issue.Message)
	}
	builder.WriteString("\n" + segmentHelp)
	return builder.String()
}

// FormatAnalysis renders an analysis as markdown for chat clients.
func FormatAnalysis(result models.AnalysisResult) string {
	persona := result.Persona

	var builder strings.Builder
	fmt.Fprintf(&builder, "# %s\n\n", persona.Name)
	fmt.Fprintf(&builder, "**Persona ID:** `%s`\n", persona.ID)

	builder.WriteString("\n**Traits:**\n")
	for _, trait := range persona.Traits {
		fmt.Fprintf(&builder, "- %s\n", trait)
	}

	builder.WriteString("\n**Pain Points:**\n")
	for _, pain := range persona.PainPoints {
		fmt.Fprintf(&builder, "- %s\n", pain)
	}

	builder.WriteString("\n**Recommended Approaches:**\n")
	for i, approach := range result.Approaches {
		impact := approach.ExpectedImpact
		fmt.Fprintf(&builder, "%d. **%s** (score %d): %s\n", i+1, approach.Title, approach.Priority, approach.Reason)
		fmt.Fprintf(&builder, "   - Conversion lift %g-%g%%, retention lift %g-%g%%\n",
			impact.ConversionLiftPctMin, impact.ConversionLiftPctMax, impact.RetentionLiftPctMin, impact.RetentionLiftPctMax)
		for _, step := range approach.ActionSteps {
			fmt.Fprintf(&builder, "   - %s\n", step)
		}
		if defs := rules.ExtraFieldDefinitionsFor(approach.RequiredExtraFields); len(defs) > 0 {
			labels := make([]string, len(defs))
			for i, def := range defs {
				labels[i] = def.Label
			}
			fmt.Fprintf(&builder, "   - Tune with: %s\n", strings.Join(labels, ", "))
		}
	}

	return builder.String()
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id json.RawMessage, result TaskResult) {
	h.logger.Info("a2a task finished",
		zap.ByteString("rpc_id", id),
		zap.String("task", result.ID),
		zap.String("state", result.Status.State),
	)
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func (h *A2AHandler) sendErrorResponse(c *gin.Context, id json.RawMessage, message string, code int) {
	// JSON-RPC errors are sent with 200 OK
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
		},
	})
}
