package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string, timeout time.Duration) *TestClient {
	return &TestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (tc *TestClient) runAllTests(segment models.SegmentInput) (passed, failed int) {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Agent Card", tc.testAgentCard},
		{"Analyze", func() bool { return tc.testAnalyze(segment) }},
		{"Impact", func() bool { return tc.testImpact(segment, "reactivation-loop", map[string]string{"discountRate": "20"}) }},
		{"A2A Task", func() bool { return tc.testA2A(segmentText(segment)) }},
	}

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)
	return passed, failed
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	status, body, err := tc.do(http.MethodGet, "/health", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}
	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	status, body, err := tc.do(http.MethodGet, "/.well-known/agent.json", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var agentCard map[string]any
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	for _, field := range []string{"name", "description", "version", "capabilities", "skills"} {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testAnalyze(segment models.SegmentInput) bool {
	printTestHeader("Testing Segment Analysis")

	status, body, err := tc.do(http.MethodPost, "/api/analyze", segment)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		printJSON(body)
		return false
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if result.Persona.ID == "" || len(result.Approaches) == 0 || len(result.Approaches) > 4 {
		printError("Analysis is missing a persona or has an invalid approach count")
		return false
	}

	printSuccess(fmt.Sprintf("Analyzed %s", result.Persona.Name))
	printAnalysis(result)
	return true
}

func (tc *TestClient) testImpact(segment models.SegmentInput, approachID string, extras map[string]string) bool {
	printTestHeader("Testing Impact Recalculation")

	request := map[string]any{
		"approachId": approachID,
		"segment":    segment,
		"extras":     extras,
	}
	status, body, err := tc.do(http.MethodPost, "/api/impact", request)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		printJSON(body)
		return false
	}

	var impact models.ExpectedImpact
	if err := json.Unmarshal(body, &impact); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if impact.ConversionLiftPctMin > impact.ConversionLiftPctMax || impact.RetentionLiftPctMin > impact.RetentionLiftPctMax {
		printError("Impact interval is inverted")
		return false
	}

	printSuccess(fmt.Sprintf("%s: conversion %g-%g%%, retention %g-%g%%", approachID,
		impact.ConversionLiftPctMin, impact.ConversionLiftPctMax, impact.RetentionLiftPctMin, impact.RetentionLiftPctMax))
	return true
}

func (tc *TestClient) testA2A(text string) bool {
	printTestHeader("Testing A2A Task")
	fmt.Printf("%sSegment:%s %s\n\n", colorCyan, colorReset, text)

	request := map[string]any{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("test-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]any{
			"message": map[string]any{
				"kind": "message",
				"role": "user",
				"parts": []map[string]any{
					{"kind": "text", "text": text},
				},
			},
			"configuration": map[string]any{
				"blocking":            true,
				"acceptedOutputModes": []string{"text", "data"},
			},
		},
	}

	status, body, err := tc.do(http.MethodPost, "/a2a/persona", request)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var response struct {
		Error  json.RawMessage `json:"error"`
		Result struct {
			Status struct {
				State   string `json:"state"`
				Message struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"message"`
			} `json:"status"`
			Artifacts []json.RawMessage `json:"artifacts"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if len(response.Error) > 0 {
		printError("Request returned an error")
		printJSON(response.Error)
		return false
	}

	state := response.Result.Status.State
	if state != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", state))
		for _, part := range response.Result.Status.Message.Parts {
			fmt.Println(part.Text)
		}
		return false
	}

	printSuccess("A2A task completed successfully")
	fmt.Println(strings.Repeat("=", 80))
	for _, part := range response.Result.Status.Message.Parts {
		fmt.Println(part.Text)
	}
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("%sArtifacts:%s %d\n", colorPurple, colorReset, len(response.Result.Artifacts))
	return true
}

func (tc *TestClient) do(method, path string, payload any) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	url := tc.baseURL + path
	fmt.Printf("%s %s\n", method, url)

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func printAnalysis(result models.AnalysisResult) {
	fmt.Printf("\n%sPersona:%s %s (%s)\n", colorGreen, colorReset, result.Persona.Name, result.Persona.ID)
	for i, approach := range result.Approaches {
		impact := approach.ExpectedImpact
		fmt.Printf("  %d. %s [score %d]\n     conversion %g-%g%%, retention %g-%g%%\n     %s\n",
			i+1, approach.Title, approach.Priority,
			impact.ConversionLiftPctMin, impact.ConversionLiftPctMax,
			impact.RetentionLiftPctMin, impact.RetentionLiftPctMax,
			approach.Reason)
	}
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
