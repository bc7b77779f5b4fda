package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BerylCAtieno/segment-persona-agent/internal/analyzer"
	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
	"github.com/BerylCAtieno/segment-persona-agent/internal/validation"
	"github.com/spf13/cobra"
)

var (
	baseURL        string
	timeout        time.Duration
	segment        segmentFlags
	impactApproach string
	impactExtras   map[string]string
	localApproach  string
	localExtras    map[string]string
)

// segmentFlags mirrors models.SegmentInput as command-line flags.
type segmentFlags struct {
	industry string
	domain   string
	age      string
	gender   string
	visit    string
	payment  string
	goal     string
	channel  string
	note     string
}

func (s segmentFlags) input() models.SegmentInput {
	return models.SegmentInput{
		IndustryType:      models.IndustryType(strings.ToUpper(s.industry)),
		Domain:            s.domain,
		AgeGroup:          models.AgeGroup(s.age),
		Gender:            models.Gender(s.gender),
		VisitFrequency:    models.VisitFrequency(s.visit),
		PaymentTier:       models.PaymentTier(s.payment),
		Goal:              s.goal,
		ChannelPreference: models.ChannelPreference(s.channel),
		Note:              s.note,
	}
}

func segmentText(input models.SegmentInput) string {
	pairs := []string{
		"domain: " + input.Domain,
		"age: " + string(input.AgeGroup),
		"gender: " + string(input.Gender),
		"visit: " + string(input.VisitFrequency),
		"payment: " + string(input.PaymentTier),
		"goal: " + input.Goal,
		"channel: " + string(input.ChannelPreference),
	}
	if input.IndustryType != "" {
		pairs = append(pairs, "industry: "+string(input.IndustryType))
	}
	if input.Note != "" {
		pairs = append(pairs, "note: "+input.Note)
	}
	return strings.Join(pairs, ", ")
}

var errChecksFailed = errors.New("one or more checks failed")

var rootCmd = &cobra.Command{
	Use:   "persona-smoke",
	Short: "Smoke tests and local runs for the segment persona agent",
	Long: `Exercise a running segment persona agent, or analyze a segment in-process.

Remote checks:
  health      - GET /health
  agent-card  - GET /.well-known/agent.json
  analyze     - POST /api/analyze
  impact      - POST /api/impact
  a2a         - POST /a2a/persona (message/send)
  all         - every check above

Local:
  local       - analyze the segment without a server and print JSON`,
	SilenceUsage: true,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health endpoint",
	RunE:  remote(func(tc *TestClient) bool { return tc.testHealthCheck() }),
}

var agentCardCmd = &cobra.Command{
	Use:   "agent-card",
	Short: "Fetch and validate the agent card",
	RunE:  remote(func(tc *TestClient) bool { return tc.testAgentCard() }),
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the segment through the REST API",
	RunE:  remote(func(tc *TestClient) bool { return tc.testAnalyze(segment.input()) }),
}

var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Recalculate one approach's impact through the REST API",
	RunE:  remote(func(tc *TestClient) bool { return tc.testImpact(segment.input(), impactApproach, impactExtras) }),
}

var a2aCmd = &cobra.Command{
	Use:   "a2a",
	Short: "Send the segment as an A2A text message",
	RunE:  remote(func(tc *TestClient) bool { return tc.testA2A(segmentText(segment.input())) }),
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every remote check",
	RunE: func(cmd *cobra.Command, args []string) error {
		tc := newClient()
		if _, failed := tc.runAllTests(segment.input()); failed > 0 {
			return errChecksFailed
		}
		return nil
	},
}

var localCmd = &cobra.Command{
	Use:   "local",
	Short: "Analyze the segment in-process and print the result as JSON",
	RunE:  runLocal,
}

func remote(check func(tc *TestClient) bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if !check(newClient()) {
			return errChecksFailed
		}
		return nil
	}
}

func newClient() *TestClient {
	printHeader("Segment Persona Agent - Test Suite")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, baseURL, colorReset)
	return NewTestClient(baseURL, timeout)
}

func runLocal(cmd *cobra.Command, args []string) error {
	input := segment.input()
	if issues := validation.Segment(input); len(issues) > 0 {
		for _, issue := range issues {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", issue.Field, issue.Message)
		}
		return fmt.Errorf("invalid segment: %s", strings.Join(validation.Fields(issues), ", "))
	}

	var out any = analyzer.AnalyzeSegment(input)
	if localApproach != "" {
		out = analyzer.RecalculateApproachImpact(localApproach, input, localExtras)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the agent")
	flags.DurationVar(&timeout, "timeout", 30*time.Second, "HTTP client timeout")
	flags.StringVar(&segment.industry, "industry", "", "Industry type (B2B or B2C)")
	flags.StringVar(&segment.domain, "domain", "SaaS", "Business domain")
	flags.StringVar(&segment.age, "age", "30s", "Age group (10s, 20s, 30s, 40s, 50plus)")
	flags.StringVar(&segment.gender, "gender", "female", "Gender (male, female, other)")
	flags.StringVar(&segment.visit, "visit", "loyal", "Visit frequency (new, occasional, regular, loyal)")
	flags.StringVar(&segment.payment, "payment", "high", "Payment tier (low, mid, high)")
	flags.StringVar(&segment.goal, "goal", "retention", "Analysis goal")
	flags.StringVar(&segment.channel, "channel", "email", "Preferred channel (email, sms, push, inapp)")
	flags.StringVar(&segment.note, "note", "", "Free-text note")

	impactCmd.Flags().StringVar(&impactApproach, "approach", "reactivation-loop", "Approach id to recalculate")
	impactCmd.Flags().StringToStringVar(&impactExtras, "extra", nil, "Extra field values, e.g. --extra discountRate=20")
	localCmd.Flags().StringVar(&localApproach, "approach", "", "Print only this approach's impact")
	localCmd.Flags().StringToStringVar(&localExtras, "extra", nil, "Extra field values for --approach")

	rootCmd.AddCommand(healthCmd, agentCardCmd, analyzeCmd, impactCmd, a2aCmd, allCmd, localCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
