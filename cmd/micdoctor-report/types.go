//nolint:tagliatelle
package main

import "encoding/json"

// Record is a single line in the JSONL report file.
type Record struct {
	File       string          `json:"file,omitempty"`
	Analysis   map[string]any  `json:"analysis,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
	Probe      json.RawMessage `json:"probe,omitempty"`
	ProbeError string          `json:"probe_error,omitempty"`
	Error      string          `json:"error,omitempty"`
	Timing     *RecordTiming   `json:"timing,omitempty"`
}

// RecordTiming captures per-file processing durations in milliseconds.
type RecordTiming struct {
	ProbeMs   float64 `json:"probe_ms"`
	DecodeMs  float64 `json:"decode_ms"`
	AnalyzeMs float64 `json:"analyze_ms"`
	TotalMs   float64 `json:"total_ms"`
}

// digestRecord holds the typed fields needed by the digest command.
type digestRecord struct {
	File     string          `json:"file,omitempty"`
	Analysis *digestAnalysis `json:"analysis,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type digestAnalysis struct {
	SpecialState   string               `json:"special_state"`
	Verdict        digestVerdict        `json:"verdict"`
	Recommendation digestRecommendation `json:"recommendation"`
}

type digestVerdict struct {
	Grade        string                  `json:"grade"`
	UseCaseFit   string                  `json:"use_case_fit"`
	PrimaryIssue string                  `json:"primary_issue"`
	Dimensions   map[string]digestRating `json:"dimensions"`
}

type digestRating struct {
	Stars          int    `json:"stars"`
	DescriptionTag string `json:"description_tag"`
}

type digestRecommendation struct {
	FixTag  string `json:"fix_tag"`
	StepKey string `json:"step_key"`
}

// issueBreakdown tracks per-dimension counts for the digest.
type issueBreakdown struct {
	Dimension string
	Primary   int
	Fail      int // rated 1 star or less
	Warn      int // rated 2 or 3 stars
	StarSum   int
	Rated     int
}
