package report

import (
	"encoding/json"

	"github.com/JA3G3R/lintzard/types"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool       `json:"tool"`
	Results    []sarifResult   `json:"results"`
	Properties sarifProperties `json:"properties"`
}

type sarifProperties struct {
	RunID string `json:"runId"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	Physical sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

func level(s types.Severity) string {
	switch s {
	case types.SeverityError:
		return "error"
	case types.SeverityWarning:
		return "warning"
	}
	return "note"
}

// ToSARIF encodes rep as a SARIF 2.1.0 log with one run.
func ToSARIF(rep *types.Report, version string) ([]byte, error) {
	results := []sarifResult{}
	var rules []sarifRule
	seen := map[string]bool{}
	for _, f := range rep.Findings() {
		if !seen[f.Rule] {
			seen[f.Rule] = true
			rules = append(rules, sarifRule{ID: f.Rule, Properties: map[string]string{"category": string(f.Category)}})
		}
		results = append(results, sarifResult{
			RuleID:  f.Rule,
			Level:   level(f.Severity),
			Message: sarifMessage{Text: f.Message},
			Locations: []sarifLoc{{Physical: sarifPhys{
				ArtifactLocation: sarifArt{URI: f.File},
				Region: sarifRegion{
					StartLine:   f.Line,
					StartColumn: f.Column,
					EndLine:     f.EndLine,
					EndColumn:   f.EndColumn,
				},
			}}},
		})
	}
	if rules == nil {
		rules = []sarifRule{}
	}
	s := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool:       sarifTool{Driver: sarifDriver{Name: "lintzard", Version: version, Rules: rules}},
			Results:    results,
			Properties: sarifProperties{RunID: rep.RunID},
		}},
	}
	return json.MarshalIndent(s, "", "  ")
}
