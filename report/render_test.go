package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JA3G3R/lintzard/types"
)

func sample() *types.Report {
	agg := NewAggregator(types.SeverityInfo)
	agg.Add("app.js",
		finding("app.js", "no-eval", types.SeverityError, 4, 3),
		finding("app.js", "eqeqeq", types.SeverityWarning, 2, 9),
	)
	return agg.Report("run-42")
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(), FormatTable, Options{}))
	out := buf.String()

	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "SEVERITY"))
	assert.Contains(t, lines[1], "eqeqeq")
	assert.Contains(t, lines[1], "app.js:2:9")
	assert.Contains(t, lines[2], "no-eval")
	assert.Contains(t, out, "2 finding(s) in 1 file(s): 1 error, 1 warning, 0 info")
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderJSONRoundTrip(t *testing.T) {
	rep := sample()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, rep, FormatJSON, Options{}))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, rep.RunID, loaded.RunID)
	assert.Equal(t, rep.Findings(), loaded.Findings())
	assert.Equal(t, 2, loaded.Summary.Total)
}

func TestRenderSARIF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sample(), FormatSARIF, Options{Version: "1.2.3"}))

	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name    string `json:"name"`
					Version string `json:"version"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Level     string `json:"level"`
				Locations []struct {
					Physical struct {
						Region struct {
							StartLine   int `json:"startLine"`
							StartColumn int `json:"startColumn"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	assert.Equal(t, "lintzard", doc.Runs[0].Tool.Driver.Name)
	assert.Equal(t, "1.2.3", doc.Runs[0].Tool.Driver.Version)
	require.Len(t, doc.Runs[0].Results, 2)
	res := doc.Runs[0].Results[1]
	assert.Equal(t, "no-eval", res.RuleID)
	assert.Equal(t, "error", res.Level)
	assert.Equal(t, 4, res.Locations[0].Physical.Region.StartLine)
	assert.Equal(t, 3, res.Locations[0].Physical.Region.StartColumn)
}

func TestRenderUnknownFormat(t *testing.T) {
	assert.Error(t, Render(&bytes.Buffer{}, sample(), "xml", Options{}))
	assert.Error(t, RenderComparison(&bytes.Buffer{}, Comparison{}, "xml"))
}

func TestRenderComparisonAndRules(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderComparison(&buf, Comparison{
		Before: 3, After: 1,
		Rules: []RuleDelta{{Rule: "eqeqeq", Before: 3, After: 1}},
	}, FormatTable))
	assert.Contains(t, buf.String(), "-2")
	assert.Contains(t, buf.String(), "TOTAL")

	buf.Reset()
	require.NoError(t, RenderRules(&buf, []types.RuleDescriptor{
		{ID: "radix", Title: "parseInt without a radix", Category: types.CategoryBestPractices, Severity: types.SeverityWarning, Enabled: true},
	}, FormatTable))
	assert.Contains(t, buf.String(), "radix")
	assert.Contains(t, buf.String(), "true")
}
