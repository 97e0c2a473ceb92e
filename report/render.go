package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/JA3G3R/lintzard/types"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

func Formats() []string {
	return []string{FormatTable, FormatJSON, FormatSARIF}
}

// Options tune the table renderer.
type Options struct {
	Color bool
	// Version is reported as the SARIF driver version.
	Version string
}

var severityStyles = map[types.Severity]lipgloss.Style{
	types.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")).Bold(true),
	types.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")),
	types.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#61AFEF")),
}

func severityCell(s types.Severity, color bool) string {
	cell := fmt.Sprintf("%-7s", s)
	if !color {
		return cell
	}
	if st, ok := severityStyles[s]; ok {
		return st.Render(cell)
	}
	return cell
}

// Render writes rep to w in format.
func Render(w io.Writer, rep *types.Report, format string, opts Options) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatSARIF:
		b, err := ToSARIF(rep, opts.Version)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case FormatTable, "":
		return renderTable(w, rep, opts)
	}
	return fmt.Errorf("unknown format %q", format)
}

func renderTable(w io.Writer, rep *types.Report, opts Options) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEVERITY\tRULE\tFILE:LINE:COL\tDETAILS")
	for _, f := range rep.Findings() {
		fmt.Fprintf(tw, "%s\t%s\t%s:%d:%d\t%s\n",
			severityCell(f.Severity, opts.Color), f.Rule, f.File, f.Line, f.Column, f.Message)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := rep.Summary
	fmt.Fprintf(w, "\n%d finding(s) in %d file(s)", s.Total, s.FilesAnalyzed)
	if s.FilesFailed > 0 {
		fmt.Fprintf(w, ", %d failed to parse", s.FilesFailed)
	}
	fmt.Fprintf(w, ": %d error, %d warning, %d info\n",
		s.BySeverity[types.SeverityError], s.BySeverity[types.SeverityWarning], s.BySeverity[types.SeverityInfo])

	if len(s.ByCategory) > 0 {
		cats := make([]string, 0, len(s.ByCategory))
		for c := range s.ByCategory {
			cats = append(cats, string(c))
		}
		sort.Strings(cats)
		for _, c := range cats {
			fmt.Fprintf(w, "  %s: %d\n", c, s.ByCategory[types.Category(c)])
		}
	}
	for _, e := range rep.Errors {
		if e.Rule != "" {
			fmt.Fprintf(w, "%s: %s (rule %s): %s\n", e.Kind, e.File, e.Rule, e.Message)
			continue
		}
		fmt.Fprintf(w, "%s: %s: %s\n", e.Kind, e.File, e.Message)
	}
	return nil
}

// RenderComparison writes a before/after table, or JSON when format is json.
func RenderComparison(w io.Writer, c Comparison, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	case FormatTable, "":
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tBEFORE\tAFTER\tDELTA")
	for _, d := range c.Rules {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%+d\n", d.Rule, d.Before, d.After, d.Delta())
	}
	fmt.Fprintf(tw, "TOTAL\t%d\t%d\t%+d\n", c.Before, c.After, c.After-c.Before)
	return tw.Flush()
}

// RenderRules lists rule descriptors.
func RenderRules(w io.Writer, descs []types.RuleDescriptor, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(descs)
	case FormatTable, "":
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tCATEGORY\tSEVERITY\tENABLED\tTITLE")
	for _, d := range descs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", d.ID, d.Category, d.Severity, d.Enabled, d.Title)
	}
	return tw.Flush()
}
