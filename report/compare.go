package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/JA3G3R/lintzard/types"
)

// RuleDelta is one rule's finding count before and after a change.
type RuleDelta struct {
	Rule   string `json:"rule"`
	Before int    `json:"before"`
	After  int    `json:"after"`
}

func (d RuleDelta) Delta() int { return d.After - d.Before }

// Comparison contrasts two reports of the same code base.
type Comparison struct {
	Before int         `json:"before"`
	After  int         `json:"after"`
	Rules  []RuleDelta `json:"rules"`
}

// Compare counts findings per rule in both reports. Rules are listed by id.
func Compare(before, after *types.Report) Comparison {
	counts := map[string]*RuleDelta{}
	get := func(rule string) *RuleDelta {
		d, ok := counts[rule]
		if !ok {
			d = &RuleDelta{Rule: rule}
			counts[rule] = d
		}
		return d
	}
	var c Comparison
	for _, f := range before.Findings() {
		get(f.Rule).Before++
		c.Before++
	}
	for _, f := range after.Findings() {
		get(f.Rule).After++
		c.After++
	}
	for _, d := range counts {
		c.Rules = append(c.Rules, *d)
	}
	sort.Slice(c.Rules, func(i, j int) bool { return c.Rules[i].Rule < c.Rules[j].Rule })
	return c
}

// Load reads a report previously written with the json format.
func Load(r io.Reader) (*types.Report, error) {
	var rep types.Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &rep, nil
}
