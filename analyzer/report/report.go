/*
NaiveSystems Analyze - A tool for static code analysis
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package report

import (
	"strings"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"naive.systems/idiomcheck/analyzer/syntax"
)

type Severity int32

const (
	SeverityUnknown Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// ParseSeverity maps a config spelling to a Severity. Unknown spellings map
// to SeverityUnknown so a typoed config never becomes a crash.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(s) {
	case "info":
		return SeverityInfo
	case "warning":
		return SeverityWarning
	case "error":
		return SeverityError
	}
	return SeverityUnknown
}

// Finding is one reported rule violation. It is immutable once emitted;
// RuleID and Severity are stamped by the engine, Id by AddIds before export.
type Finding struct {
	Id       string
	RuleId   string
	Span     syntax.Span
	Message  string
	Severity Severity
}

type findingBlood struct {
	ruleId  string
	span    syntax.Span
	message string
}

// FindingsSet accumulates findings, dropping exact duplicates by
// (rule id, span, message). It preserves adding order.
type FindingsSet struct {
	Findings []*Finding
	stored   map[findingBlood]struct{}
}

func NewFindingsSet() *FindingsSet {
	return &FindingsSet{stored: make(map[findingBlood]struct{})}
}

// Add inserts f unless an identical finding is already stored. It reports
// whether f was actually added.
func (fs *FindingsSet) Add(f *Finding) bool {
	blood := findingBlood{
		ruleId:  f.RuleId,
		span:    f.Span,
		message: f.Message,
	}
	if _, reported := fs.stored[blood]; reported {
		return false
	}
	fs.stored[blood] = struct{}{}
	fs.Findings = append(fs.Findings, f)
	return true
}

func (fs *FindingsSet) AddAll(findings []*Finding) {
	for _, f := range findings {
		fs.Add(f)
	}
}

// Report is a sorted, duplicate-free sequence of findings for one run.
type Report struct {
	Findings []*Finding
}

// Counts are the aggregate numbers a reporter shows next to the listing.
type Counts struct {
	Total      int
	ByRule     map[string]int
	BySeverity map[Severity]int
}

func (r *Report) Counts() Counts {
	c := Counts{
		ByRule:     make(map[string]int),
		BySeverity: make(map[Severity]int),
	}
	for _, f := range r.Findings {
		c.Total++
		c.ByRule[f.RuleId]++
		c.BySeverity[f.Severity]++
	}
	return c
}

func less(a, b *Finding) bool {
	if a.Span.File != b.Span.File {
		return a.Span.File < b.Span.File
	}
	if a.Span.StartLine != b.Span.StartLine {
		return a.Span.StartLine < b.Span.StartLine
	}
	if a.Span.StartCol != b.Span.StartCol {
		return a.Span.StartCol < b.Span.StartCol
	}
	return a.RuleId < b.RuleId
}

// Sort orders findings by (file, line, column, rule id).
func Sort(findings []*Finding) {
	slices.SortStableFunc(findings, less)
}

// Merge combines per-file reports into one aggregate with a single final
// sort, so parallel workers never need synchronized inserts.
func Merge(reports ...*Report) *Report {
	set := NewFindingsSet()
	for _, r := range reports {
		if r == nil {
			continue
		}
		set.AddAll(r.Findings)
	}
	merged := &Report{Findings: set.Findings}
	Sort(merged.Findings)
	return merged
}

// AddIds assigns a random id to every finding that has none yet.
func AddIds(r *Report) {
	for _, f := range r.Findings {
		if f.Id != "" {
			continue
		}
		id, err := uuid.NewRandom()
		if err != nil {
			glog.Warningf("uuid.NewRandom: %v", err)
			continue
		}
		f.Id = id.String()
	}
}
