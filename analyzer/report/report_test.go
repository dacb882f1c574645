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
	"testing"

	"naive.systems/idiomcheck/analyzer/syntax"
)

func span(file string, line, col int32) syntax.Span {
	return syntax.Span{File: file, StartLine: line, StartCol: col, EndLine: line, EndCol: col}
}

func TestFindingsSet(t *testing.T) {
	set := NewFindingsSet()
	set.Add(&Finding{RuleId: "R01", Span: span("file_a", 2, 1), Message: "message_a"})
	set.Add(&Finding{RuleId: "R01", Span: span("file_a", 2, 1), Message: "message_a"})
	set.Add(&Finding{RuleId: "R01", Span: span("file_a", 2, 1), Message: "message_b"})
	set.Add(&Finding{RuleId: "R02", Span: span("file_a", 2, 1), Message: "message_a"})
	if len(set.Findings) != 3 {
		t.Fatalf("FindingsSet is not a set, expect size: 3, actual: %d", len(set.Findings))
	}
}

func TestFindingsSetAddReportsDuplicate(t *testing.T) {
	set := NewFindingsSet()
	f := &Finding{RuleId: "R01", Span: span("file_a", 2, 1), Message: "message_a"}
	if !set.Add(f) {
		t.Fatal("first Add should report inserted")
	}
	if set.Add(f) {
		t.Fatal("second Add should report duplicate")
	}
}

func TestMergeSortsByLocationThenRule(t *testing.T) {
	a := &Report{Findings: []*Finding{
		{RuleId: "R05", Span: span("b.cc", 1, 1)},
		{RuleId: "R02", Span: span("a.cc", 9, 1)},
	}}
	b := &Report{Findings: []*Finding{
		{RuleId: "R01", Span: span("a.cc", 9, 1)},
		{RuleId: "R03", Span: span("a.cc", 3, 7)},
		{RuleId: "R03", Span: span("a.cc", 3, 2)},
	}}
	merged := Merge(a, b)
	want := []struct {
		file   string
		line   int32
		col    int32
		ruleId string
	}{
		{"a.cc", 3, 2, "R03"},
		{"a.cc", 3, 7, "R03"},
		{"a.cc", 9, 1, "R01"},
		{"a.cc", 9, 1, "R02"},
		{"b.cc", 1, 1, "R05"},
	}
	if len(merged.Findings) != len(want) {
		t.Fatalf("expect %d findings, actual: %d", len(want), len(merged.Findings))
	}
	for i, w := range want {
		f := merged.Findings[i]
		if f.Span.File != w.file || f.Span.StartLine != w.line || f.Span.StartCol != w.col || f.RuleId != w.ruleId {
			t.Errorf("finding %d: got %s:%d:%d %s, want %s:%d:%d %s",
				i, f.Span.File, f.Span.StartLine, f.Span.StartCol, f.RuleId, w.file, w.line, w.col, w.ruleId)
		}
	}
}

func TestMergeDropsCrossReportDuplicates(t *testing.T) {
	f := Finding{RuleId: "R01", Span: span("a.cc", 1, 1), Message: "m"}
	dup := f
	merged := Merge(&Report{Findings: []*Finding{&f}}, &Report{Findings: []*Finding{&dup}})
	if len(merged.Findings) != 1 {
		t.Fatalf("expect 1 finding after merge, actual: %d", len(merged.Findings))
	}
}

func TestCounts(t *testing.T) {
	r := &Report{Findings: []*Finding{
		{RuleId: "R01", Severity: SeverityWarning},
		{RuleId: "R01", Severity: SeverityWarning},
		{RuleId: "R02", Severity: SeverityInfo},
	}}
	counts := r.Counts()
	if counts.Total != 3 {
		t.Errorf("expect total 3, actual: %d", counts.Total)
	}
	if counts.ByRule["R01"] != 2 || counts.ByRule["R02"] != 1 {
		t.Errorf("wrong per-rule counts: %v", counts.ByRule)
	}
	if counts.BySeverity[SeverityWarning] != 2 || counts.BySeverity[SeverityInfo] != 1 {
		t.Errorf("wrong per-severity counts: %v", counts.BySeverity)
	}
}

func TestAddIds(t *testing.T) {
	r := &Report{Findings: []*Finding{
		{RuleId: "R01", Span: span("a.cc", 1, 1)},
		{RuleId: "R02", Span: span("a.cc", 2, 1)},
	}}
	AddIds(r)
	if r.Findings[0].Id == "" || r.Findings[1].Id == "" {
		t.Fatal("AddIds left a finding without id")
	}
	if r.Findings[0].Id == r.Findings[1].Id {
		t.Fatal("AddIds assigned the same id twice")
	}
}

func TestParseSeverity(t *testing.T) {
	for name, want := range map[string]Severity{
		"error":   SeverityError,
		"Warning": SeverityWarning,
		"INFO":    SeverityInfo,
		"bogus":   SeverityUnknown,
	} {
		if got := ParseSeverity(name); got != want {
			t.Errorf("ParseSeverity(%q) = %v, want %v", name, got, want)
		}
	}
}
