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

package testlib

import (
	"testing"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

// Node builds a syntax node for tests. The span is a single source line
// in test.cc so findings stay distinguishable by line number.
func Node(kind syntax.NodeKind, line int32, children ...*syntax.Node) *syntax.Node {
	return &syntax.Node{
		Kind:     kind,
		Span:     Span(line),
		Children: children,
	}
}

func Span(line int32) syntax.Span {
	return syntax.Span{File: "test.cc", StartLine: line, StartCol: 1, EndLine: line, EndCol: 1}
}

func Named(kind syntax.NodeKind, line int32, name string, children ...*syntax.Node) *syntax.Node {
	n := Node(kind, line, children...)
	n.Name = name
	return n
}

func IntLit(line int32, text string) *syntax.Node {
	n := Node(syntax.KindIntLiteral, line)
	n.Text = text
	return n
}

func Ref(line int32, name string) *syntax.Node {
	return Named(syntax.KindDeclRefExpr, line, name)
}

func Unit(children ...*syntax.Node) *syntax.Tree {
	return syntax.NewTree(Node(syntax.KindTranslationUnit, 1, children...))
}

// RunRule registers a single rule in a fresh catalog, runs the engine over
// tree, and returns the sorted report. Fails the test on any engine error.
func RunRule(t *testing.T, rule *engine.Rule, detector engine.Detector, tree *syntax.Tree) *report.Report {
	t.Helper()
	catalog := engine.NewCatalog()
	if err := catalog.Register(rule, detector); err != nil {
		t.Fatalf("register %s: %v", rule.Id, err)
	}
	rep, err := engine.New(catalog).Analyze(tree, nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return rep
}

// ExpectLines asserts the report holds exactly one finding per expected
// start line, in order.
func ExpectLines(t *testing.T, rep *report.Report, lines ...int32) {
	t.Helper()
	if len(rep.Findings) != len(lines) {
		t.Fatalf("got %d findings, want %d: %v", len(rep.Findings), len(lines), rep.Findings)
	}
	for i, f := range rep.Findings {
		if f.Span.StartLine != lines[i] {
			t.Errorf("finding %d at line %d, want line %d", i, f.Span.StartLine, lines[i])
		}
	}
}
