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

package rule_04

import (
	"fmt"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

func Rule() *engine.Rule {
	return &engine.Rule{
		Id:    "R04",
		Title: "Prefer pre-increment and pre-decrement on class types",
		Rationale: "The postfix forms of an overloaded operator must " +
			"materialize a copy of the old value; when the result is " +
			"discarded the copy is pure waste.",
		DefaultSeverity: report.SeverityWarning,
	}
}

type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) InterestedIn() []syntax.NodeKind {
	return []syntax.NodeKind{
		syntax.KindPostIncrementExpr,
		syntax.KindPostDecrementExpr,
	}
}

func (d *Detector) Visit(n *syntax.Node, ctx *engine.Context) ([]*report.Finding, error) {
	operand := n.Child(0)
	if operand == nil || !operand.Resolved() || !operand.Type.IsClass {
		return nil, nil
	}
	parent, err := ctx.Parent(n)
	if err != nil || parent == nil {
		return nil, nil
	}
	if !resultDiscarded(n, parent) {
		return nil, nil
	}
	form := "++"
	if n.Kind == syntax.KindPostDecrementExpr {
		form = "--"
	}
	return []*report.Finding{{
		Span: n.Span,
		Message: fmt.Sprintf(
			"postfix %s on '%s' copies the old value only to discard it; use the prefix form",
			form, operand.Type.Spelling),
	}}, nil
}

// resultDiscarded checks the immediate parent: a standalone statement or
// the advance slot of a loop header never observes the old value. Anywhere
// else (assignment, call argument, return, ...) the copy is consumed.
func resultDiscarded(n, parent *syntax.Node) bool {
	switch parent.Kind {
	case syntax.KindExprStmt:
		return true
	case syntax.KindForStmt:
		return parent.Child(2) == n
	case syntax.KindRangeForStmt:
		return true
	}
	return false
}
