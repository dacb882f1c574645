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

package rule_16

import (
	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

func Rule() *engine.Rule {
	return &engine.Rule{
		Id:    "R16",
		Title: "Use empty() instead of comparing size() against zero",
		Rationale: "empty() states the question being asked, and for some " +
			"containers size() is not O(1).",
		DefaultSeverity: report.SeverityInfo,
	}
}

type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) InterestedIn() []syntax.NodeKind {
	return []syntax.NodeKind{syntax.KindBinaryExpr}
}

func (d *Detector) Visit(n *syntax.Node, ctx *engine.Context) ([]*report.Finding, error) {
	lhs, rhs := n.Child(0), n.Child(1)
	if lhs == nil || rhs == nil {
		return nil, nil
	}
	matched := false
	switch n.Operator {
	case "==", "!=":
		matched = (isSizeCall(lhs) && isZero(rhs)) || (isZero(lhs) && isSizeCall(rhs))
	case ">":
		matched = isSizeCall(lhs) && isZero(rhs)
	case "<":
		matched = isZero(lhs) && isSizeCall(rhs)
	}
	if !matched {
		return nil, nil
	}
	return []*report.Finding{{
		Span:    n.Span,
		Message: "comparison of size() against zero; use empty()",
	}}, nil
}

func isSizeCall(n *syntax.Node) bool {
	if n.Kind != syntax.KindMemberCallExpr || n.Name != "size" {
		return false
	}
	receiver := n.Child(0)
	return receiver != nil && receiver.Resolved() && receiver.Type.IsClass
}

func isZero(n *syntax.Node) bool {
	return n.Kind == syntax.KindIntLiteral && n.Text == "0"
}
