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

package rule_11

import (
	"fmt"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

func Rule() *engine.Rule {
	return &engine.Rule{
		Id:    "R11",
		Title: "Use nullptr instead of 0 or NULL",
		Rationale: "0 and NULL are integers that happen to convert to " +
			"pointers; nullptr has pointer type and never picks an integer " +
			"overload.",
		DefaultSeverity: report.SeverityWarning,
	}
}

type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) InterestedIn() []syntax.NodeKind {
	return []syntax.NodeKind{syntax.KindVariableDecl, syntax.KindAssignExpr}
}

func (d *Detector) Visit(n *syntax.Node, ctx *engine.Context) ([]*report.Finding, error) {
	var target, value *syntax.Node
	switch n.Kind {
	case syntax.KindVariableDecl:
		target, value = n, n.Child(0)
	case syntax.KindAssignExpr:
		target, value = n.Child(0), n.Child(1)
	}
	if target == nil || value == nil {
		return nil, nil
	}
	if !target.Resolved() || !target.Type.IsPointer {
		return nil, nil
	}
	spelled, ok := nullSpelling(value)
	if !ok {
		return nil, nil
	}
	return []*report.Finding{{
		Span:    value.Span,
		Message: fmt.Sprintf("pointer set from %s; use nullptr", spelled),
	}}, nil
}

func nullSpelling(value *syntax.Node) (string, bool) {
	if value.Has(syntax.FlagNullMacro) {
		return "NULL", true
	}
	if value.Kind == syntax.KindIntLiteral && value.Text == "0" {
		return "literal 0", true
	}
	return "", false
}
