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

package rule_08

import (
	"fmt"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

func Rule() *engine.Rule {
	return &engine.Rule{
		Id:    "R08",
		Title: "Do not pass NULL where a pointer overload exists",
		Rationale: "NULL is an integer constant; against an overload set it " +
			"can silently select an integer parameter. nullptr cannot.",
		DefaultSeverity: report.SeverityError,
	}
}

type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) InterestedIn() []syntax.NodeKind {
	return []syntax.NodeKind{syntax.KindCallExpr, syntax.KindMemberCallExpr}
}

// The trigger is the resolved overload, not the macro spelling alone: the
// front end marks calls whose resolution bound a NULL argument to an
// integral parameter. Unmarked calls pass NULL to a genuine pointer and
// are left alone.
func (d *Detector) Visit(n *syntax.Node, ctx *engine.Context) ([]*report.Finding, error) {
	if !n.Has(syntax.FlagIntegerOverload) {
		return nil, nil
	}
	arg := nullArgument(n)
	if arg == nil {
		return nil, nil
	}
	callee := n.Name
	if callee == "" {
		callee = "<unknown>"
	}
	return []*report.Finding{{
		Span: arg.Span,
		Message: fmt.Sprintf(
			"NULL argument to '%s' selected an integer overload; pass nullptr",
			callee),
	}}, nil
}

func nullArgument(call *syntax.Node) *syntax.Node {
	for _, c := range call.Children {
		if c != nil && c.Has(syntax.FlagNullMacro) {
			return c
		}
	}
	return nil
}
