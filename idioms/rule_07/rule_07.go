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

package rule_07

import (
	"fmt"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

func Rule() *engine.Rule {
	return &engine.Rule{
		Id:    "R07",
		Title: "Bind range-for variables of non-trivial element type by reference",
		Rationale: "A by-value binding copies every element of the " +
			"container; for class types or large elements the copies are " +
			"silent overhead.",
		DefaultSeverity: report.SeverityWarning,
	}
}

type Detector struct {
	trivialSizeBytes int
}

func NewDetector(trivialSizeBytes int) *Detector {
	return &Detector{trivialSizeBytes: trivialSizeBytes}
}

func (d *Detector) InterestedIn() []syntax.NodeKind {
	return []syntax.NodeKind{syntax.KindIterationVariableBinding}
}

func (d *Detector) Visit(n *syntax.Node, ctx *engine.Context) ([]*report.Finding, error) {
	parent, err := ctx.Parent(n)
	if err != nil || parent == nil || parent.Kind != syntax.KindRangeForStmt {
		return nil, nil
	}
	if !n.Has(syntax.FlagByValue) || !n.Resolved() {
		return nil, nil
	}
	if !n.Type.IsClass && int(n.Type.SizeBytes) <= d.trivialSizeBytes {
		return nil, nil
	}
	// a body that assigns to the binding mutates its own copy on purpose
	if n.Has(syntax.FlagReassigned) {
		return nil, nil
	}
	return []*report.Finding{{
		Span: n.Span,
		Message: fmt.Sprintf(
			"range-for copies each '%s' into '%s'; bind by const reference",
			n.Type.Spelling, n.Name),
	}}, nil
}
