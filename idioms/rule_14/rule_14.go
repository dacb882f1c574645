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

package rule_14

import (
	"fmt"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

func Rule() *engine.Rule {
	return &engine.Rule{
		Id:    "R14",
		Title: "Pass large read-only parameters by const reference",
		Rationale: "Copying a class type or a wide struct into every call " +
			"costs real work; a const reference costs a pointer.",
		DefaultSeverity: report.SeverityWarning,
	}
}

type Detector struct {
	byValueParamBytes int
}

func NewDetector(byValueParamBytes int) *Detector {
	return &Detector{byValueParamBytes: byValueParamBytes}
}

func (d *Detector) InterestedIn() []syntax.NodeKind {
	return []syntax.NodeKind{syntax.KindParameterDecl}
}

func (d *Detector) Visit(n *syntax.Node, ctx *engine.Context) ([]*report.Finding, error) {
	if !n.Has(syntax.FlagByValue) || n.Has(syntax.FlagAdjustedParam) {
		return nil, nil
	}
	if !n.Resolved() {
		return nil, nil
	}
	if !n.Type.IsClass && int(n.Type.SizeBytes) <= d.byValueParamBytes {
		return nil, nil
	}
	// a parameter the function body writes to is a deliberate local copy
	if n.Has(syntax.FlagReassigned) {
		return nil, nil
	}
	return []*report.Finding{{
		Span: n.Span,
		Message: fmt.Sprintf(
			"parameter '%s' of type '%s' is copied on every call; pass it by const reference",
			n.Name, n.Type.Spelling),
	}}, nil
}
