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

package rule_05

import (
	"fmt"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

func Rule() *engine.Rule {
	return &engine.Rule{
		Id:    "R05",
		Title: "Use std::array instead of raw arrays",
		Rationale: "Raw arrays decay to pointers, forget their length and " +
			"have no value semantics; std::array keeps all three.",
		DefaultSeverity: report.SeverityWarning,
	}
}

type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) InterestedIn() []syntax.NodeKind {
	return []syntax.NodeKind{syntax.KindRawArrayDecl}
}

func (d *Detector) Visit(n *syntax.Node, ctx *engine.Context) ([]*report.Finding, error) {
	// parameters adjusted to pointers by the front end were never arrays
	// in the object sense and must not re-trigger
	if n.Has(syntax.FlagAdjustedParam) {
		return nil, nil
	}
	name := n.Name
	if name == "" {
		name = "<unnamed>"
	}
	return []*report.Finding{{
		Span: n.Span,
		Message: fmt.Sprintf(
			"'%s' is declared as a raw array; use std::array for a fixed-size sequence",
			name),
	}}, nil
}
