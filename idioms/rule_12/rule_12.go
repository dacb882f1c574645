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

package rule_12

import (
	"fmt"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

func Rule() *engine.Rule {
	return &engine.Rule{
		Id:    "R12",
		Title: "Declare single-argument constructors explicit",
		Rationale: "A non-explicit single-argument constructor is an " +
			"implicit conversion the class author probably never meant to " +
			"hand out.",
		DefaultSeverity: report.SeverityWarning,
	}
}

type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) InterestedIn() []syntax.NodeKind {
	return []syntax.NodeKind{syntax.KindConstructorDecl}
}

func (d *Detector) Visit(n *syntax.Node, ctx *engine.Context) ([]*report.Finding, error) {
	if n.Has(syntax.FlagUnresolved) {
		return nil, nil
	}
	if n.Has(syntax.FlagExplicit) || n.Has(syntax.FlagCopyOrMove) {
		return nil, nil
	}
	if n.CountChildren(syntax.KindParameterDecl) != 1 {
		return nil, nil
	}
	return []*report.Finding{{
		Span: n.Span,
		Message: fmt.Sprintf(
			"single-argument constructor of '%s' allows implicit conversion; declare it explicit",
			n.Name),
	}}, nil
}
