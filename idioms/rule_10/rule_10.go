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

package rule_10

import (
	"fmt"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

func Rule() *engine.Rule {
	return &engine.Rule{
		Id:    "R10",
		Title: "Prefer brace initialization for variables",
		Rationale: "Brace initialization rejects narrowing conversions and " +
			"reads the same for every kind of type.",
		DefaultSeverity: report.SeverityInfo,
	}
}

type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) InterestedIn() []syntax.NodeKind {
	return []syntax.NodeKind{syntax.KindVariableDecl}
}

func (d *Detector) Visit(n *syntax.Node, ctx *engine.Context) ([]*report.Finding, error) {
	// declarations without any initializer belong to R17
	if !n.Has(syntax.FlagAssignInit) || n.Has(syntax.FlagUnresolved) {
		return nil, nil
	}
	return []*report.Finding{{
		Span: n.Span,
		Message: fmt.Sprintf(
			"'%s' is initialized with '='; use brace initialization",
			n.Name),
	}}, nil
}
