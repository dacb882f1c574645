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

package rule_01

import (
	"fmt"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

func Rule() *engine.Rule {
	return &engine.Rule{
		Id:    "R01",
		Title: "Avoid namespace-wide using directives",
		Rationale: "A using directive imports every name of a namespace, " +
			"including names added later, and makes collisions invisible at " +
			"the directive itself.",
		DefaultSeverity: report.SeverityWarning,
	}
}

type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) InterestedIn() []syntax.NodeKind {
	return []syntax.NodeKind{syntax.KindNamespaceUsingDirective}
}

// Every directive triggers on its own. Whether two directives actually make
// a name ambiguous is the front end's business, not ours.
func (d *Detector) Visit(n *syntax.Node, ctx *engine.Context) ([]*report.Finding, error) {
	name := n.Name
	if name == "" {
		name = "<unnamed>"
	}
	return []*report.Finding{{
		Span: n.Span,
		Message: fmt.Sprintf(
			"using directive imports every name of namespace '%s'; qualify uses or import single names",
			name),
	}}, nil
}
