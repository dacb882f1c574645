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

package rule_06

import (
	"fmt"
	"regexp"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

func Rule() *engine.Rule {
	return &engine.Rule{
		Id:    "R06",
		Title: "Use constexpr constants instead of object-like macros",
		Rationale: "A macro constant has no type and no scope; a constexpr " +
			"variable has both and shows up in diagnostics and debuggers.",
		DefaultSeverity: report.SeverityWarning,
	}
}

// a single numeric, character or string literal as the whole replacement
var (
	numericLiteral = regexp.MustCompile(`^(0[xX][0-9a-fA-F]+|[0-9]+(\.[0-9]+)?)([uUlLfF]*)$`)
	stringLiteral  = regexp.MustCompile(`^"([^"\\]|\\.)*"$`)
	charLiteral    = regexp.MustCompile(`^'([^'\\]|\\.)'$`)
)

type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) InterestedIn() []syntax.NodeKind {
	return []syntax.NodeKind{syntax.KindMacroObjectLikeDecl}
}

func (d *Detector) Visit(n *syntax.Node, ctx *engine.Context) ([]*report.Finding, error) {
	replacement := n.Text
	if replacement == "" || !isSingleLiteral(replacement) {
		return nil, nil
	}
	return []*report.Finding{{
		Span: n.Span,
		Message: fmt.Sprintf(
			"macro '%s' names the compile-time value %s; define a constexpr constant instead",
			n.Name, replacement),
	}}, nil
}

func isSingleLiteral(s string) bool {
	return numericLiteral.MatchString(s) ||
		stringLiteral.MatchString(s) ||
		charLiteral.MatchString(s)
}
