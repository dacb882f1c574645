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

package rule_15

import (
	"fmt"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

func Rule() *engine.Rule {
	return &engine.Rule{
		Id:    "R15",
		Title: "Avoid C-style casts",
		Rationale: "A C-style cast silently tries every conversion up to " +
			"reinterpret_cast; the named casts say which one is meant and " +
			"refuse the rest.",
		DefaultSeverity: report.SeverityWarning,
	}
}

type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) InterestedIn() []syntax.NodeKind {
	return []syntax.NodeKind{syntax.KindCStyleCastExpr}
}

func (d *Detector) Visit(n *syntax.Node, ctx *engine.Context) ([]*report.Finding, error) {
	target := n.Text
	if n.Type != nil && n.Type.Spelling != "" {
		target = n.Type.Spelling
	}
	msg := "C-style cast; use static_cast or the appropriate named cast"
	if target != "" {
		msg = fmt.Sprintf("C-style cast to '%s'; use static_cast or the appropriate named cast", target)
	}
	return []*report.Finding{{
		Span:    n.Span,
		Message: msg,
	}}, nil
}
