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

package rule_09

import (
	"fmt"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

func Rule() *engine.Rule {
	return &engine.Rule{
		Id:    "R09",
		Title: "Use fixed-width size types for container indices",
		Rationale: "Plain int and long change width across platforms and " +
			"invite sign/width mismatches against size(); size_t and the " +
			"stdint types do not.",
		DefaultSeverity: report.SeverityWarning,
	}
}

var plainIntegers = map[string]bool{
	"short":              true,
	"int":                true,
	"long":               true,
	"long long":          true,
	"unsigned short":     true,
	"unsigned int":       true,
	"unsigned long":      true,
	"unsigned long long": true,
}

type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) InterestedIn() []syntax.NodeKind {
	return []syntax.NodeKind{syntax.KindContainerIndexExpr}
}

func (d *Detector) Visit(n *syntax.Node, ctx *engine.Context) ([]*report.Finding, error) {
	index := n.Child(1)
	if index == nil || !index.Resolved() || !index.Type.IsScalar {
		return nil, nil
	}
	if !plainIntegers[index.Type.Spelling] {
		return nil, nil
	}
	return []*report.Finding{{
		Span: index.Span,
		Message: fmt.Sprintf(
			"index has platform-dependent type '%s'; use size_t or a fixed-width size type",
			index.Type.Spelling),
	}}, nil
}
