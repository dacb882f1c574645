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

package rule_02

import (
	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

func Rule() *engine.Rule {
	return &engine.Rule{
		Id:    "R02",
		Title: "Prefer \"\\n\" to std::endl",
		Rationale: "std::endl writes a newline and flushes the stream; the " +
			"flush is rarely wanted and can dominate I/O cost in loops.",
		DefaultSeverity: report.SeverityInfo,
	}
}

type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) InterestedIn() []syntax.NodeKind {
	return []syntax.NodeKind{syntax.KindStreamInsertionExpr}
}

func (d *Detector) Visit(n *syntax.Node, ctx *engine.Context) ([]*report.Finding, error) {
	if !insertsFlushingNewline(n) {
		return nil, nil
	}
	return []*report.Finding{{
		Span:    n.Span,
		Message: "std::endl flushes the stream; write \"\\n\" unless the flush is intended",
	}}, nil
}

func insertsFlushingNewline(n *syntax.Node) bool {
	if n.Has(syntax.FlagFlushManipulator) {
		return true
	}
	// fall back to the spelled name of the inserted operand
	rhs := n.Child(1)
	if rhs == nil || rhs.Kind != syntax.KindDeclRefExpr {
		return false
	}
	return rhs.Name == "endl" || rhs.Name == "std::endl"
}
