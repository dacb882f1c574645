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

package rule_03

import (
	"fmt"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

func Rule() *engine.Rule {
	return &engine.Rule{
		Id:    "R03",
		Title: "Convert long else-if equality chains to switch",
		Rationale: "A chain that compares one discriminant against distinct " +
			"constants is a switch written the long way; switch states the " +
			"intent and the compiler checks exhaustiveness.",
		DefaultSeverity: report.SeverityInfo,
	}
}

type Detector struct {
	minBranches int
}

func NewDetector(minBranches int) *Detector {
	return &Detector{minBranches: minBranches}
}

func (d *Detector) InterestedIn() []syntax.NodeKind {
	return []syntax.NodeKind{syntax.KindIfStmt}
}

func (d *Detector) Visit(n *syntax.Node, ctx *engine.Context) ([]*report.Finding, error) {
	// only judge the head of a chain; an else-if arm is covered by its head
	parent, err := ctx.Parent(n)
	if err != nil {
		return nil, nil
	}
	if parent != nil && parent.Kind == syntax.KindIfStmt && parent.Child(2) == n {
		return nil, nil
	}

	discriminant, branches, ok := matchChain(n)
	if !ok || branches < d.minBranches {
		return nil, nil
	}
	return []*report.Finding{{
		Span: n.Span,
		Message: fmt.Sprintf(
			"%d branches compare '%s' against constants; rewrite the chain as a switch",
			branches, discriminant),
	}}, nil
}

// matchChain walks an if/else-if chain. It succeeds only when every
// condition is an equality comparison of one discriminant against distinct
// literal values; range comparisons and mixed discriminants disqualify the
// whole chain because switch cannot express them.
func matchChain(head *syntax.Node) (discriminant string, branches int, ok bool) {
	seen := make(map[string]bool)
	cur := head
	for cur != nil && cur.Kind == syntax.KindIfStmt {
		name, literal, matched := matchEquality(cur.Child(0))
		if !matched {
			return "", 0, false
		}
		if branches == 0 {
			discriminant = name
		} else if name != discriminant {
			return "", 0, false
		}
		if seen[literal] {
			return "", 0, false
		}
		seen[literal] = true
		branches++
		cur = cur.Child(2)
	}
	// a trailing plain else block is fine, anything else in the chain is not
	if cur != nil && cur.Kind != syntax.KindCompoundStmt {
		return "", 0, false
	}
	return discriminant, branches, true
}

func matchEquality(cond *syntax.Node) (name, literal string, ok bool) {
	if cond == nil || cond.Kind != syntax.KindBinaryExpr || cond.Operator != "==" {
		return "", "", false
	}
	lhs, rhs := cond.Child(0), cond.Child(1)
	if lhs == nil || rhs == nil {
		return "", "", false
	}
	if isLiteral(rhs) && lhs.Kind == syntax.KindDeclRefExpr {
		return lhs.Name, rhs.Text, true
	}
	if isLiteral(lhs) && rhs.Kind == syntax.KindDeclRefExpr {
		return rhs.Name, lhs.Text, true
	}
	return "", "", false
}

func isLiteral(n *syntax.Node) bool {
	return n.Kind == syntax.KindIntLiteral || n.Kind == syntax.KindStringLiteral
}
