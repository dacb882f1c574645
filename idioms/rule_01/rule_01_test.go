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
	"testing"

	"naive.systems/idiomcheck/analyzer/syntax"
	"naive.systems/idiomcheck/cruleslib/testlib"
)

func TestEveryDirectiveIsReported(t *testing.T) {
	tree := testlib.Unit(
		testlib.Named(syntax.KindNamespaceUsingDirective, 2, "std"),
		testlib.Named(syntax.KindNamespaceUsingDirective, 3, "boost"),
		testlib.Node(syntax.KindFunctionDecl, 5,
			testlib.Node(syntax.KindCompoundStmt, 5)),
	)
	rep := testlib.RunRule(t, Rule(), NewDetector(), tree)
	testlib.ExpectLines(t, rep, 2, 3)
	for _, f := range rep.Findings {
		if f.RuleId != "R01" {
			t.Errorf("finding stamped with %s, want R01", f.RuleId)
		}
	}
}

func TestSingleNameImportIsNotADirective(t *testing.T) {
	tree := testlib.Unit(
		testlib.Node(syntax.KindOtherDecl, 2),
	)
	rep := testlib.RunRule(t, Rule(), NewDetector(), tree)
	testlib.ExpectLines(t, rep)
}
