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

package rule_16

import (
	"testing"

	"naive.systems/idiomcheck/analyzer/syntax"
	"naive.systems/idiomcheck/cruleslib/testlib"
)

func sizeCall(line int32) *syntax.Node {
	receiver := testlib.Ref(line, "v")
	receiver.Type = &syntax.TypeInfo{Spelling: "std::vector<int>", IsClass: true}
	return testlib.Named(syntax.KindMemberCallExpr, line, "size", receiver)
}

func compare(line int32, op string, lhs, rhs *syntax.Node) *syntax.Tree {
	cmp := testlib.Node(syntax.KindBinaryExpr, line, lhs, rhs)
	cmp.Operator = op
	return testlib.Unit(testlib.Node(syntax.KindIfStmt, line, cmp,
		testlib.Node(syntax.KindCompoundStmt, line)))
}

func TestSizeComparedAgainstZero(t *testing.T) {
	for _, tt := range []struct {
		op       string
		reversed bool
	}{
		{"==", false},
		{"!=", false},
		{">", false},
		{"==", true},
		{"<", true},
	} {
		lhs, rhs := sizeCall(3), testlib.IntLit(3, "0")
		if tt.reversed {
			lhs, rhs = rhs, lhs
		}
		rep := testlib.RunRule(t, Rule(), NewDetector(), compare(3, tt.op, lhs, rhs))
		if len(rep.Findings) != 1 {
			t.Errorf("op %q reversed=%v: got %d findings, want 1", tt.op, tt.reversed, len(rep.Findings))
		}
	}
}

func TestSizeAgainstNonZeroIsFine(t *testing.T) {
	rep := testlib.RunRule(t, Rule(), NewDetector(),
		compare(3, "==", sizeCall(3), testlib.IntLit(3, "1")))
	testlib.ExpectLines(t, rep)
}

func TestGreaterZeroOnTheWrongSideIsFine(t *testing.T) {
	// 0 > v.size() is not an emptiness check
	rep := testlib.RunRule(t, Rule(), NewDetector(),
		compare(3, ">", testlib.IntLit(3, "0"), sizeCall(3)))
	testlib.ExpectLines(t, rep)
}

func TestUnresolvedReceiverStaysSilent(t *testing.T) {
	call := sizeCall(3)
	call.Child(0).Flags |= syntax.FlagUnresolved
	rep := testlib.RunRule(t, Rule(), NewDetector(),
		compare(3, "==", call, testlib.IntLit(3, "0")))
	testlib.ExpectLines(t, rep)
}
