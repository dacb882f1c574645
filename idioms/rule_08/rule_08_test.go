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

package rule_08

import (
	"strings"
	"testing"

	"naive.systems/idiomcheck/analyzer/syntax"
	"naive.systems/idiomcheck/cruleslib/testlib"
)

func nullArg(line int32) *syntax.Node {
	a := testlib.Named(syntax.KindDeclRefExpr, line, "NULL")
	a.Flags = syntax.FlagNullMacro
	return a
}

func call(flags syntax.Flags, args ...*syntax.Node) *syntax.Tree {
	c := testlib.Named(syntax.KindCallExpr, 4, "log", args...)
	c.Flags = flags
	return testlib.Unit(c)
}

func TestNullSelectsIntegerOverload(t *testing.T) {
	tree := call(syntax.FlagIntegerOverload, testlib.Ref(4, "tag"), nullArg(4))
	rep := testlib.RunRule(t, Rule(), NewDetector(), tree)
	testlib.ExpectLines(t, rep, 4)
	if !strings.Contains(rep.Findings[0].Message, "'log'") {
		t.Errorf("message %q does not name the callee", rep.Findings[0].Message)
	}
}

func TestMemberCallWithIntegerOverload(t *testing.T) {
	c := testlib.Named(syntax.KindMemberCallExpr, 7, "record",
		testlib.Ref(7, "sink"), nullArg(7))
	c.Flags = syntax.FlagIntegerOverload
	rep := testlib.RunRule(t, Rule(), NewDetector(), testlib.Unit(c))
	testlib.ExpectLines(t, rep, 7)
}

func TestPointerOverloadIsFine(t *testing.T) {
	// no integer-overload mark means resolution picked a real pointer
	tree := call(0, nullArg(4))
	rep := testlib.RunRule(t, Rule(), NewDetector(), tree)
	testlib.ExpectLines(t, rep)
}

func TestCallWithoutNullArgumentIsFine(t *testing.T) {
	tree := call(syntax.FlagIntegerOverload, testlib.IntLit(4, "0"))
	rep := testlib.RunRule(t, Rule(), NewDetector(), tree)
	testlib.ExpectLines(t, rep)
}
