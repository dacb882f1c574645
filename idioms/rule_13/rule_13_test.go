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

package rule_13

import (
	"testing"

	"naive.systems/idiomcheck/analyzer/syntax"
	"naive.systems/idiomcheck/cruleslib/testlib"
)

func method(line int32, flags syntax.Flags) *syntax.Tree {
	m := testlib.Named(syntax.KindMethodDecl, line, "Draw")
	m.Flags = flags
	cls := testlib.Named(syntax.KindClassDecl, 1, "Circle")
	cls.Children = []*syntax.Node{m}
	return testlib.Unit(cls)
}

func TestOverridingMethodWithoutMarker(t *testing.T) {
	rep := testlib.RunRule(t, Rule(), NewDetector(),
		method(2, syntax.FlagVirtual|syntax.FlagOverridesBase))
	testlib.ExpectLines(t, rep, 2)
}

func TestMarkedOverrideIsFine(t *testing.T) {
	rep := testlib.RunRule(t, Rule(), NewDetector(),
		method(2, syntax.FlagVirtual|syntax.FlagOverridesBase|syntax.FlagOverride))
	testlib.ExpectLines(t, rep)
}

func TestFreshVirtualIsFine(t *testing.T) {
	rep := testlib.RunRule(t, Rule(), NewDetector(), method(2, syntax.FlagVirtual))
	testlib.ExpectLines(t, rep)
}

func TestUnresolvedBaseInfoStaysSilent(t *testing.T) {
	rep := testlib.RunRule(t, Rule(), NewDetector(),
		method(2, syntax.FlagVirtual|syntax.FlagOverridesBase|syntax.FlagUnresolved))
	testlib.ExpectLines(t, rep)
}
