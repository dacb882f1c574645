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

package rule_14

import (
	"testing"

	"naive.systems/idiomcheck/analyzer/syntax"
	"naive.systems/idiomcheck/cruleslib/testlib"
)

func param(flags syntax.Flags, info *syntax.TypeInfo) *syntax.Tree {
	p := testlib.Named(syntax.KindParameterDecl, 1, "value")
	p.Flags = flags
	p.Type = info
	return testlib.Unit(
		testlib.Named(syntax.KindFunctionDecl, 1, "consume",
			p,
			testlib.Node(syntax.KindCompoundStmt, 1)),
	)
}

func TestByValueClassParameter(t *testing.T) {
	tree := param(syntax.FlagByValue,
		&syntax.TypeInfo{Spelling: "std::string", IsClass: true})
	rep := testlib.RunRule(t, Rule(), NewDetector(16), tree)
	testlib.ExpectLines(t, rep, 1)
}

func TestByValueWideStructParameter(t *testing.T) {
	tree := param(syntax.FlagByValue,
		&syntax.TypeInfo{Spelling: "Config", SizeBytes: 64})
	rep := testlib.RunRule(t, Rule(), NewDetector(16), tree)
	testlib.ExpectLines(t, rep, 1)
}

func TestSmallTrivialParameterIsFine(t *testing.T) {
	tree := param(syntax.FlagByValue,
		&syntax.TypeInfo{Spelling: "int", SizeBytes: 4, IsScalar: true})
	rep := testlib.RunRule(t, Rule(), NewDetector(16), tree)
	testlib.ExpectLines(t, rep)
}

func TestConstReferenceParameterIsFine(t *testing.T) {
	tree := param(syntax.FlagByReference|syntax.FlagConstQualified,
		&syntax.TypeInfo{Spelling: "std::string", IsClass: true})
	rep := testlib.RunRule(t, Rule(), NewDetector(16), tree)
	testlib.ExpectLines(t, rep)
}

func TestReassignedParameterIsADeliberateCopy(t *testing.T) {
	tree := param(syntax.FlagByValue|syntax.FlagReassigned,
		&syntax.TypeInfo{Spelling: "std::string", IsClass: true})
	rep := testlib.RunRule(t, Rule(), NewDetector(16), tree)
	testlib.ExpectLines(t, rep)
}

func TestArrayAdjustedParameterIsFine(t *testing.T) {
	tree := param(syntax.FlagByValue|syntax.FlagAdjustedParam,
		&syntax.TypeInfo{Spelling: "char[256]", SizeBytes: 256})
	rep := testlib.RunRule(t, Rule(), NewDetector(16), tree)
	testlib.ExpectLines(t, rep)
}

func TestUnresolvedParameterStaysSilent(t *testing.T) {
	tree := param(syntax.FlagByValue|syntax.FlagUnresolved,
		&syntax.TypeInfo{Spelling: "Mystery"})
	rep := testlib.RunRule(t, Rule(), NewDetector(16), tree)
	testlib.ExpectLines(t, rep)
}
