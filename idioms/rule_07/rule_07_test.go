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

package rule_07

import (
	"testing"

	"naive.systems/idiomcheck/analyzer/syntax"
	"naive.systems/idiomcheck/cruleslib/testlib"
)

func rangeFor(binding *syntax.Node) *syntax.Tree {
	return testlib.Unit(
		testlib.Node(syntax.KindRangeForStmt, 3,
			binding,
			testlib.Ref(3, "items"),
			testlib.Node(syntax.KindCompoundStmt, 3)),
	)
}

func binding(flags syntax.Flags, info *syntax.TypeInfo) *syntax.Node {
	b := testlib.Named(syntax.KindIterationVariableBinding, 3, "item")
	b.Flags = flags
	b.Type = info
	return b
}

func TestByValueClassBinding(t *testing.T) {
	tree := rangeFor(binding(syntax.FlagByValue,
		&syntax.TypeInfo{Spelling: "std::string", IsClass: true}))
	rep := testlib.RunRule(t, Rule(), NewDetector(16), tree)
	testlib.ExpectLines(t, rep, 3)
}

func TestByValueLargeScalarBinding(t *testing.T) {
	tree := rangeFor(binding(syntax.FlagByValue,
		&syntax.TypeInfo{Spelling: "Blob", SizeBytes: 64}))
	rep := testlib.RunRule(t, Rule(), NewDetector(16), tree)
	testlib.ExpectLines(t, rep, 3)
}

func TestSmallTrivialBindingIsFine(t *testing.T) {
	tree := rangeFor(binding(syntax.FlagByValue,
		&syntax.TypeInfo{Spelling: "int", SizeBytes: 4, IsScalar: true}))
	rep := testlib.RunRule(t, Rule(), NewDetector(16), tree)
	testlib.ExpectLines(t, rep)
}

func TestReferenceBindingIsFine(t *testing.T) {
	tree := rangeFor(binding(syntax.FlagByReference|syntax.FlagConstQualified,
		&syntax.TypeInfo{Spelling: "std::string", IsClass: true}))
	rep := testlib.RunRule(t, Rule(), NewDetector(16), tree)
	testlib.ExpectLines(t, rep)
}

func TestReassignedCopyIsDeliberate(t *testing.T) {
	tree := rangeFor(binding(syntax.FlagByValue|syntax.FlagReassigned,
		&syntax.TypeInfo{Spelling: "std::string", IsClass: true}))
	rep := testlib.RunRule(t, Rule(), NewDetector(16), tree)
	testlib.ExpectLines(t, rep)
}

func TestUnresolvedElementTypeStaysSilent(t *testing.T) {
	b := binding(syntax.FlagByValue, &syntax.TypeInfo{Spelling: "Mystery"})
	b.Flags |= syntax.FlagUnresolved
	rep := testlib.RunRule(t, Rule(), NewDetector(16), rangeFor(b))
	testlib.ExpectLines(t, rep)
}
