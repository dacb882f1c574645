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

package idioms

import (
	"fmt"
	"testing"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/analyzer/syntax"
	"naive.systems/idiomcheck/cruleslib/testlib"
)

func TestCatalogHoldsAllRules(t *testing.T) {
	catalog, err := NewCatalog(nil)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	rules := catalog.Rules()
	if len(rules) != 18 {
		t.Fatalf("expect 18 rules, actual: %d", len(rules))
	}
	for i, rule := range rules {
		want := fmt.Sprintf("R%02d", i+1)
		if rule.Id != want {
			t.Errorf("rule %d has id %s, want %s", i, rule.Id, want)
		}
		if rule.Title == "" || rule.Rationale == "" {
			t.Errorf("rule %s is missing title or rationale", rule.Id)
		}
	}
	for _, id := range []string{"R01", "R09", "R18"} {
		if _, ok := catalog.Lookup(id); !ok {
			t.Errorf("Lookup(%s) failed", id)
		}
	}
}

func TestFullCatalogRun(t *testing.T) {
	endl := &syntax.Node{
		Kind:  syntax.KindDeclRefExpr,
		Span:  testlib.Span(4),
		Name:  "endl",
		Flags: syntax.FlagFlushManipulator,
	}
	insertion := testlib.Node(syntax.KindStreamInsertionExpr, 4, testlib.Ref(4, "cout"), endl)
	insertion.Operator = "<<"
	cast := testlib.Node(syntax.KindCStyleCastExpr, 6, testlib.Ref(6, "buf"))
	cast.Type = &syntax.TypeInfo{Spelling: "char *"}
	tree := testlib.Unit(
		testlib.Named(syntax.KindNamespaceUsingDirective, 2, "std"),
		testlib.Named(syntax.KindEnumDecl, 3, "Color"),
		testlib.Node(syntax.KindFunctionDecl, 4,
			testlib.Node(syntax.KindCompoundStmt, 4,
				testlib.Node(syntax.KindExprStmt, 4, insertion),
				testlib.Named(syntax.KindRawArrayDecl, 5, "buf"),
				testlib.Node(syntax.KindExprStmt, 6, cast))),
	)
	rep, err := engine.New(MustCatalog(nil)).Analyze(tree, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	counts := rep.Counts()
	for rule, want := range map[string]int{"R01": 1, "R02": 1, "R05": 1, "R15": 1, "R18": 1} {
		if counts.ByRule[rule] != want {
			t.Errorf("rule %s reported %d finding(s), want %d", rule, counts.ByRule[rule], want)
		}
	}
	if counts.Total != 5 {
		t.Errorf("expect 5 findings in total, actual: %d", counts.Total)
	}
}
