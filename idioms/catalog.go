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

// Package idioms assembles the rule catalog of the C++ idiom checks.
package idioms

import (
	"github.com/golang/glog"

	"naive.systems/idiomcheck/analyzer/engine"
	"naive.systems/idiomcheck/cruleslib/checkrule"
	"naive.systems/idiomcheck/idioms/rule_01"
	"naive.systems/idiomcheck/idioms/rule_02"
	"naive.systems/idiomcheck/idioms/rule_03"
	"naive.systems/idiomcheck/idioms/rule_04"
	"naive.systems/idiomcheck/idioms/rule_05"
	"naive.systems/idiomcheck/idioms/rule_06"
	"naive.systems/idiomcheck/idioms/rule_07"
	"naive.systems/idiomcheck/idioms/rule_08"
	"naive.systems/idiomcheck/idioms/rule_09"
	"naive.systems/idiomcheck/idioms/rule_10"
	"naive.systems/idiomcheck/idioms/rule_11"
	"naive.systems/idiomcheck/idioms/rule_12"
	"naive.systems/idiomcheck/idioms/rule_13"
	"naive.systems/idiomcheck/idioms/rule_14"
	"naive.systems/idiomcheck/idioms/rule_15"
	"naive.systems/idiomcheck/idioms/rule_16"
	"naive.systems/idiomcheck/idioms/rule_17"
	"naive.systems/idiomcheck/idioms/rule_18"
)

// NewCatalog registers the 18 idiom rules in id order. The catalog is meant
// to be built once at process start and shared read-only afterwards.
func NewCatalog(config *checkrule.CheckConfig) (*engine.Catalog, error) {
	catalog := engine.NewCatalog()
	entries := []struct {
		rule *engine.Rule
		det  engine.Detector
	}{
		{rule_01.Rule(), rule_01.NewDetector()},
		{rule_02.Rule(), rule_02.NewDetector()},
		{rule_03.Rule(), rule_03.NewDetector(config.GetMinElseIfBranches())},
		{rule_04.Rule(), rule_04.NewDetector()},
		{rule_05.Rule(), rule_05.NewDetector()},
		{rule_06.Rule(), rule_06.NewDetector()},
		{rule_07.Rule(), rule_07.NewDetector(config.GetTrivialSizeBytes())},
		{rule_08.Rule(), rule_08.NewDetector()},
		{rule_09.Rule(), rule_09.NewDetector()},
		{rule_10.Rule(), rule_10.NewDetector()},
		{rule_11.Rule(), rule_11.NewDetector()},
		{rule_12.Rule(), rule_12.NewDetector()},
		{rule_13.Rule(), rule_13.NewDetector()},
		{rule_14.Rule(), rule_14.NewDetector(config.GetByValueParamBytes())},
		{rule_15.Rule(), rule_15.NewDetector()},
		{rule_16.Rule(), rule_16.NewDetector()},
		{rule_17.Rule(), rule_17.NewDetector()},
		{rule_18.Rule(), rule_18.NewDetector()},
	}
	for _, e := range entries {
		if err := catalog.Register(e.rule, e.det); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// MustCatalog is NewCatalog for main-path setup, where a registration
// failure is a build bug and not worth propagating.
func MustCatalog(config *checkrule.CheckConfig) *engine.Catalog {
	catalog, err := NewCatalog(config)
	if err != nil {
		glog.Fatalf("failed to build rule catalog: %v", err)
	}
	return catalog
}
