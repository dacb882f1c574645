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

package checkrule

import "testing"

func TestParseConfig(t *testing.T) {
	content := []byte(`
min-else-if-branches: 6
severity:
  R05: error
  R16: warning
exclude:
  - R02
  - R10
`)
	config, err := ParseConfig(content)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if got := config.GetMinElseIfBranches(); got != 6 {
		t.Errorf("GetMinElseIfBranches = %d, want 6", got)
	}
	if got := config.GetTrivialSizeBytes(); got != DefaultTrivialSizeBytes {
		t.Errorf("GetTrivialSizeBytes = %d, want default %d", got, DefaultTrivialSizeBytes)
	}
	if config.Severity["R05"] != "error" {
		t.Errorf("wrong severity map: %v", config.Severity)
	}
	exclude := config.GetExcludeSet()
	if !exclude["R02"] || !exclude["R10"] || len(exclude) != 2 {
		t.Errorf("wrong exclude set: %v", exclude)
	}
}

func TestParseConfigRejectsUnknownKeys(t *testing.T) {
	if _, err := ParseConfig([]byte("min-else-if-brunches: 6\n")); err == nil {
		t.Fatal("expect error for a misspelled key")
	}
}

func TestNilConfigDefaults(t *testing.T) {
	var config *CheckConfig
	if got := config.GetMinElseIfBranches(); got != DefaultMinElseIfBranches {
		t.Errorf("GetMinElseIfBranches = %d, want %d", got, DefaultMinElseIfBranches)
	}
	if got := config.GetByValueParamBytes(); got != DefaultByValueParamBytes {
		t.Errorf("GetByValueParamBytes = %d, want %d", got, DefaultByValueParamBytes)
	}
	if got := config.GetExcludeSet(); len(got) != 0 {
		t.Errorf("nil config must exclude nothing: %v", got)
	}
}

func TestNonPositiveValuesFallBack(t *testing.T) {
	config, err := ParseConfig([]byte("trivial-size-bytes: 0\n"))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if got := config.GetTrivialSizeBytes(); got != DefaultTrivialSizeBytes {
		t.Errorf("GetTrivialSizeBytes = %d, want default %d", got, DefaultTrivialSizeBytes)
	}
}
