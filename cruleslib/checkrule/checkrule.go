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

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	DefaultMinElseIfBranches = 4
	DefaultTrivialSizeBytes  = 16
	DefaultByValueParamBytes = 16
)

// CheckConfig holds the tunables of the rule set. Optional fields are
// pointers so "absent" and "zero" stay distinguishable.
type CheckConfig struct {
	// MinElseIfBranches is the minimum number of equality branches before
	// an else-if chain is asked to become a switch. For R03 only.
	MinElseIfBranches *int `yaml:"min-else-if-branches,omitempty"`
	// TrivialSizeBytes is the largest element size still considered cheap
	// to copy in a range-for binding. For R07 only.
	TrivialSizeBytes *int `yaml:"trivial-size-bytes,omitempty"`
	// ByValueParamBytes is the largest parameter size passed by value
	// without complaint. For R14 only.
	ByValueParamBytes *int `yaml:"by-value-param-bytes,omitempty"`
	// Severity overrides the default severity per rule id, e.g. R05: error.
	Severity map[string]string `yaml:"severity,omitempty"`
	// Exclude lists rule ids that are skipped entirely.
	Exclude []string `yaml:"exclude,omitempty"`
}

func ParseConfigFile(path string) (*CheckConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %v", err)
	}
	return ParseConfig(content)
}

func ParseConfig(content []byte) (*CheckConfig, error) {
	config := &CheckConfig{}
	if err := yaml.UnmarshalStrict(content, config); err != nil {
		return nil, fmt.Errorf("yaml.UnmarshalStrict: %v", err)
	}
	return config, nil
}

func orDefault(v *int, def int) int {
	if v == nil || *v <= 0 {
		return def
	}
	return *v
}

func (c *CheckConfig) GetMinElseIfBranches() int {
	if c == nil {
		return DefaultMinElseIfBranches
	}
	return orDefault(c.MinElseIfBranches, DefaultMinElseIfBranches)
}

func (c *CheckConfig) GetTrivialSizeBytes() int {
	if c == nil {
		return DefaultTrivialSizeBytes
	}
	return orDefault(c.TrivialSizeBytes, DefaultTrivialSizeBytes)
}

func (c *CheckConfig) GetByValueParamBytes() int {
	if c == nil {
		return DefaultByValueParamBytes
	}
	return orDefault(c.ByValueParamBytes, DefaultByValueParamBytes)
}

func (c *CheckConfig) GetExcludeSet() map[string]bool {
	set := make(map[string]bool)
	if c == nil {
		return set
	}
	for _, id := range c.Exclude {
		set[id] = true
	}
	return set
}
