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

package engine

import (
	"errors"

	"naive.systems/idiomcheck/analyzer/report"
)

// ErrCollectorClosed is returned by Add after Finalize. Like
// ErrDuplicateRule this signals misuse by the caller, not a runtime state.
var ErrCollectorClosed = errors.New("diagnostic collector already finalized")

// Collector accumulates findings for one analysis run. An identical finding
// (same rule id, span and message) added twice is dropped silently.
// Collectors are per-run and must not be shared between goroutines.
type Collector struct {
	set    *report.FindingsSet
	closed bool
}

func NewCollector() *Collector {
	return &Collector{set: report.NewFindingsSet()}
}

func (c *Collector) Add(f *report.Finding) error {
	if c.closed {
		return ErrCollectorClosed
	}
	c.set.Add(f)
	return nil
}

// Finalize sorts the accumulated findings by (file, line, column, rule id)
// and returns the report. The collector accepts nothing afterwards.
func (c *Collector) Finalize() *report.Report {
	c.closed = true
	findings := c.set.Findings
	report.Sort(findings)
	return &report.Report{Findings: findings}
}
