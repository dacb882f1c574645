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

/*
Package engine drives rule checking over a syntax tree: it keeps the rule
catalog, walks the tree once and dispatches every node to the detectors
interested in its kind, and collects their findings into a report.
*/
package engine

import (
	"errors"
	"fmt"

	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

// ErrDuplicateRule means two detectors were registered under one rule id.
// This is a programming bug in catalog construction, not a runtime state.
var ErrDuplicateRule = errors.New("rule id already registered")

// Rule is the static metadata of one check.
type Rule struct {
	Id              string
	Title           string
	Rationale       string
	DefaultSeverity report.Severity
}

type Entry struct {
	Rule     *Rule
	Detector Detector
}

// Catalog is the process-wide rule registry. It is built once at startup
// and read-only afterwards, so concurrent analyses share it without locks.
type Catalog struct {
	entries []Entry
	byId    map[string]int
}

func NewCatalog() *Catalog {
	return &Catalog{byId: make(map[string]int)}
}

func (c *Catalog) Register(rule *Rule, det Detector) error {
	if rule == nil || rule.Id == "" {
		return fmt.Errorf("rule without id cannot be registered")
	}
	if det == nil {
		return fmt.Errorf("rule %s has no detector", rule.Id)
	}
	if _, exists := c.byId[rule.Id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, rule.Id)
	}
	c.byId[rule.Id] = len(c.entries)
	c.entries = append(c.entries, Entry{Rule: rule, Detector: det})
	return nil
}

// All returns the entries in registration order. Iteration order is stable
// across runs so report ordering is reproducible before the final sort.
func (c *Catalog) All() []Entry {
	return c.entries
}

func (c *Catalog) Lookup(id string) (Entry, bool) {
	i, ok := c.byId[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Rules exports the rule metadata so a CLI or config layer can list the
// catalog and offer selective enable/disable by id.
func (c *Catalog) Rules() []*Rule {
	rules := make([]*Rule, 0, len(c.entries))
	for _, e := range c.entries {
		rules = append(rules, e.Rule)
	}
	return rules
}

// Detector is the matching logic of exactly one rule. Implementations must
// be pure functions of the visited subtree plus context queries: no state
// may be carried between Visit calls, so one instance is safely reused
// across files and goroutines.
type Detector interface {
	// InterestedIn lists the node kinds the detector wants to see. The
	// engine never dispatches other kinds to it.
	InterestedIn() []syntax.NodeKind
	// Visit inspects one node and returns zero or more findings. RuleId
	// and Severity of returned findings are stamped by the engine. A
	// detector that cannot judge a node (missing type info, unanswerable
	// context query) must return nothing instead of an error; errors are
	// for unexpected conditions and only suppress this detector on this
	// node, never the whole run.
	Visit(n *syntax.Node, ctx *Context) ([]*report.Finding, error)
}
