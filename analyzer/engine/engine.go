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
	"fmt"
	"runtime/debug"

	"github.com/golang/glog"

	"naive.systems/idiomcheck/analyzer/report"
	"naive.systems/idiomcheck/analyzer/syntax"
)

// Options tune one Analyze call. The zero value runs every rule with its
// default severity.
type Options struct {
	// Exclude lists rule ids to skip entirely. Excluded detectors are
	// never dispatched, not merely filtered from the output.
	Exclude map[string]bool
	// SeverityOverrides replaces the default severity per rule id.
	SeverityOverrides map[string]report.Severity
}

// Engine walks one syntax tree per Analyze call and dispatches nodes to the
// interested detectors in catalog order. It keeps no cross-call state, so
// one Engine may analyze independent trees from multiple goroutines.
type Engine struct {
	catalog *Catalog
	// interest maps a node kind to the catalog indexes of the detectors
	// that want it, built once at construction.
	interest map[syntax.NodeKind][]int
}

func New(catalog *Catalog) *Engine {
	e := &Engine{
		catalog:  catalog,
		interest: make(map[syntax.NodeKind][]int),
	}
	for i, entry := range catalog.All() {
		for _, kind := range entry.Detector.InterestedIn() {
			e.interest[kind] = append(e.interest[kind], i)
		}
	}
	return e
}

// Analyze runs every non-excluded detector over the tree and returns the
// sorted, deduplicated report. A detector failing on a node only loses that
// detector's findings for that node; the run always completes.
func (e *Engine) Analyze(tree *syntax.Tree, opts *Options) (*report.Report, error) {
	if tree == nil || tree.Root == nil {
		return nil, fmt.Errorf("no syntax tree to analyze")
	}
	if opts == nil {
		opts = &Options{}
	}
	entries := e.catalog.All()
	collector := NewCollector()
	ctx := NewContext(tree)

	// iterative depth-first walk; children are pushed in reverse so nodes
	// are visited in source order
	stack := []*syntax.Node{tree.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, i := range e.interest[n.Kind] {
			entry := entries[i]
			if opts.Exclude[entry.Rule.Id] {
				continue
			}
			findings := e.visit(entry, n, ctx)
			for _, f := range findings {
				f.RuleId = entry.Rule.Id
				f.Severity = entry.Rule.DefaultSeverity
				if s, ok := opts.SeverityOverrides[entry.Rule.Id]; ok {
					f.Severity = s
				}
				if err := collector.Add(f); err != nil {
					return nil, err
				}
			}
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			if n.Children[i] != nil {
				stack = append(stack, n.Children[i])
			}
		}
	}
	return collector.Finalize(), nil
}

// visit isolates one detector invocation: a panic or error is logged and
// reduced to zero findings so other detectors still run on the same node.
func (e *Engine) visit(entry Entry, n *syntax.Node, ctx *Context) (findings []*report.Finding) {
	defer func() {
		if r := recover(); r != nil {
			glog.Errorf("recovered in detector %s at %s:%d: %v\n%s",
				entry.Rule.Id, n.Span.File, n.Span.StartLine, r, string(debug.Stack()))
			findings = nil
		}
	}()
	findings, err := entry.Detector.Visit(n, ctx)
	if err != nil {
		glog.Errorf("detector %s failed at %s:%d: %v",
			entry.Rule.Id, n.Span.File, n.Span.StartLine, err)
		return nil
	}
	return findings
}
