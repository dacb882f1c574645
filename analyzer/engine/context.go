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

	"naive.systems/idiomcheck/analyzer/syntax"
)

// ErrUnresolvedContext means a context query could not be answered, e.g.
// because the queried node is not part of the analyzed tree. Detectors
// receiving it must degrade to "no finding".
var ErrUnresolvedContext = errors.New("syntax context unavailable")

// Context gives detectors read-only access to the surroundings of the node
// they are visiting: parent and ancestor lookups over the current tree.
type Context struct {
	tree *syntax.Tree
}

func NewContext(tree *syntax.Tree) *Context {
	return &Context{tree: tree}
}

// Parent returns the parent of n, nil for the root.
func (c *Context) Parent(n *syntax.Node) (*syntax.Node, error) {
	p, ok := c.tree.Parent(n)
	if !ok {
		return nil, ErrUnresolvedContext
	}
	return p, nil
}

// Ancestors returns the chain from n's parent up to the root.
func (c *Context) Ancestors(n *syntax.Node) ([]*syntax.Node, error) {
	if !c.tree.Contains(n) {
		return nil, ErrUnresolvedContext
	}
	var chain []*syntax.Node
	cur := n
	for {
		p, ok := c.tree.Parent(cur)
		if !ok || p == nil {
			break
		}
		chain = append(chain, p)
		cur = p
	}
	return chain, nil
}

// EnclosingKind returns the nearest ancestor of the given kind, or nil.
func (c *Context) EnclosingKind(n *syntax.Node, kind syntax.NodeKind) (*syntax.Node, error) {
	ancestors, err := c.Ancestors(n)
	if err != nil {
		return nil, err
	}
	for _, a := range ancestors {
		if a.Kind == kind {
			return a, nil
		}
	}
	return nil, nil
}

// ChildIndex returns n's index among its parent's children, -1 for the root.
func (c *Context) ChildIndex(n *syntax.Node) (int, error) {
	if !c.tree.Contains(n) {
		return -1, ErrUnresolvedContext
	}
	return c.tree.ChildIndex(n), nil
}
