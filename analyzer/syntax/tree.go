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

package syntax

// Tree wraps a root node together with parent back-references. Parents are a
// lookup-only relation; ownership always goes root to leaf.
type Tree struct {
	Root    *Node
	parents map[*Node]*Node
}

// NewTree indexes the subtree under root. The walk is iterative so deeply
// nested expressions cannot exhaust the goroutine stack.
func NewTree(root *Node) *Tree {
	t := &Tree{
		Root:    root,
		parents: make(map[*Node]*Node),
	}
	if root == nil {
		return t
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range n.Children {
			if c == nil {
				continue
			}
			t.parents[c] = n
			stack = append(stack, c)
		}
	}
	return t
}

// Parent returns the parent of n, or nil for the root. The second return
// value is false when n is not part of this tree at all.
func (t *Tree) Parent(n *Node) (*Node, bool) {
	if n == t.Root {
		return nil, true
	}
	p, ok := t.parents[n]
	return p, ok
}

func (t *Tree) Contains(n *Node) bool {
	if n == t.Root {
		return t.Root != nil
	}
	_, ok := t.parents[n]
	return ok
}

// ChildIndex returns n's position among its parent's children, or -1 for
// the root or an unknown node.
func (t *Tree) ChildIndex(n *Node) int {
	p, ok := t.parents[n]
	if !ok {
		return -1
	}
	for i, c := range p.Children {
		if c == n {
			return i
		}
	}
	return -1
}
