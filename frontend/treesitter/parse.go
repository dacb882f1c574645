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
Package treesitter lowers the tree-sitter C++ concrete syntax tree into the
analyzer's syntax model. The lowering is purely syntactic: no name lookup,
no overload resolution, no layout. Nodes whose checks need semantic facts
(class-ness, sizes, selected overloads) are marked FlagUnresolved so the
detectors that depend on them stay silent rather than guess.
*/
package treesitter

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"naive.systems/idiomcheck/analyzer/syntax"
)

// Parser wraps one tree-sitter parser configured for C++. A Parser is not
// safe for concurrent use; create one per worker goroutine.
type Parser struct {
	parser *sitter.Parser
}

func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(cpp.GetLanguage())
	return &Parser{parser: p}
}

// Parse lowers one source file. path is used only for spans.
func (p *Parser) Parse(ctx context.Context, path string, source []byte) (*syntax.Tree, error) {
	cst, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer cst.Close()
	l := &lowering{file: path, source: source}
	root := l.lower(cst.RootNode())
	if root == nil {
		return nil, fmt.Errorf("parse %s: empty translation unit", path)
	}
	markReassigned(root)
	return syntax.NewTree(root), nil
}

type lowering struct {
	file   string
	source []byte
}

func (l *lowering) span(n *sitter.Node) syntax.Span {
	return syntax.Span{
		File:      l.file,
		StartLine: int32(n.StartPoint().Row) + 1,
		StartCol:  int32(n.StartPoint().Column) + 1,
		EndLine:   int32(n.EndPoint().Row) + 1,
		EndCol:    int32(n.EndPoint().Column) + 1,
	}
}

func (l *lowering) text(n *sitter.Node) string {
	return string(l.source[n.StartByte():n.EndByte()])
}

func (l *lowering) node(n *sitter.Node, kind syntax.NodeKind, children ...*syntax.Node) *syntax.Node {
	out := &syntax.Node{Kind: kind, Span: l.span(n)}
	for _, c := range children {
		if c != nil {
			out.Children = append(out.Children, c)
		}
	}
	return out
}

// lowerChildren lowers every named child, dropping punctuation and comments.
func (l *lowering) lowerChildren(n *sitter.Node) []*syntax.Node {
	var out []*syntax.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := l.lower(n.NamedChild(i)); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (l *lowering) lower(n *sitter.Node) *syntax.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "comment":
		return nil
	case "translation_unit":
		out := l.node(n, syntax.KindTranslationUnit)
		out.Children = l.lowerChildren(n)
		return out
	case "namespace_definition":
		out := l.node(n, syntax.KindNamespaceDecl)
		if name := n.ChildByFieldName("name"); name != nil {
			out.Name = l.text(name)
		}
		if body := n.ChildByFieldName("body"); body != nil {
			out.Children = l.lowerChildren(body)
		}
		return out
	case "using_declaration":
		return l.lowerUsing(n)
	case "preproc_def":
		out := l.node(n, syntax.KindMacroObjectLikeDecl)
		if name := n.ChildByFieldName("name"); name != nil {
			out.Name = l.text(name)
		}
		if value := n.ChildByFieldName("value"); value != nil {
			out.Text = strings.TrimSpace(l.text(value))
		}
		return out
	case "preproc_function_def", "preproc_ifdef", "preproc_if", "preproc_include", "preproc_call":
		out := l.node(n, syntax.KindOtherDecl)
		out.Children = l.lowerChildren(n)
		return out
	case "function_definition":
		return l.lowerFunction(n)
	case "class_specifier", "struct_specifier":
		return l.lowerClass(n)
	case "enum_specifier":
		return l.lowerEnum(n)
	case "declaration":
		return l.lowerDeclaration(n)
	case "parameter_declaration":
		return l.lowerParameter(n)
	case "compound_statement":
		out := l.node(n, syntax.KindCompoundStmt)
		out.Children = l.lowerChildren(n)
		return out
	case "expression_statement":
		out := l.node(n, syntax.KindExprStmt)
		out.Children = l.lowerChildren(n)
		return out
	case "if_statement":
		return l.lowerIf(n)
	case "for_statement":
		return l.lowerFor(n)
	case "for_range_loop":
		return l.lowerRangeFor(n)
	case "return_statement":
		out := l.node(n, syntax.KindReturnStmt)
		out.Children = l.lowerChildren(n)
		return out
	case "condition_clause":
		if v := n.ChildByFieldName("value"); v != nil {
			return l.lower(v)
		}
		return l.node(n, syntax.KindOtherExpr, l.lowerChildren(n)...)
	case "parenthesized_expression":
		if n.NamedChildCount() == 1 {
			return l.lower(n.NamedChild(0))
		}
		return l.node(n, syntax.KindOtherExpr, l.lowerChildren(n)...)
	case "binary_expression":
		return l.lowerBinary(n)
	case "assignment_expression":
		return l.lowerAssign(n)
	case "update_expression":
		return l.lowerUpdate(n)
	case "cast_expression":
		out := l.node(n, syntax.KindCStyleCastExpr, l.lower(n.ChildByFieldName("value")))
		if t := n.ChildByFieldName("type"); t != nil {
			out.Text = l.text(t)
		}
		return out
	case "call_expression":
		return l.lowerCall(n)
	case "subscript_expression":
		return l.lowerSubscript(n)
	case "identifier", "qualified_identifier", "field_identifier":
		return l.lowerIdentifier(n)
	case "number_literal":
		out := l.node(n, syntax.KindIntLiteral)
		out.Text = l.text(n)
		return out
	case "string_literal", "raw_string_literal", "char_literal":
		out := l.node(n, syntax.KindStringLiteral)
		out.Text = l.text(n)
		return out
	case "null", "nullptr":
		return l.node(n, syntax.KindNullptrLiteral)
	default:
		return l.lowerOther(n)
	}
}

// lowerUsing maps `using namespace N;` to a NamespaceUsingDirective and
// keeps `using N::name;` as an uninteresting declaration.
func (l *lowering) lowerUsing(n *sitter.Node) *syntax.Node {
	directive := false
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "namespace" {
			directive = true
			break
		}
	}
	if !directive {
		return l.node(n, syntax.KindOtherDecl)
	}
	out := l.node(n, syntax.KindNamespaceUsingDirective)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "identifier" || c.Type() == "qualified_identifier" || c.Type() == "namespace_identifier" {
			out.Name = l.text(c)
		}
	}
	return out
}

func (l *lowering) lowerFunction(n *sitter.Node) *syntax.Node {
	out := l.node(n, syntax.KindFunctionDecl)
	declarator := n.ChildByFieldName("declarator")
	for declarator != nil && declarator.Type() != "function_declarator" {
		declarator = declarator.ChildByFieldName("declarator")
	}
	if declarator != nil {
		if name := declarator.ChildByFieldName("declarator"); name != nil {
			out.Name = l.text(name)
		}
		if params := declarator.ChildByFieldName("parameters"); params != nil {
			out.Children = append(out.Children, l.lowerChildren(params)...)
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		out.Children = append(out.Children, l.lower(body))
	}
	return out
}

func (l *lowering) lowerClass(n *sitter.Node) *syntax.Node {
	out := l.node(n, syntax.KindClassDecl)
	if name := n.ChildByFieldName("name"); name != nil {
		out.Name = l.text(name)
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		// forward declaration
		return out
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "function_definition", "field_declaration", "declaration":
			if m := l.lowerMember(member, out.Name); m != nil {
				out.Children = append(out.Children, m)
			}
		default:
			if m := l.lower(member); m != nil {
				out.Children = append(out.Children, m)
			}
		}
	}
	return out
}

// lowerMember classifies a class member: constructors are declarators whose
// name matches no return type, methods carry virtual/override/explicit
// markers read straight from the tokens.
func (l *lowering) lowerMember(n *sitter.Node, className string) *syntax.Node {
	declarator := n.ChildByFieldName("declarator")
	fn := declarator
	for fn != nil && fn.Type() != "function_declarator" {
		fn = fn.ChildByFieldName("declarator")
	}
	if fn == nil {
		for arr := declarator; arr != nil; arr = arr.ChildByFieldName("declarator") {
			if arr.Type() == "array_declarator" {
				out := l.node(n, syntax.KindRawArrayDecl)
				if name := arr.ChildByFieldName("declarator"); name != nil {
					out.Name = l.text(name)
				}
				out.Type = l.typeInfo(n.ChildByFieldName("type"))
				return out
			}
		}
		return l.lower(n)
	}
	kind := syntax.KindMethodDecl
	// a member function without a declared type is a constructor or destructor
	if n.ChildByFieldName("type") == nil {
		kind = syntax.KindConstructorDecl
	}
	out := l.node(n, kind)
	if name := fn.ChildByFieldName("declarator"); name != nil {
		out.Name = l.text(name)
		if strings.HasPrefix(out.Name, "~") {
			out.Kind = syntax.KindMethodDecl
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		switch n.Child(i).Type() {
		case "virtual", "virtual_function_specifier":
			out.Flags |= syntax.FlagVirtual
		case "explicit_function_specifier":
			out.Flags |= syntax.FlagExplicit
		}
	}
	for i := 0; i < int(fn.ChildCount()); i++ {
		if fn.Child(i).Type() == "virtual_specifier" && l.text(fn.Child(i)) == "override" {
			out.Flags |= syntax.FlagOverride
		}
	}
	if params := fn.ChildByFieldName("parameters"); params != nil {
		out.Children = append(out.Children, l.lowerChildren(params)...)
	}
	if out.Kind == syntax.KindConstructorDecl && len(out.Children) == 1 {
		p := out.Children[0]
		// copy and move constructors take a reference to the own class;
		// a reference to any other type is a converting constructor
		if p.Kind == syntax.KindParameterDecl && p.Has(syntax.FlagByReference) &&
			p.Type != nil && p.Type.Spelling == className {
			out.Flags |= syntax.FlagCopyOrMove
		}
	}
	// whether the method overrides a base declaration needs name lookup
	if out.Kind == syntax.KindMethodDecl && !out.Has(syntax.FlagOverride) {
		out.Flags |= syntax.FlagUnresolved
	}
	if body := n.ChildByFieldName("body"); body != nil {
		out.Children = append(out.Children, l.lower(body))
	}
	return out
}

func (l *lowering) lowerEnum(n *sitter.Node) *syntax.Node {
	out := l.node(n, syntax.KindEnumDecl)
	if name := n.ChildByFieldName("name"); name != nil {
		out.Name = l.text(name)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		t := n.Child(i).Type()
		if t == "class" || t == "struct" {
			out.Flags |= syntax.FlagScopedEnum
		}
	}
	return out
}

// builtin scalar type spellings; classified without name lookup.
var scalarTypes = map[string]bool{
	"bool": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "signed": true, "unsigned": true,
	"size_t": true, "int8_t": true, "int16_t": true, "int32_t": true,
	"int64_t": true, "uint8_t": true, "uint16_t": true, "uint32_t": true,
	"uint64_t": true,
}

func (l *lowering) typeInfo(typeNode *sitter.Node) *syntax.TypeInfo {
	if typeNode == nil {
		return nil
	}
	spelling := strings.TrimSpace(l.text(typeNode))
	info := &syntax.TypeInfo{Spelling: spelling}
	for _, word := range strings.Fields(spelling) {
		if scalarTypes[word] {
			info.IsScalar = true
		}
	}
	return info
}

func (l *lowering) lowerDeclaration(n *sitter.Node) *syntax.Node {
	declarator := n.ChildByFieldName("declarator")
	if declarator == nil {
		return l.node(n, syntax.KindOtherDecl, l.lowerChildren(n)...)
	}
	info := l.typeInfo(n.ChildByFieldName("type"))
	switch declarator.Type() {
	case "array_declarator":
		out := l.node(n, syntax.KindRawArrayDecl)
		if name := declarator.ChildByFieldName("declarator"); name != nil {
			out.Name = l.text(name)
		}
		out.Type = info
		return out
	case "init_declarator":
		out := l.node(n, syntax.KindVariableDecl)
		out.Type = info
		inner := declarator.ChildByFieldName("declarator")
		if inner != nil {
			if inner.Type() == "array_declarator" {
				out.Kind = syntax.KindRawArrayDecl
				if name := inner.ChildByFieldName("declarator"); name != nil {
					out.Name = l.text(name)
				}
				return out
			}
			out.Name = l.text(inner)
			if inner.Type() == "pointer_declarator" {
				if out.Type != nil {
					out.Type.IsPointer = true
					out.Type.IsScalar = false
				}
				if name := inner.ChildByFieldName("declarator"); name != nil {
					out.Name = l.text(name)
				}
			}
		}
		if value := declarator.ChildByFieldName("value"); value != nil {
			if value.Type() == "initializer_list" {
				out.Flags |= syntax.FlagBraceInit
				out.Children = l.lowerChildren(value)
			} else {
				out.Flags |= syntax.FlagAssignInit
				out.Children = append(out.Children, l.lower(value))
			}
		} else {
			out.Flags |= syntax.FlagNoInit
		}
		return out
	case "identifier":
		out := l.node(n, syntax.KindVariableDecl)
		out.Name = l.text(declarator)
		out.Type = info
		out.Flags |= syntax.FlagNoInit
		return out
	case "pointer_declarator":
		out := l.node(n, syntax.KindVariableDecl)
		if name := declarator.ChildByFieldName("declarator"); name != nil {
			out.Name = l.text(name)
		}
		if info != nil {
			info.IsPointer = true
			info.IsScalar = false
		}
		out.Type = info
		out.Flags |= syntax.FlagNoInit
		return out
	case "function_declarator":
		// prototypes are not interesting to any checker
		return l.node(n, syntax.KindOtherDecl)
	default:
		return l.node(n, syntax.KindOtherDecl, l.lowerChildren(n)...)
	}
}

func (l *lowering) lowerParameter(n *sitter.Node) *syntax.Node {
	out := l.node(n, syntax.KindParameterDecl)
	out.Type = l.typeInfo(n.ChildByFieldName("type"))
	out.Flags |= syntax.FlagByValue
	declarator := n.ChildByFieldName("declarator")
	for declarator != nil {
		switch declarator.Type() {
		case "reference_declarator":
			out.Flags &^= syntax.FlagByValue
			out.Flags |= syntax.FlagByReference
		case "pointer_declarator":
			if out.Type != nil {
				out.Type.IsPointer = true
				out.Type.IsScalar = false
			}
		case "array_declarator":
			// arrays decay to pointers in parameter position
			out.Kind = syntax.KindRawArrayDecl
			out.Flags |= syntax.FlagAdjustedParam
		case "identifier":
			out.Name = l.text(declarator)
		}
		declarator = declarator.ChildByFieldName("declarator")
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "type_qualifier" && l.text(n.Child(i)) == "const" {
			out.Flags |= syntax.FlagConstQualified
		}
	}
	// sizes and class-ness need the semantic layer
	if out.Type != nil && !out.Type.IsScalar && !out.Type.IsPointer {
		out.Flags |= syntax.FlagUnresolved
	}
	return out
}

func (l *lowering) lowerIf(n *sitter.Node) *syntax.Node {
	cond := l.lower(n.ChildByFieldName("condition"))
	then := l.lower(n.ChildByFieldName("consequence"))
	out := l.node(n, syntax.KindIfStmt, cond, then)
	if alt := n.ChildByFieldName("alternative"); alt != nil {
		// else_clause wraps the actual statement
		if alt.Type() == "else_clause" && alt.NamedChildCount() > 0 {
			out.Children = append(out.Children, l.lower(alt.NamedChild(0)))
		} else if c := l.lower(alt); c != nil {
			out.Children = append(out.Children, c)
		}
	}
	return out
}

func (l *lowering) lowerFor(n *sitter.Node) *syntax.Node {
	out := l.node(n, syntax.KindForStmt,
		l.lower(n.ChildByFieldName("initializer")),
		l.lower(n.ChildByFieldName("condition")),
		l.lower(n.ChildByFieldName("update")),
		l.lower(n.ChildByFieldName("body")))
	return out
}

func (l *lowering) lowerRangeFor(n *sitter.Node) *syntax.Node {
	binding := &syntax.Node{Kind: syntax.KindIterationVariableBinding, Span: l.span(n)}
	binding.Type = l.typeInfo(n.ChildByFieldName("type"))
	binding.Flags |= syntax.FlagByValue
	declarator := n.ChildByFieldName("declarator")
	for declarator != nil {
		switch declarator.Type() {
		case "reference_declarator":
			binding.Flags &^= syntax.FlagByValue
			binding.Flags |= syntax.FlagByReference
		case "identifier":
			binding.Name = l.text(declarator)
			binding.Span = l.span(declarator)
		}
		declarator = declarator.ChildByFieldName("declarator")
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "type_qualifier" && l.text(n.Child(i)) == "const" {
			binding.Flags |= syntax.FlagConstQualified
		}
	}
	// triviality of the element type is a semantic question
	if binding.Type != nil && !binding.Type.IsScalar {
		binding.Flags |= syntax.FlagUnresolved
	}
	return l.node(n, syntax.KindRangeForStmt,
		binding,
		l.lower(n.ChildByFieldName("right")),
		l.lower(n.ChildByFieldName("body")))
}

func (l *lowering) lowerBinary(n *sitter.Node) *syntax.Node {
	op := ""
	if o := n.ChildByFieldName("operator"); o != nil {
		op = l.text(o)
	}
	left := l.lower(n.ChildByFieldName("left"))
	right := l.lower(n.ChildByFieldName("right"))
	kind := syntax.KindBinaryExpr
	if op == "<<" {
		kind = syntax.KindStreamInsertionExpr
	}
	out := l.node(n, kind, left, right)
	out.Operator = op
	return out
}

func (l *lowering) lowerAssign(n *sitter.Node) *syntax.Node {
	out := l.node(n, syntax.KindAssignExpr,
		l.lower(n.ChildByFieldName("left")),
		l.lower(n.ChildByFieldName("right")))
	if o := n.ChildByFieldName("operator"); o != nil {
		out.Operator = l.text(o)
	}
	return out
}

func (l *lowering) lowerUpdate(n *sitter.Node) *syntax.Node {
	arg := n.ChildByFieldName("argument")
	op := n.ChildByFieldName("operator")
	if arg == nil || op == nil {
		return l.node(n, syntax.KindOtherExpr, l.lowerChildren(n)...)
	}
	postfix := arg.StartByte() < op.StartByte()
	var kind syntax.NodeKind
	switch {
	case postfix && l.text(op) == "++":
		kind = syntax.KindPostIncrementExpr
	case postfix:
		kind = syntax.KindPostDecrementExpr
	case l.text(op) == "++":
		kind = syntax.KindPreIncrementExpr
	default:
		kind = syntax.KindPreDecrementExpr
	}
	out := l.node(n, kind, l.lower(arg))
	// whether the operand is of class type needs the semantic layer
	out.Flags |= syntax.FlagUnresolved
	return out
}

func (l *lowering) lowerCall(n *sitter.Node) *syntax.Node {
	fn := n.ChildByFieldName("function")
	kind := syntax.KindCallExpr
	out := &syntax.Node{Kind: kind, Span: l.span(n)}
	if fn != nil {
		if fn.Type() == "field_expression" {
			out.Kind = syntax.KindMemberCallExpr
			if field := fn.ChildByFieldName("field"); field != nil {
				out.Name = l.text(field)
			}
			out.Children = append(out.Children, l.lower(fn.ChildByFieldName("argument")))
		} else {
			out.Name = l.text(fn)
		}
	}
	if args := n.ChildByFieldName("arguments"); args != nil {
		out.Children = append(out.Children, l.lowerChildren(args)...)
	}
	// overload resolution is out of reach here
	out.Flags |= syntax.FlagUnresolved
	return out
}

func (l *lowering) lowerSubscript(n *sitter.Node) *syntax.Node {
	// field names for the index differ across grammar revisions; fall back
	// to positional named children
	base := n.ChildByFieldName("argument")
	index := n.ChildByFieldName("index")
	if index == nil {
		index = n.ChildByFieldName("indices")
	}
	if base == nil && n.NamedChildCount() > 0 {
		base = n.NamedChild(0)
	}
	if index == nil && n.NamedChildCount() > 1 {
		index = n.NamedChild(1)
	}
	out := l.node(n, syntax.KindContainerIndexExpr, l.lower(base), l.lower(index))
	out.Flags |= syntax.FlagUnresolved
	return out
}

func (l *lowering) lowerIdentifier(n *sitter.Node) *syntax.Node {
	out := l.node(n, syntax.KindDeclRefExpr)
	out.Name = l.text(n)
	switch out.Name {
	case "NULL":
		out.Flags |= syntax.FlagNullMacro
	case "endl", "std::endl":
		out.Flags |= syntax.FlagFlushManipulator
	}
	return out
}

// lowerOther keeps unknown constructs in the tree so traversal still reaches
// everything nested inside them.
func (l *lowering) lowerOther(n *sitter.Node) *syntax.Node {
	kind := syntax.KindOtherExpr
	t := n.Type()
	if strings.HasSuffix(t, "_statement") || strings.HasSuffix(t, "_clause") {
		kind = syntax.KindOtherStmt
	} else if strings.HasSuffix(t, "_declaration") || strings.HasSuffix(t, "_definition") || strings.HasSuffix(t, "_specifier") {
		kind = syntax.KindOtherDecl
	}
	out := l.node(n, kind)
	out.Children = l.lowerChildren(n)
	if len(out.Children) == 0 && !n.IsNamed() {
		return nil
	}
	return out
}

// markReassigned walks the lowered tree and sets FlagReassigned on every
// declaration whose name is the target of a later assignment or update.
// The pass is name-based, not scope-aware, which can only over-mark; the
// checkers that read the flag use it to suppress findings, never to add.
func markReassigned(root *syntax.Node) {
	assigned := map[string]bool{}
	walk(root, func(n *syntax.Node) {
		switch n.Kind {
		case syntax.KindAssignExpr:
			if t := n.Child(0); t != nil && t.Kind == syntax.KindDeclRefExpr {
				assigned[t.Name] = true
			}
		case syntax.KindPreIncrementExpr, syntax.KindPreDecrementExpr,
			syntax.KindPostIncrementExpr, syntax.KindPostDecrementExpr:
			if t := n.Child(0); t != nil && t.Kind == syntax.KindDeclRefExpr {
				assigned[t.Name] = true
			}
		}
	})
	walk(root, func(n *syntax.Node) {
		switch n.Kind {
		case syntax.KindVariableDecl, syntax.KindParameterDecl, syntax.KindIterationVariableBinding:
			if n.Name != "" && assigned[n.Name] {
				n.Flags |= syntax.FlagReassigned
			}
		}
	})
}

func walk(n *syntax.Node, f func(*syntax.Node)) {
	f(n)
	for _, c := range n.Children {
		walk(c, f)
	}
}
