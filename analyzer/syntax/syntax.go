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
Package syntax holds the parsed-program representation the checkers run on.
The tree is produced by a front end (see frontend/treesitter for one) and is
never mutated by any analyzer code.
*/
package syntax

type NodeKind int32

const (
	KindUnknown NodeKind = iota
	KindTranslationUnit
	KindNamespaceDecl
	KindNamespaceUsingDirective
	KindFunctionDecl
	KindMethodDecl
	KindConstructorDecl
	KindClassDecl
	KindEnumDecl
	KindVariableDecl
	KindParameterDecl
	KindRawArrayDecl
	KindMacroObjectLikeDecl
	KindCompoundStmt
	KindExprStmt
	KindIfStmt
	KindForStmt
	KindRangeForStmt
	KindIterationVariableBinding
	KindReturnStmt
	KindBinaryExpr
	KindAssignExpr
	KindUnaryExpr
	KindPreIncrementExpr
	KindPreDecrementExpr
	KindPostIncrementExpr
	KindPostDecrementExpr
	KindCallExpr
	KindMemberCallExpr
	KindContainerIndexExpr
	KindCStyleCastExpr
	KindStreamInsertionExpr
	KindDeclRefExpr
	KindIntLiteral
	KindStringLiteral
	KindNullptrLiteral
	KindOtherExpr
	KindOtherStmt
	KindOtherDecl
)

var kindNames = map[NodeKind]string{
	KindUnknown:                  "Unknown",
	KindTranslationUnit:          "TranslationUnit",
	KindNamespaceDecl:            "NamespaceDecl",
	KindNamespaceUsingDirective:  "NamespaceUsingDirective",
	KindFunctionDecl:             "FunctionDecl",
	KindMethodDecl:               "MethodDecl",
	KindConstructorDecl:          "ConstructorDecl",
	KindClassDecl:                "ClassDecl",
	KindEnumDecl:                 "EnumDecl",
	KindVariableDecl:             "VariableDecl",
	KindParameterDecl:            "ParameterDecl",
	KindRawArrayDecl:             "RawArrayDecl",
	KindMacroObjectLikeDecl:      "MacroObjectLikeDecl",
	KindCompoundStmt:             "CompoundStmt",
	KindExprStmt:                 "ExprStmt",
	KindIfStmt:                   "IfStmt",
	KindForStmt:                  "ForStmt",
	KindRangeForStmt:             "RangeForStmt",
	KindIterationVariableBinding: "IterationVariableBinding",
	KindReturnStmt:               "ReturnStmt",
	KindBinaryExpr:               "BinaryExpr",
	KindAssignExpr:               "AssignExpr",
	KindUnaryExpr:                "UnaryExpr",
	KindPreIncrementExpr:         "PreIncrementExpr",
	KindPreDecrementExpr:         "PreDecrementExpr",
	KindPostIncrementExpr:        "PostIncrementExpr",
	KindPostDecrementExpr:        "PostDecrementExpr",
	KindCallExpr:                 "CallExpr",
	KindMemberCallExpr:           "MemberCallExpr",
	KindContainerIndexExpr:       "ContainerIndexExpr",
	KindCStyleCastExpr:           "CStyleCastExpr",
	KindStreamInsertionExpr:      "StreamInsertionExpr",
	KindDeclRefExpr:              "DeclRefExpr",
	KindIntLiteral:               "IntLiteral",
	KindStringLiteral:            "StringLiteral",
	KindNullptrLiteral:           "NullptrLiteral",
	KindOtherExpr:                "OtherExpr",
	KindOtherStmt:                "OtherStmt",
	KindOtherDecl:                "OtherDecl",
}

func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Span locates a node in its source file. Lines and columns are 1-based.
type Span struct {
	File      string
	StartLine int32
	StartCol  int32
	EndLine   int32
	EndCol    int32
}

// Less orders spans by (file, line, column), the order reports are emitted in.
func (s Span) Less(other Span) bool {
	if s.File != other.File {
		return s.File < other.File
	}
	if s.StartLine != other.StartLine {
		return s.StartLine < other.StartLine
	}
	return s.StartCol < other.StartCol
}

// TypeInfo is the front end's view of a node's static type. A nil TypeInfo
// on a node that would normally carry one means resolution failed upstream;
// checkers must treat that as "do not know" and stay silent.
type TypeInfo struct {
	Spelling  string
	SizeBytes int32
	IsClass   bool
	IsPointer bool
	IsScalar  bool
}

type Flags uint32

const (
	// FlagUnresolved marks constructs the front end could not fully resolve.
	FlagUnresolved Flags = 1 << iota
	// initializer syntax of a VariableDecl
	FlagBraceInit
	FlagAssignInit
	FlagNoInit
	// FlagReassigned is set on a VariableDecl, ParameterDecl or
	// IterationVariableBinding that is assigned to after its declaration.
	FlagReassigned
	FlagByValue
	FlagByReference
	FlagConstQualified
	FlagVirtual
	FlagOverride
	FlagOverridesBase
	FlagExplicit
	FlagCopyOrMove
	FlagScopedEnum
	// FlagAdjustedParam marks an array parameter the front end adjusted to
	// a pointer, so array checkers do not re-report it.
	FlagAdjustedParam
	FlagNullMacro
	FlagFlushManipulator
	// FlagIntegerOverload is set on a CallExpr whose overload resolution
	// selected an integral parameter for an argument spelled NULL.
	FlagIntegerOverload
)

// Node is one element of the syntax tree. Nodes are built once per parse by
// the front end and read-only afterwards.
type Node struct {
	Kind     NodeKind
	Span     Span
	Name     string
	Operator string
	Text     string
	Type     *TypeInfo
	Flags    Flags
	Children []*Node
}

func (n *Node) Has(f Flags) bool {
	return n.Flags&f != 0
}

// Resolved reports whether the node carries usable type information.
func (n *Node) Resolved() bool {
	return n.Type != nil && !n.Has(FlagUnresolved)
}

// Child returns the i-th child or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// CountChildren counts direct children of the given kind.
func (n *Node) CountChildren(kind NodeKind) int {
	count := 0
	for _, c := range n.Children {
		if c.Kind == kind {
			count++
		}
	}
	return count
}

// FindChild returns the first direct child of the given kind, or nil.
func (n *Node) FindChild(kind NodeKind) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}
