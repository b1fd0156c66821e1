// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ql

// Statement is a fully parsed SELECT.
type Statement struct {
	Columns []string // projected attribute names, or nil for '*'
	Count   bool      // true for 'count(*)'
	Table   string
	Where   Expr // nil if no WHERE clause
	OrderBy string
	Desc    bool
	Limit   int // 0 means unset
}

// Expr is one node of the WHERE expression tree. Each variant is a
// distinct Go type, not a subclass of some shared Identifier base --
// every() and itemName() carry their own evaluation rules rather than
// flags on a common node.
type Expr interface {
	// identifiers appends the plain (non-every) attribute names this
	// node reads during default existential evaluation, used to build
	// the Cartesian-product binding scope.
	identifiers(out map[string]bool)
}

// Literal is a single-quoted string constant.
type Literal struct {
	Value string
}

// ValueList is a parenthesized list of literals, the right-hand side
// of IN.
type ValueList struct {
	Values []string
}

// Null is the untyped null sentinel produced by the NULL keyword.
type Null struct{}

// Ident resolves to one chosen binding of the named attribute's value
// set during existential evaluation.
type Ident struct {
	Name string
}

// ItemName resolves to the item's own name, usable in WHERE and ORDER
// BY as a pseudo-column.
type ItemName struct{}

// EveryIdent resolves to the full, unbound value set of the named
// attribute, forcing universal quantification on whatever comparison
// it sits under.
type EveryIdent struct {
	Name string
}

// Count marks a 'count(*)' projection; it never appears inside a
// WHERE clause.
type Count struct{}

// Comparison is a binary test between two operands. One operand is
// always a Literal/ValueList/Null and the other an Ident/EveryIdent/
// ItemName -- the parser rejects literal-vs-literal and
// identifier-vs-identifier comparisons.
type Comparison struct {
	Op    Token // EQ, EQQ, NEQ, LT, LTE, GT, GTE, IN, LIKE (IS [NOT] NULL parses to IsNull instead)
	Left  Expr
	Right Expr
}

// Between tests lo < operand < hi, strictly.
type Between struct {
	Operand Expr
	Lo      Expr
	Hi      Expr
}

// IsNull tests attribute presence; Not inverts it for IS NOT NULL.
type IsNull struct {
	Operand Expr
}

// And is boolean conjunction sharing one Cartesian-product binding
// scope with its operands.
type And struct {
	LHS, RHS Expr
}

// Or is boolean disjunction sharing one Cartesian-product binding
// scope with its operands.
type Or struct {
	LHS, RHS Expr
}

// Not is boolean negation.
type Not struct {
	Operand Expr
}

// Intersection is set-semantic conjunction: each side is evaluated
// against its own independent Cartesian product rather than a shared
// binding, so it can hold even when And would not.
type Intersection struct {
	LHS, RHS Expr
}

func (e *Literal) identifiers(map[string]bool)      {}
func (e *ValueList) identifiers(map[string]bool)    {}
func (e *Null) identifiers(map[string]bool)         {}
func (e *ItemName) identifiers(map[string]bool)     {}
func (e *EveryIdent) identifiers(map[string]bool)   {}
func (e *Count) identifiers(map[string]bool)        {}

func (e *Ident) identifiers(out map[string]bool) { out[e.Name] = true }

func (e *Comparison) identifiers(out map[string]bool) {
	e.Left.identifiers(out)
	e.Right.identifiers(out)
}

func (e *Between) identifiers(out map[string]bool) {
	e.Operand.identifiers(out)
	e.Lo.identifiers(out)
	e.Hi.identifiers(out)
}

// IsNull tests attribute presence directly against the item rather
// than against a chosen binding, so its operand does not enter the
// shared Cartesian-product scope.
func (e *IsNull) identifiers(map[string]bool) {}

func (e *And) identifiers(out map[string]bool) {
	e.LHS.identifiers(out)
	e.RHS.identifiers(out)
}

func (e *Or) identifiers(out map[string]bool) {
	e.LHS.identifiers(out)
	e.RHS.identifiers(out)
}

func (e *Not) identifiers(out map[string]bool) { e.Operand.identifiers(out) }

// Intersection deliberately does NOT flow its operands' identifiers
// into the caller's shared binding scope: each side builds and
// iterates its own product independently (see eval.go).
func (e *Intersection) identifiers(map[string]bool) {}
