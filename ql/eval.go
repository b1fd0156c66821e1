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

import (
	"regexp"
	"strings"

	"github.com/basicdb/basicdb/kv"
)

// binding holds one chosen value per plain identifier referenced in
// the current Cartesian-product scope.
type binding map[string]string

// Match reports whether an item satisfies a WHERE expression. A nil
// expression matches everything.
func Match(where Expr, itemName string, attrs kv.AttrMap) bool {
	if where == nil {
		return true
	}
	return evalScope(where, itemName, attrs)
}

// evalScope collects the plain identifiers referenced directly under e
// (not crossing into a nested Intersection's own scope, see
// Intersection.identifiers) and tries every combination of their
// bound values, returning true as soon as one combination satisfies e.
func evalScope(e Expr, itemName string, attrs kv.AttrMap) bool {
	ids := map[string]bool{}
	e.identifiers(ids)
	names := make([]string, 0, len(ids))
	for n := range ids {
		names = append(names, n)
	}
	return existsBinding(e, itemName, attrs, names, 0, binding{})
}

func existsBinding(e Expr, itemName string, attrs kv.AttrMap, names []string, i int, bound binding) bool {
	if i == len(names) {
		return evalBool(e, itemName, attrs, bound)
	}
	name := names[i]
	vs, ok := attrs[name]
	if !ok || len(vs) == 0 {
		return false
	}
	for _, v := range vs {
		next := make(binding, len(bound)+1)
		for k, val := range bound {
			next[k] = val
		}
		next[name] = v
		if existsBinding(e, itemName, attrs, names, i+1, next) {
			return true
		}
	}
	return false
}

// evalBool evaluates e against one chosen binding, recursing into a
// fresh scope whenever it meets a nested Intersection.
func evalBool(e Expr, itemName string, attrs kv.AttrMap, bound binding) bool {
	switch n := e.(type) {
	case *And:
		return evalBool(n.LHS, itemName, attrs, bound) && evalBool(n.RHS, itemName, attrs, bound)
	case *Or:
		return evalBool(n.LHS, itemName, attrs, bound) || evalBool(n.RHS, itemName, attrs, bound)
	case *Not:
		return !evalBool(n.Operand, itemName, attrs, bound)
	case *Intersection:
		return evalScope(n.LHS, itemName, attrs) && evalScope(n.RHS, itemName, attrs)
	case *IsNull:
		return !attrPresent(n.Operand, itemName, attrs)
	case *Comparison:
		return evalComparison(n, itemName, attrs, bound)
	case *Between:
		return evalBetween(n, itemName, attrs, bound)
	}
	return false
}

func attrPresent(e Expr, itemName string, attrs kv.AttrMap) bool {
	switch n := e.(type) {
	case *Ident:
		vs, ok := attrs[n.Name]
		return ok && len(vs) > 0
	case *EveryIdent:
		vs, ok := attrs[n.Name]
		return ok && len(vs) > 0
	case *ItemName:
		return true
	}
	return false
}

// resolveIdentOperand returns the candidate values for an
// identifier-like operand and whether the comparison against it
// should be universal (every value must satisfy it) or singular (the
// one value already chosen by the enclosing binding).
func resolveIdentOperand(e Expr, itemName string, attrs kv.AttrMap, bound binding) (vals []string, ok bool, universal bool) {
	switch n := e.(type) {
	case *Ident:
		v, present := bound[n.Name]
		if !present {
			return nil, false, false
		}
		return []string{v}, true, false
	case *EveryIdent:
		vs, present := attrs[n.Name]
		if !present || len(vs) == 0 {
			return nil, false, true
		}
		return []string(vs), true, true
	case *ItemName:
		return []string{itemName}, true, false
	}
	return nil, false, false
}

func literalValue(e Expr) (value string, isNull bool) {
	switch n := e.(type) {
	case *Literal:
		return n.Value, false
	case *Null:
		return "", true
	}
	return "", false
}

func identName(e Expr) string {
	switch n := e.(type) {
	case *Ident:
		return n.Name
	case *EveryIdent:
		return n.Name
	}
	return ""
}

func splitIdentLiteral(left, right Expr) (identExpr, litExpr Expr, identOnLeft bool) {
	if isIdentKind(left) {
		return left, right, true
	}
	return right, left, false
}

func mirror(op Token) Token {
	switch op {
	case LT:
		return GT
	case GT:
		return LT
	case LTE:
		return GTE
	case GTE:
		return LTE
	default:
		return op
	}
}

func compareOne(op Token, v, lit string) bool {
	switch op {
	case EQ, EQQ:
		return v == lit
	case NEQ:
		return v != lit
	case LT:
		return v < lit
	case LTE:
		return v <= lit
	case GT:
		return v > lit
	case GTE:
		return v >= lit
	}
	return false
}

func evalComparison(c *Comparison, itemName string, attrs kv.AttrMap, bound binding) bool {
	switch c.Op {
	case IN:
		return evalIn(c.Left, c.Right.(*ValueList), itemName, attrs)
	case LIKE:
		return evalLike(c.Left, c.Right, itemName, attrs, bound)
	default:
		return evalRelational(c.Op, c.Left, c.Right, itemName, attrs, bound)
	}
}

func evalRelational(op Token, left, right Expr, itemName string, attrs kv.AttrMap, bound binding) bool {

	identExpr, litExpr, identOnLeft := splitIdentLiteral(left, right)

	lit, isNull := literalValue(litExpr)
	if isNull {
		return false
	}

	vals, ok, universal := resolveIdentOperand(identExpr, itemName, attrs, bound)
	if !ok {
		return false
	}

	effOp := op
	if !identOnLeft {
		effOp = mirror(op)
	}

	if universal {
		for _, v := range vals {
			if !compareOne(effOp, v, lit) {
				return false
			}
		}
		return true
	}

	return compareOne(effOp, vals[0], lit)

}

func evalLike(left, right Expr, itemName string, attrs kv.AttrMap, bound binding) bool {

	identExpr, litExpr, _ := splitIdentLiteral(left, right)

	pattern, isNull := literalValue(litExpr)
	if isNull {
		return false
	}

	vals, ok, universal := resolveIdentOperand(identExpr, itemName, attrs, bound)
	if !ok {
		return false
	}

	if universal {
		for _, v := range vals {
			if !likeMatch(v, pattern) {
				return false
			}
		}
		return true
	}

	return likeMatch(vals[0], pattern)

}

// likeMatch translates a SimpleDB-style LIKE pattern into a regular
// expression: '%' to '.*', '_' to '.', everything else (including a
// literal '*') escaped. The match is anchored at the start only.
func likeMatch(value, pattern string) bool {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	re, err := regexp.Compile(b.String())
	if err != nil {
		return false
	}
	return re.MatchString(value)
}

// evalIn always tests the full, unbound value set: the test passes
// iff every value in the attribute equals at least one listed literal.
func evalIn(identExpr Expr, list *ValueList, itemName string, attrs kv.AttrMap) bool {

	set := make(map[string]bool, len(list.Values))
	for _, v := range list.Values {
		set[v] = true
	}

	if _, isItem := identExpr.(*ItemName); isItem {
		return set[itemName]
	}

	name := identName(identExpr)
	if name == "" {
		return false
	}

	vs, ok := attrs[name]
	if !ok || len(vs) == 0 {
		return false
	}

	for _, v := range vs {
		if !set[v] {
			return false
		}
	}

	return true

}

func evalBetween(b *Between, itemName string, attrs kv.AttrMap, bound binding) bool {

	lo, loNull := literalValue(b.Lo)
	hi, hiNull := literalValue(b.Hi)
	if loNull || hiNull {
		return false
	}

	vals, ok, universal := resolveIdentOperand(b.Operand, itemName, attrs, bound)
	if !ok {
		return false
	}

	test := func(v string) bool { return v > lo && v < hi }

	if universal {
		for _, v := range vals {
			if !test(v) {
				return false
			}
		}
		return true
	}

	return test(vals[0])

}
