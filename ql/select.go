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
	"sort"
	"strconv"

	"github.com/basicdb/basicdb/kv"
)

// Run filters, orders, limits and projects items against a parsed
// SELECT statement. items is the full candidate set for the table;
// the returned order lists result item names in presentation order,
// and results holds each one's (possibly projected) attribute map.
func Run(stmt *Statement, items map[string]kv.AttrMap) (order []string, results map[string]kv.AttrMap, err error) {

	matched := make(map[string]kv.AttrMap)
	for name, attrs := range items {
		if Match(stmt.Where, name, attrs) {
			matched[name] = attrs
		}
	}

	switch {

	case stmt.OrderBy == "":
		order = sortedKeys(matched)

	case stmt.OrderBy == "itemName()":
		order = sortedKeys(matched)
		if stmt.Desc {
			reverseStrings(order)
		}

	default:
		ids := map[string]bool{}
		if stmt.Where != nil {
			collectAllIdents(stmt.Where, ids)
		}
		if !ids[stmt.OrderBy] {
			return nil, nil, ErrInvalidSort
		}
		order = orderByAttribute(matched, stmt.OrderBy, stmt.Desc)

	}

	if stmt.Limit > 0 && stmt.Limit < len(order) {
		order = order[:stmt.Limit]
	}

	if stmt.Count {
		count := strconv.Itoa(len(order))
		return []string{""}, map[string]kv.AttrMap{"": {"count": kv.NewValues(count)}}, nil
	}

	if len(stmt.Columns) > 0 {
		return projectColumns(order, matched, stmt.Columns)
	}

	final := make(map[string]kv.AttrMap, len(order))
	for _, name := range order {
		final[name] = matched[name]
	}

	return order, final, nil

}

func projectColumns(order []string, matched map[string]kv.AttrMap, columns []string) ([]string, map[string]kv.AttrMap, error) {

	kept := make([]string, 0, len(order))
	out := make(map[string]kv.AttrMap, len(order))

	for _, name := range order {
		attrs := matched[name]
		projected := kv.AttrMap{}
		for _, col := range columns {
			if col == "itemName()" {
				projected[col] = kv.NewValues(name)
				continue
			}
			if vs, ok := attrs[col]; ok {
				projected[col] = vs
			}
		}
		if len(projected) == 0 {
			continue
		}
		kept = append(kept, name)
		out[name] = projected
	}

	return kept, out, nil

}

func sortedKeys(m map[string]kv.AttrMap) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

type orderPair struct {
	value string
	item  string
}

// orderByAttribute flattens (value, item_name) pairs across the key's
// values, sorts them, then deduplicates item names keeping each one's
// first occurrence.
func orderByAttribute(matched map[string]kv.AttrMap, key string, desc bool) []string {

	var pairs []orderPair
	for name, attrs := range matched {
		vs, ok := attrs[key]
		if !ok {
			continue
		}
		for _, v := range vs {
			pairs = append(pairs, orderPair{value: v, item: name})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].value != pairs[j].value {
			if desc {
				return pairs[i].value > pairs[j].value
			}
			return pairs[i].value < pairs[j].value
		}
		return pairs[i].item < pairs[j].item
	})

	seen := make(map[string]bool, len(pairs))
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if seen[p.item] {
			continue
		}
		seen[p.item] = true
		out = append(out, p.item)
	}

	return out

}

// collectAllIdents walks the full expression tree -- crossing
// Intersection boundaries, unlike the Cartesian-product scope builder
// in eval.go -- to decide whether an ORDER BY key is a legal WHERE
// reference.
func collectAllIdents(e Expr, out map[string]bool) {
	switch n := e.(type) {
	case *Ident:
		out[n.Name] = true
	case *EveryIdent:
		out[n.Name] = true
	case *Comparison:
		collectAllIdents(n.Left, out)
		collectAllIdents(n.Right, out)
	case *Between:
		collectAllIdents(n.Operand, out)
		collectAllIdents(n.Lo, out)
		collectAllIdents(n.Hi, out)
	case *IsNull:
		collectAllIdents(n.Operand, out)
	case *And:
		collectAllIdents(n.LHS, out)
		collectAllIdents(n.RHS, out)
	case *Or:
		collectAllIdents(n.LHS, out)
		collectAllIdents(n.RHS, out)
	case *Not:
		collectAllIdents(n.Operand, out)
	case *Intersection:
		collectAllIdents(n.LHS, out)
		collectAllIdents(n.RHS, out)
	}
}
