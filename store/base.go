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

package store

import (
	"github.com/basicdb/basicdb/kv"
	"github.com/basicdb/basicdb/ql"
)

// Base embeds a leaf Backend and derives every higher-level operation
// from it. Concrete backends only implement the leaves declared on
// Backend and are wrapped by NewBase -- the Go expression of "layered
// defaults via inheritance".
type Base struct {
	Backend
}

// NewBase wraps a leaf implementation with the derived operations.
func NewBase(leaf Backend) *Base {
	return &Base{Backend: leaf}
}

// AddAttribute adds every value in values to attr, one leaf call per
// value.
func (b *Base) AddAttribute(owner, domain, item, attr string, values kv.Values) error {
	for _, v := range values {
		if err := b.AddAttributeValue(owner, domain, item, attr, v); err != nil {
			return err
		}
	}
	return nil
}

// AddAttributes applies AddAttribute across a whole attribute map.
func (b *Base) AddAttributes(owner, domain, item string, additions kv.AttrMap) error {
	for attr, values := range additions {
		if err := b.AddAttribute(owner, domain, item, attr, values); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceAttribute clears attr entirely, then adds values.
func (b *Base) ReplaceAttribute(owner, domain, item, attr string, values kv.Values) error {
	if err := b.DeleteAttributeAll(owner, domain, item, attr); err != nil {
		return err
	}
	return b.AddAttribute(owner, domain, item, attr, values)
}

// ReplaceAttributes applies ReplaceAttribute across a whole attribute
// map.
func (b *Base) ReplaceAttributes(owner, domain, item string, replacements kv.AttrMap) error {
	for attr, values := range replacements {
		if err := b.ReplaceAttribute(owner, domain, item, attr, values); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAttribute removes the listed values from attr, or the whole
// attribute when values contains the kv.AllValues sentinel.
func (b *Base) DeleteAttribute(owner, domain, item, attr string, values kv.Values) error {
	if values.Has(kv.AllValues) {
		return b.DeleteAttributeAll(owner, domain, item, attr)
	}
	for _, v := range values {
		if err := b.DeleteAttributeValue(owner, domain, item, attr, v); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAttributes applies DeleteAttribute across a whole attribute
// map.
func (b *Base) DeleteAttributes(owner, domain, item string, deletions kv.AttrMap) error {
	for attr, values := range deletions {
		if err := b.DeleteAttribute(owner, domain, item, attr, values); err != nil {
			return err
		}
	}
	return nil
}

// checkOneExpectation evaluates a single precondition against an
// item's current attributes, returning the specific typed error the
// failure maps to (spec distinguishes a plain failed check from an
// expectation naming an absent attribute or a multi-valued one).
func checkOneExpectation(item string, attrs kv.AttrMap, present bool, exp kv.Expectation) error {

	if exp.Exists != nil {
		if !present {
			if *exp.Exists {
				return errConditionalCheckFailed("expected attribute " + exp.Name + " to exist on " + item)
			}
			return nil
		}
		vs, ok := attrs[exp.Name]
		has := ok && len(vs) > 0
		if *exp.Exists != has {
			return errConditionalCheckFailed("expectation on attribute " + exp.Name + " was not met for " + item)
		}
		return nil
	}

	// value-equality expectation
	if !present {
		return errConditionalCheckFailed("expected value for attribute " + exp.Name + " on absent item " + item)
	}
	vs, ok := attrs[exp.Name]
	if !ok || len(vs) == 0 {
		return errAttributeDoesNotExist("expected attribute " + exp.Name + " is not present on " + item)
	}
	if len(vs) > 1 {
		return errMultiValuedAttribute("expectation with a specific value against multi-valued attribute " + exp.Name)
	}
	if !vs.Has(exp.Value) {
		return errConditionalCheckFailed("expected value " + exp.Value + " for attribute " + exp.Name + " on " + item)
	}
	return nil

}

// CheckExpectations evaluates every expectation against an item's
// current state; all must hold, or the first failure is returned.
// Checks happen before any mutation.
func (b *Base) CheckExpectations(owner, domain, item string, expectations []kv.Expectation) error {

	if len(expectations) == 0 {
		return nil
	}

	attrs, err := b.GetAttributes(owner, domain, item)
	if err != nil {
		return err
	}

	present := len(attrs) > 0

	for _, exp := range expectations {
		if err := checkOneExpectation(item, attrs, present, exp); err != nil {
			return err
		}
	}

	return nil

}

// PutAttributes checks expectations (if any), then applies additions
// and replacements in that order. Checks happen before any mutation;
// a failed check leaves the item untouched.
func (b *Base) PutAttributes(owner, domain, item string, additions, replacements kv.AttrMap, expectations []kv.Expectation) error {

	if err := b.CheckExpectations(owner, domain, item, expectations); err != nil {
		return err
	}

	if err := b.AddAttributes(owner, domain, item, additions); err != nil {
		return err
	}

	return b.ReplaceAttributes(owner, domain, item, replacements)

}

// ItemAttrs is one item's additions/replacements within a batch put.
type ItemAttrs struct {
	Additions    kv.AttrMap
	Replacements kv.AttrMap
}

// BatchPutAttributes applies PutAttributes per item, without
// expectations and without cross-item atomicity -- a failure partway
// through leaves earlier successes committed.
func (b *Base) BatchPutAttributes(owner, domain string, items map[string]ItemAttrs) error {
	for name, it := range items {
		if err := b.PutAttributes(owner, domain, name, it.Additions, it.Replacements, nil); err != nil {
			return err
		}
	}
	return nil
}

// BatchDeleteAttributes applies DeleteAttributes per item, without
// cross-item atomicity.
func (b *Base) BatchDeleteAttributes(owner, domain string, deletions map[string]kv.AttrMap) error {
	for name, attrs := range deletions {
		if err := b.DeleteAttributes(owner, domain, name, attrs); err != nil {
			return err
		}
	}
	return nil
}

// Select runs a parsed SELECT against every item the backend holds
// for stmt.Table, translating ql errors onto the wire-facing kinds.
func (b *Base) Select(owner string, stmt *ql.Statement) (order []string, results map[string]kv.AttrMap, err error) {

	items, err := b.Items(owner, stmt.Table)
	if err != nil {
		return nil, nil, err
	}

	order, results, err = ql.Run(stmt, items)
	if err != nil {
		return nil, nil, TranslateQueryError(err)
	}

	return order, results, nil

}
