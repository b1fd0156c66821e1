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

package kv

// Expectation is a precondition on one attribute, checked before a
// conditional PutAttributes is allowed to proceed.
//
// Exactly one of Exists or Value is meaningful at a time: when Exists
// is non-nil the expectation is a pure presence/absence assertion
// ("must exist" / "must not exist"); when it is nil, Value names the
// specific value the attribute must hold. store.Base checks a value
// expectation only against a single-valued attribute: a multi-valued
// one fails the check with a MultiValuedAttribute error even when it
// contains Value.
type Expectation struct {
	Name   string
	Value  string
	Exists *bool
}

func boolPtr(b bool) *bool { return &b }

// MustExist builds an expectation that the named attribute is present
// with at least one value.
func MustExist(name string) Expectation {
	return Expectation{Name: name, Exists: boolPtr(true)}
}

// MustNotExist builds an expectation that the named attribute is
// absent from the item.
func MustNotExist(name string) Expectation {
	return Expectation{Name: name, Exists: boolPtr(false)}
}

// MustEqual builds an expectation that the named attribute holds
// value as its single value.
func MustEqual(name, value string) Expectation {
	return Expectation{Name: name, Value: value}
}

// Item is one item's full identity plus its current attribute map, as
// produced by a select or get.
type Item struct {
	Name  string
	Attrs AttrMap
}
