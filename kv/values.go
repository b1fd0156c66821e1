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

// Package kv defines the value-model vocabulary shared by the query
// engine and every storage backend: owners, items, attribute value
// sets, and the preconditions a conditional write is gated on.
package kv

// Values is a deduplicated, insertion-ordered set of attribute values.
// Order is never significant to callers. A slice keeps the order in
// which values were added; backends may return the same logical set
// in different orders (fsdb, for one, reads values back in
// digest-filename order).
type Values []string

// NewValues builds a Values set from a list of strings, dropping
// duplicates.
func NewValues(vs ...string) Values {
	var out Values
	for _, v := range vs {
		out = out.Add(v)
	}
	return out
}

// Has reports whether s is a member of the set.
func (v Values) Has(s string) bool {
	for _, x := range v {
		if x == s {
			return true
		}
	}
	return false
}

// Add returns the set with s inserted, or the same set if s is
// already a member.
func (v Values) Add(s string) Values {
	if v.Has(s) {
		return v
	}
	return append(v, s)
}

// Remove returns the set with s removed.
func (v Values) Remove(s string) Values {
	out := make(Values, 0, len(v))
	for _, x := range v {
		if x != s {
			out = append(out, x)
		}
	}
	return out
}

// Clone returns an independent copy of the set.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	copy(out, v)
	return out
}

// AttrMap holds one item's attribute-name to value-set mapping. Per
// the empty-set erasure invariant, an attribute name must never be
// present in an AttrMap with a zero-length Values.
type AttrMap map[string]Values

// Clone returns a deep copy of the map.
func (a AttrMap) Clone() AttrMap {
	out := make(AttrMap, len(a))
	for k, v := range a {
		out[k] = v.Clone()
	}
	return out
}

// Set overwrites the value set for name, or deletes the key entirely
// if vs is empty, preserving the empty-set erasure invariant.
func (a AttrMap) Set(name string, vs Values) {
	if len(vs) == 0 {
		delete(a, name)
		return
	}
	a[name] = vs
}

// AllValues is the sentinel passed as the sole entry of a deletion
// value list to request that every value under the named attribute be
// removed, matching the wire convention where Attribute.N.Name is
// given with no accompanying Attribute.N.Value.
const AllValues = "\x00basicdb:all-values\x00"
