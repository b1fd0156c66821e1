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

package web

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/basicdb/basicdb/kv"
	"github.com/basicdb/basicdb/ql"
	"github.com/basicdb/basicdb/store"
)

// handleAction demultiplexes the Action parameter and dispatches to
// the backend, matching spec.md §6's action table.
func handleAction(w http.ResponseWriter, r *http.Request, backend *store.Base) {

	started := time.Now()

	if err := r.ParseForm(); err != nil {
		writeError(w, store.ErrUnknownAction(""))
		return
	}

	params := r.Form
	owner := ownerFrom(r)
	action := params.Get("Action")

	resp := newResponse(started)
	var err error

	switch action {

	case "CreateDomain":
		err = backend.CreateDomain(owner, params.Get("DomainName"))

	case "DeleteDomain":
		err = backend.DeleteDomain(owner, params.Get("DomainName"))

	case "ListDomains":
		resp.DomainName, err = backend.ListDomains(owner)

	case "DomainMetadata":
		var md store.Metadata
		md, err = backend.DomainMetadata(owner, params.Get("DomainName"))
		if err == nil {
			resp.Metadata = &domainMetadataFields{
				ItemCount:                md.ItemCount,
				ItemNamesSizeBytes:       md.ItemNamesSizeBytes,
				AttributeNameCount:       md.AttributeNameCount,
				AttributeNamesSizeBytes:  md.AttributeNamesSizeBytes,
				AttributeValueCount:      md.AttributeValueCount,
				AttributeValuesSizeBytes: md.AttributeValuesSizeBytes,
				Timestamp:                md.Timestamp,
			}
		}

	case "PutAttributes":
		additions, replacements := decodeAttributes(params, "Attribute")
		expectations := decodeExpectations(params)
		err = backend.PutAttributes(owner, params.Get("DomainName"), params.Get("ItemName"), additions, replacements, expectations)

	case "BatchPutAttributes":
		items := decodeBatchPut(params)
		err = backend.BatchPutAttributes(owner, params.Get("DomainName"), items)

	case "DeleteAttributes":
		deletions := decodeDeletions(params, "Attribute")
		err = backend.DeleteAttributes(owner, params.Get("DomainName"), params.Get("ItemName"), deletions)

	case "BatchDeleteAttributes":
		deletions := decodeBatchDelete(params)
		err = backend.BatchDeleteAttributes(owner, params.Get("DomainName"), deletions)

	case "GetAttributes":
		var attrs kv.AttrMap
		attrs, err = backend.GetAttributes(owner, params.Get("DomainName"), params.Get("ItemName"))
		if err == nil {
			resp.Attribute = flattenAttrs(attrs)
		}

	case "Select":
		var stmt *ql.Statement
		stmt, err = ql.Parse(params.Get("SelectExpression"))
		if err != nil {
			err = store.TranslateQueryError(err)
		}
		if err == nil {
			var order []string
			var results map[string]kv.AttrMap
			order, results, err = backend.Select(owner, stmt)
			if err == nil {
				resp.Item = toSelectItems(order, results)
			}
		}

	default:
		err = store.ErrUnknownAction(action)

	}

	if err != nil {
		writeError(w, err)
		return
	}

	writeXML(w, http.StatusOK, resp)

}

func flattenAttrs(attrs kv.AttrMap) []attributePair {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []attributePair
	for _, name := range names {
		for _, v := range attrs[name] {
			out = append(out, attributePair{Name: name, Value: v})
		}
	}
	return out
}

func toSelectItems(order []string, results map[string]kv.AttrMap) []selectItem {
	out := make([]selectItem, 0, len(order))
	for _, name := range order {
		out = append(out, selectItem{Name: name, Attribute: flattenAttrs(results[name])})
	}
	return out
}

// indexedGroups returns the sorted set of N values appearing in
// "<prefix>.N." keys, implementing the wire's Attribute.N.*/Item.N.*
// indexed-parameter convention.
func indexedGroups(params url.Values, prefix string) []int {

	re := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `\.(\d+)\.`)
	seen := map[int]bool{}

	for key := range params {
		m := re.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		seen[n] = true
	}

	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Ints(out)

	return out

}

// decodeAttributes reads "<prefix>.N.{Name,Value,Replace}" entries into
// an additions map (the default) and a replacements map (entries
// marked Replace=true).
func decodeAttributes(params url.Values, prefix string) (additions, replacements kv.AttrMap) {

	additions = kv.AttrMap{}
	replacements = kv.AttrMap{}

	for _, n := range indexedGroups(params, prefix) {

		name := params.Get(fmt.Sprintf("%s.%d.Name", prefix, n))
		if name == "" {
			continue
		}
		value := params.Get(fmt.Sprintf("%s.%d.Value", prefix, n))
		replace := params.Get(fmt.Sprintf("%s.%d.Replace", prefix, n)) == "true"

		if replace {
			replacements.Set(name, replacements[name].Add(value))
		} else {
			additions.Set(name, additions[name].Add(value))
		}

	}

	return additions, replacements

}

// decodeDeletions reads "<prefix>.N.{Name,Value?}" entries; a missing
// Value requests deletion of every value under that attribute.
func decodeDeletions(params url.Values, prefix string) kv.AttrMap {

	out := kv.AttrMap{}

	for _, n := range indexedGroups(params, prefix) {

		name := params.Get(fmt.Sprintf("%s.%d.Name", prefix, n))
		if name == "" {
			continue
		}

		valueKey := fmt.Sprintf("%s.%d.Value", prefix, n)
		if vs, ok := params[valueKey]; ok && len(vs) > 0 && vs[0] != "" {
			out.Set(name, out[name].Add(vs[0]))
		} else {
			out.Set(name, kv.NewValues(kv.AllValues))
		}

	}

	return out

}

// decodeExpectations reads "Expected.N.{Name,Value|Exists}" entries.
func decodeExpectations(params url.Values) []kv.Expectation {

	var out []kv.Expectation

	for _, n := range indexedGroups(params, "Expected") {

		name := params.Get(fmt.Sprintf("Expected.%d.Name", n))
		if name == "" {
			continue
		}

		existsKey := fmt.Sprintf("Expected.%d.Exists", n)
		if vs, ok := params[existsKey]; ok && len(vs) > 0 {
			exists := vs[0] == "true"
			out = append(out, kv.Expectation{Name: name, Exists: &exists})
			continue
		}

		value := params.Get(fmt.Sprintf("Expected.%d.Value", n))
		out = append(out, kv.MustEqual(name, value))

	}

	return out

}

// decodeBatchPut reads "Item.N.ItemName" / "Item.N.Attribute.M.*".
func decodeBatchPut(params url.Values) map[string]store.ItemAttrs {

	out := map[string]store.ItemAttrs{}

	for _, n := range indexedGroups(params, "Item") {

		itemName := params.Get(fmt.Sprintf("Item.%d.ItemName", n))
		if itemName == "" {
			continue
		}

		additions, replacements := decodeAttributes(params, fmt.Sprintf("Item.%d.Attribute", n))
		out[itemName] = store.ItemAttrs{Additions: additions, Replacements: replacements}

	}

	return out

}

// decodeBatchDelete reads "Item.N.ItemName" / "Item.N.Attribute.M.*".
func decodeBatchDelete(params url.Values) map[string]kv.AttrMap {

	out := map[string]kv.AttrMap{}

	for _, n := range indexedGroups(params, "Item") {

		itemName := params.Get(fmt.Sprintf("Item.%d.ItemName", n))
		if itemName == "" {
			continue
		}

		out[itemName] = decodeDeletions(params, fmt.Sprintf("Item.%d.Attribute", n))

	}

	return out

}
