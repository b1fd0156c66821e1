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
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/basicdb/basicdb/kv"
)

func booksAndMedia() map[string]kv.AttrMap {
	return map[string]kv.AttrMap{
		"i1": {"Title": kv.NewValues("A"), "Year": kv.NewValues("1980"), "Rating": kv.NewValues("*****")},
		"i2": {"Title": kv.NewValues("B"), "Year": kv.NewValues("1990"), "Rating": kv.NewValues("****")},
		"i3": {"Title": kv.NewValues("C"), "Year": kv.NewValues("2000"), "Rating": kv.NewValues("*****")},
		"i4": {"Title": kv.NewValues("D"), "Year": kv.NewValues("2010"), "Rating": kv.NewValues("***")},
		"i5": {"Title": kv.NewValues("E"), "Year": kv.NewValues("1970"), "Rating": kv.NewValues("****1")},
		"i6": {"Title": kv.NewValues("F"), "Year": kv.NewValues("2020"), "Rating": kv.NewValues("**")},
	}
}

func TestRunCount(t *testing.T) {

	Convey("count(*) returns one synthetic item with the truncated count", t, func() {
		stmt := mustParse(t, "SELECT count(*) FROM t WHERE Rating='*****'")
		order, results, err := Run(stmt, booksAndMedia())
		So(err, ShouldBeNil)
		So(len(order), ShouldEqual, 1)
		So(results[order[0]]["count"], ShouldResemble, kv.NewValues("2"))
	})

}

func TestRunOrderByItemName(t *testing.T) {

	Convey("ORDER BY itemName() sorts results by item name", t, func() {
		stmt := mustParse(t, "SELECT * FROM t ORDER BY itemName()")
		order, _, err := Run(stmt, booksAndMedia())
		So(err, ShouldBeNil)
		So(order, ShouldResemble, []string{"i1", "i2", "i3", "i4", "i5", "i6"})
	})

	Convey("DESC reverses the order", t, func() {
		stmt := mustParse(t, "SELECT * FROM t ORDER BY itemName() DESC")
		order, _, err := Run(stmt, booksAndMedia())
		So(err, ShouldBeNil)
		So(order, ShouldResemble, []string{"i6", "i5", "i4", "i3", "i2", "i1"})
	})

}

func TestRunOrderByAttributeRequiresWhereReference(t *testing.T) {

	Convey("ordering by a key absent from WHERE is rejected", t, func() {
		stmt := mustParse(t, "SELECT * FROM t ORDER BY Year")
		_, _, err := Run(stmt, booksAndMedia())
		So(err, ShouldEqual, ErrInvalidSort)
	})

	Convey("ordering by a key present in WHERE succeeds", t, func() {
		stmt := mustParse(t, "SELECT * FROM t WHERE Year > '1000' ORDER BY Year")
		order, _, err := Run(stmt, booksAndMedia())
		So(err, ShouldBeNil)
		So(order[0], ShouldEqual, "i5")
		So(order[len(order)-1], ShouldEqual, "i6")
	})

}

func TestRunLimit(t *testing.T) {

	Convey("LIMIT truncates the ordered result set", t, func() {
		stmt := mustParse(t, "SELECT * FROM t ORDER BY itemName() LIMIT 2")
		order, _, err := Run(stmt, booksAndMedia())
		So(err, ShouldBeNil)
		So(order, ShouldResemble, []string{"i1", "i2"})
	})

}

func TestRunProjection(t *testing.T) {

	Convey("a named column list drops other attributes and omits items left empty", t, func() {
		stmt := mustParse(t, "SELECT Title FROM t WHERE Rating='*****'")
		order, results, err := Run(stmt, booksAndMedia())
		So(err, ShouldBeNil)
		So(order, ShouldResemble, []string{"i1", "i3"})
		for _, name := range order {
			So(len(results[name]), ShouldEqual, 1)
			_, ok := results[name]["Title"]
			So(ok, ShouldBeTrue)
		}
	})

}
