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
)

func TestParseRejections(t *testing.T) {

	Convey("The parser rejects identifier-vs-identifier comparisons", t, func() {
		_, err := Parse("SELECT * FROM t WHERE a=b")
		So(err, ShouldNotBeNil)
	})

	Convey("The parser rejects literal-vs-literal comparisons", t, func() {
		_, err := Parse("SELECT * FROM t WHERE 'a'='b'")
		So(err, ShouldNotBeNil)
	})

	Convey("The parser rejects bare integer literals", t, func() {
		_, err := Parse("SELECT * FROM t WHERE a=10")
		So(err, ShouldNotBeNil)
	})

	Convey("The parser rejects arbitrary non-SQL text", t, func() {
		_, err := Parse("this is not a query")
		So(err, ShouldNotBeNil)
	})

	Convey("The parser rejects trailing garbage after a valid statement", t, func() {
		_, err := Parse("SELECT * FROM t WHERE a='x' garbage")
		So(err, ShouldNotBeNil)
	})

}

func TestParseAccepts(t *testing.T) {

	Convey("A minimal SELECT * with no WHERE parses", t, func() {
		stmt, err := Parse("SELECT * FROM t")
		So(err, ShouldBeNil)
		So(stmt.Table, ShouldEqual, "t")
		So(stmt.Columns, ShouldBeNil)
		So(stmt.Count, ShouldBeFalse)
	})

	Convey("count(*) sets the Count flag", t, func() {
		stmt, err := Parse("SELECT count(*) FROM t WHERE Rating='*****'")
		So(err, ShouldBeNil)
		So(stmt.Count, ShouldBeTrue)
	})

	Convey("A comma-separated column list is preserved in order", t, func() {
		stmt, err := Parse("SELECT Title, Author FROM t")
		So(err, ShouldBeNil)
		So(stmt.Columns, ShouldResemble, []string{"Title", "Author"})
	})

	Convey("ORDER BY itemName() and LIMIT parse together", t, func() {
		stmt, err := Parse("SELECT * FROM t WHERE a='x' ORDER BY itemName() DESC LIMIT 5")
		So(err, ShouldBeNil)
		So(stmt.OrderBy, ShouldEqual, "itemName()")
		So(stmt.Desc, ShouldBeTrue)
		So(stmt.Limit, ShouldEqual, 5)
	})

	Convey("A literal may appear on either side of a comparison", t, func() {
		_, err := Parse("SELECT * FROM t WHERE 'x'=a")
		So(err, ShouldBeNil)
	})

	Convey("every(attr) IN (...) parses", t, func() {
		stmt, err := Parse("SELECT * FROM t WHERE every(Keyword) IN ('Book','Paperback')")
		So(err, ShouldBeNil)
		cmp, ok := stmt.Where.(*Comparison)
		So(ok, ShouldBeTrue)
		_, ok = cmp.Left.(*EveryIdent)
		So(ok, ShouldBeTrue)
	})

	Convey("BETWEEN/AND parses as a ternary, not a boolean AND", t, func() {
		stmt, err := Parse("SELECT * FROM t WHERE Year BETWEEN '1975' AND '2008'")
		So(err, ShouldBeNil)
		_, ok := stmt.Where.(*Between)
		So(ok, ShouldBeTrue)
	})

}
