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

func mustParse(t *testing.T, text string) *Statement {
	t.Helper()
	stmt, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", text, err)
	}
	return stmt
}

func TestMatchAndVsIntersection(t *testing.T) {

	Convey("a value bound once cannot satisfy two different AND branches on the same attribute", t, func() {
		attrs := kv.AttrMap{"Keyword": kv.NewValues("Book", "Hardcover")}
		stmt := mustParse(t, "SELECT * FROM t WHERE Keyword='Book' AND Keyword='Hardcover'")
		So(Match(stmt.Where, "x", attrs), ShouldBeFalse)
	})

	Convey("INTERSECTION evaluates each side against the whole value set independently", t, func() {
		attrs := kv.AttrMap{"Keyword": kv.NewValues("Book", "Hardcover")}
		stmt := mustParse(t, "SELECT * FROM t WHERE Keyword='Book' INTERSECTION Keyword='Hardcover'")
		So(Match(stmt.Where, "x", attrs), ShouldBeTrue)
	})

}

func TestMatchEveryAndIn(t *testing.T) {

	Convey("plain IN passes only when every attribute value is listed", t, func() {
		stmt := mustParse(t, "SELECT * FROM t WHERE Keyword IN ('Book','Paperback')")
		subset := kv.AttrMap{"Keyword": kv.NewValues("Book")}
		superset := kv.AttrMap{"Keyword": kv.NewValues("Book", "Hardcover")}
		So(Match(stmt.Where, "x", subset), ShouldBeTrue)
		So(Match(stmt.Where, "y", superset), ShouldBeFalse)
	})

	Convey("every(attr) forces universal quantification on an otherwise existential operator", t, func() {
		stmt := mustParse(t, "SELECT * FROM t WHERE every(Rating) = '*****'")
		allFive := kv.AttrMap{"Rating": kv.NewValues("*****")}
		mixed := kv.AttrMap{"Rating": kv.NewValues("*****", "***")}
		So(Match(stmt.Where, "x", allFive), ShouldBeTrue)
		So(Match(stmt.Where, "y", mixed), ShouldBeFalse)
	})

	Convey("the default comparison is existential", t, func() {
		stmt := mustParse(t, "SELECT * FROM t WHERE Rating='*****'")
		mixed := kv.AttrMap{"Rating": kv.NewValues("*****", "***")}
		So(Match(stmt.Where, "x", mixed), ShouldBeTrue)
	})

}

func TestMatchLike(t *testing.T) {

	Convey("% matches any substring and the match is left-anchored", t, func() {
		stmt := mustParse(t, "SELECT * FROM t WHERE Rating LIKE '****%'")
		So(Match(stmt.Where, "x", kv.AttrMap{"Rating": kv.NewValues("****1")}), ShouldBeTrue)
		So(Match(stmt.Where, "y", kv.AttrMap{"Rating": kv.NewValues("***")}), ShouldBeFalse)
		So(Match(stmt.Where, "z", kv.AttrMap{"Rating": kv.NewValues("x****1")}), ShouldBeFalse)
	})

	Convey("a literal asterisk in the pattern is not a wildcard", t, func() {
		stmt := mustParse(t, "SELECT * FROM t WHERE Rating LIKE '*text'")
		So(Match(stmt.Where, "x", kv.AttrMap{"Rating": kv.NewValues("*text")}), ShouldBeTrue)
		So(Match(stmt.Where, "y", kv.AttrMap{"Rating": kv.NewValues("Xtext")}), ShouldBeFalse)
	})

}

func TestMatchBetween(t *testing.T) {

	Convey("BETWEEN is strict and lexicographic", t, func() {
		stmt := mustParse(t, "SELECT * FROM t WHERE Year BETWEEN '1975' AND '2008'")
		So(Match(stmt.Where, "x", kv.AttrMap{"Year": kv.NewValues("1980")}), ShouldBeTrue)
		So(Match(stmt.Where, "y", kv.AttrMap{"Year": kv.NewValues("1975")}), ShouldBeFalse)
		So(Match(stmt.Where, "z", kv.AttrMap{"Year": kv.NewValues("2008")}), ShouldBeFalse)
	})

}

func TestMatchIsNull(t *testing.T) {

	Convey("IS NOT NULL tests presence directly, not value equality", t, func() {
		stmt := mustParse(t, "SELECT * FROM t WHERE a IS NOT NULL")
		So(Match(stmt.Where, "x", kv.AttrMap{"a": kv.NewValues("v")}), ShouldBeTrue)
		So(Match(stmt.Where, "y", kv.AttrMap{}), ShouldBeFalse)
	})

	Convey("IS NULL is the negation of IS NOT NULL", t, func() {
		stmt := mustParse(t, "SELECT * FROM t WHERE a IS NULL")
		So(Match(stmt.Where, "x", kv.AttrMap{"a": kv.NewValues("v")}), ShouldBeFalse)
		So(Match(stmt.Where, "y", kv.AttrMap{}), ShouldBeTrue)
	})

}

func TestMatchUnresolvedIdentifier(t *testing.T) {

	Convey("a comparison against a missing attribute is false, not an error", t, func() {
		stmt := mustParse(t, "SELECT * FROM t WHERE missing='x'")
		So(Match(stmt.Where, "x", kv.AttrMap{}), ShouldBeFalse)
	})

}
