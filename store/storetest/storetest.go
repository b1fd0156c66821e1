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

// Package storetest is a conformance suite shared by the store.Backend
// implementations: the memory, fsdb and boltdb test files each construct
// a backend via its own New and call storetest.Run against it (mongodoc
// has no test file).
package storetest

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/basicdb/basicdb/kv"
	"github.com/basicdb/basicdb/store"
)

// Run exercises the invariants every backend must uphold, wrapped in
// store.NewBase so the derived operations are exercised too.
func Run(t *testing.T, leaf store.Backend) {

	base := store.NewBase(leaf)

	Convey("A fresh domain has no items", t, func() {

		err := base.CreateDomain("acme", "widgets")
		So(err, ShouldBeNil)

		items, err := base.Items("acme", "widgets")
		So(err, ShouldBeNil)
		So(items, ShouldBeEmpty)

	})

	Convey("Put then get round-trips attribute values", t, func() {

		owner, domain := "acme", "books"
		So(base.CreateDomain(owner, domain), ShouldBeNil)

		additions := kv.AttrMap{"Title": kv.NewValues("A Clash of Kings")}
		err := base.PutAttributes(owner, domain, "item1", additions, nil, nil)
		So(err, ShouldBeNil)

		attrs, err := base.GetAttributes(owner, domain, "item1")
		So(err, ShouldBeNil)
		So(attrs["Title"], ShouldResemble, kv.NewValues("A Clash of Kings"))

	})

	Convey("Replacing an attribute discards its previous values", t, func() {

		owner, domain := "acme", "replace"
		So(base.CreateDomain(owner, domain), ShouldBeNil)

		So(base.AddAttributes(owner, domain, "item1", kv.AttrMap{
			"Color": kv.NewValues("Red", "Blue"),
		}), ShouldBeNil)

		So(base.ReplaceAttributes(owner, domain, "item1", kv.AttrMap{
			"Color": kv.NewValues("Green"),
		}), ShouldBeNil)

		attrs, err := base.GetAttributes(owner, domain, "item1")
		So(err, ShouldBeNil)
		So(attrs["Color"], ShouldResemble, kv.NewValues("Green"))

	})

	Convey("Deleting the last value of an attribute erases the attribute", t, func() {

		owner, domain := "acme", "erase"
		So(base.CreateDomain(owner, domain), ShouldBeNil)

		So(base.AddAttributes(owner, domain, "item1", kv.AttrMap{
			"Tag": kv.NewValues("only"),
		}), ShouldBeNil)

		So(base.DeleteAttribute(owner, domain, "item1", "Tag", kv.NewValues("only")), ShouldBeNil)

		attrs, err := base.GetAttributes(owner, domain, "item1")
		So(err, ShouldBeNil)
		_, present := attrs["Tag"]
		So(present, ShouldBeFalse)

	})

	Convey("Deleting with the AllValues sentinel erases the whole attribute", t, func() {

		owner, domain := "acme", "eraseall"
		So(base.CreateDomain(owner, domain), ShouldBeNil)

		So(base.AddAttributes(owner, domain, "item1", kv.AttrMap{
			"Tag": kv.NewValues("a", "b", "c"),
		}), ShouldBeNil)

		So(base.DeleteAttribute(owner, domain, "item1", "Tag", kv.NewValues(kv.AllValues)), ShouldBeNil)

		attrs, err := base.GetAttributes(owner, domain, "item1")
		So(err, ShouldBeNil)
		_, present := attrs["Tag"]
		So(present, ShouldBeFalse)

	})

	Convey("Owners are isolated from one another", t, func() {

		So(base.CreateDomain("owner-a", "shared"), ShouldBeNil)
		So(base.CreateDomain("owner-b", "shared"), ShouldBeNil)

		So(base.AddAttributes("owner-a", "shared", "item1", kv.AttrMap{
			"Secret": kv.NewValues("a-only"),
		}), ShouldBeNil)

		attrs, err := base.GetAttributes("owner-b", "shared", "item1")
		So(err, ShouldBeNil)
		So(attrs, ShouldBeEmpty)

	})

	Convey("Deleting a domain drops every item beneath it", t, func() {

		owner, domain := "acme", "cascade"
		So(base.CreateDomain(owner, domain), ShouldBeNil)
		So(base.AddAttributes(owner, domain, "item1", kv.AttrMap{
			"X": kv.NewValues("1"),
		}), ShouldBeNil)

		So(base.DeleteDomain(owner, domain), ShouldBeNil)

		items, err := base.Items(owner, domain)
		So(err, ShouldBeNil)
		So(items, ShouldBeEmpty)

	})

	Convey("A must_exist expectation gates the write", t, func() {

		owner, domain := "acme", "gated"
		So(base.CreateDomain(owner, domain), ShouldBeNil)

		err := base.PutAttributes(owner, domain, "item1",
			kv.AttrMap{"X": kv.NewValues("1")}, nil,
			[]kv.Expectation{kv.MustExist("X")})
		So(err, ShouldNotBeNil)

		So(base.AddAttributes(owner, domain, "item1", kv.AttrMap{
			"X": kv.NewValues("seed"),
		}), ShouldBeNil)

		err = base.PutAttributes(owner, domain, "item1",
			kv.AttrMap{"Y": kv.NewValues("2")}, nil,
			[]kv.Expectation{kv.MustExist("X")})
		So(err, ShouldBeNil)

	})

	Convey("ListDomains reports every created domain for an owner", t, func() {

		owner := "list-owner"
		So(base.CreateDomain(owner, "one"), ShouldBeNil)
		So(base.CreateDomain(owner, "two"), ShouldBeNil)

		domains, err := base.ListDomains(owner)
		So(err, ShouldBeNil)
		So(domains, ShouldContain, "one")
		So(domains, ShouldContain, "two")

	})

	Convey("Reset clears every domain an owner holds", t, func() {

		owner := "reset-owner"
		So(base.CreateDomain(owner, "one"), ShouldBeNil)
		So(base.AddAttributes(owner, "one", "item1", kv.AttrMap{
			"X": kv.NewValues("1"),
		}), ShouldBeNil)

		So(base.Reset(owner), ShouldBeNil)

		domains, err := base.ListDomains(owner)
		So(err, ShouldBeNil)
		So(domains, ShouldBeEmpty)

	})

}
