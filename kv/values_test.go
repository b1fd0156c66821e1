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

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestValues(t *testing.T) {

	Convey("Values deduplicates on Add", t, func() {
		v := NewValues("a", "b", "a")
		So(len(v), ShouldEqual, 2)
		So(v.Has("a"), ShouldBeTrue)
		So(v.Has("c"), ShouldBeFalse)
	})

	Convey("Remove drops exactly one member", t, func() {
		v := NewValues("a", "b", "c")
		v = v.Remove("b")
		So(v.Has("b"), ShouldBeFalse)
		So(len(v), ShouldEqual, 2)
	})

	Convey("Clone is independent of the original", t, func() {
		v := NewValues("a")
		c := v.Clone()
		c = c.Add("b")
		So(v.Has("b"), ShouldBeFalse)
		So(c.Has("b"), ShouldBeTrue)
	})

}

func TestAttrMapEmptySetErasure(t *testing.T) {

	Convey("Setting an empty value set removes the attribute key", t, func() {
		a := AttrMap{"x": NewValues("1")}
		a.Set("x", nil)
		_, ok := a["x"]
		So(ok, ShouldBeFalse)
	})

	Convey("Setting a non-empty value set keeps the attribute key", t, func() {
		a := AttrMap{}
		a.Set("x", NewValues("1", "2"))
		So(a["x"].Has("1"), ShouldBeTrue)
		So(a["x"].Has("2"), ShouldBeTrue)
	})

}
