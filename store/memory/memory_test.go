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

package memory

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/basicdb/basicdb/store/storetest"
)

func TestMemoryBackendConformance(t *testing.T) {
	storetest.Run(t, New())
}

func TestMemoryBackendConcurrentWrites(t *testing.T) {
	Convey("Concurrent AddAttributeValue calls never lose a value", t, func() {

		b := New()
		So(b.CreateDomain("acme", "widgets"), ShouldBeNil)

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				b.AddAttributeValue("acme", "widgets", "item1", "Tag", string(rune('a'+n%26)))
			}(i)
		}
		wg.Wait()

		attrs, err := b.GetAttributes("acme", "widgets", "item1")
		So(err, ShouldBeNil)
		So(len(attrs["Tag"]), ShouldEqual, 26)

	})
}
