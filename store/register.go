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
	"fmt"
	"strings"

	"github.com/basicdb/basicdb/cnf"
)

// Constructor builds a Base-wrapped backend from the configured
// options. Concrete backend packages register one of these in an
// init() function, mirroring the teacher's kvs.Register / stores.Register
// pattern.
type Constructor func(opts *cnf.Options) (*Base, error)

var registry = map[string]Constructor{}

// Register associates a URL scheme (the part of cnf.Options.DB.Path
// before "://") with a backend constructor.
func Register(scheme string, ctor Constructor) {
	registry[scheme] = ctor
}

// Open selects and constructs the backend named by opts.DB.Path's
// scheme.
func Open(opts *cnf.Options) (*Base, error) {

	scheme := schemeOf(opts.DB.Path)

	ctor, ok := registry[scheme]
	if !ok {
		return nil, fmt.Errorf("store: no backend registered for scheme %q", scheme)
	}

	return ctor(opts)

}

func schemeOf(path string) string {
	if i := strings.Index(path, "://"); i >= 0 {
		return path[:i]
	}
	return path
}
