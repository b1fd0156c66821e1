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

package cnf

// Options defines global configuration options for the server and cli.
type Options struct {

	DB struct {
		Path string // Backend selector URL, e.g. memory://, file://./data, bolt://./basicdb.db, mongodb://host/db
	}

	Port struct {
		Web int // Port to serve the http query API on
	}

	Auth struct {
		Auth string // Master authentication details in user:pass form
		User string // Master authentication username
		Pass string // Master authentication password
	}

	Logging struct {
		Level  string // Logging level: trace, debug, info, warn, error, fatal, panic
		Output string // Logging output: stdout, stderr, none
		Format string // Logging format: text, json
	}
}

// Settings holds the options the running process was configured with,
// set once by cli.setup() after flag parsing. Packages that can't
// receive *Options through a constructor (e.g. web/auth.go in the
// teacher) read it directly.
var Settings *Options
