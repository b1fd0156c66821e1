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

package cli

var flags = map[string]string{
	"db":        `Backend datastore selector url, e.g. memory://, file://./data, bolt://./basicdb.db, mongodb://host/db.`,
	"auth":      `Master authentication details, used when connecting to the query API, in user:pass form.`,
	"auth-user": `The username to use for the query API. Use this as an alternative to the --auth flag.`,
	"auth-pass": `The password to use for the query API. Use this as an alternative to the --auth flag.`,
	"port-web":  `The port on which to serve the query API.`,
}

// flag looks up the long-form help text for a flag name, falling back
// to an empty string for undocumented flags.
func flag(n string) string {
	return flags[n]
}
