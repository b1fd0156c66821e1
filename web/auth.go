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

import "net/http"

// ownerFrom extracts the owner id a prior authentication filter would
// have populated -- either a dedicated header or the HTTP basic-auth
// username. No credential is verified here; this is a stub, as spec'd.
func ownerFrom(r *http.Request) string {

	if owner := r.Header.Get("X-Auth-Owner"); owner != "" {
		return owner
	}

	if user, _, ok := r.BasicAuth(); ok {
		return user
	}

	return ""

}
