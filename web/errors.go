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

import (
	"encoding/xml"
	"net/http"

	"github.com/basicdb/basicdb/store"
)

type errorEnvelope struct {
	XMLName xml.Name
	Message string `xml:"Message"`
}

// writeError maps a store.Error onto its XML element name and HTTP
// status (spec.md §7); anything else becomes a generic 500.
func writeError(w http.ResponseWriter, err error) {

	name := "InternalError"
	status := http.StatusInternalServerError

	if se, ok := err.(*store.Error); ok {
		name = se.Name()
		status = se.Status()
	}

	writeXML(w, status, &errorEnvelope{
		XMLName: xml.Name{Local: name},
		Message: err.Error(),
	})

}
