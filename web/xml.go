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
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type responseMetadata struct {
	RequestId string `xml:"RequestId"`
	BoxUsage  string `xml:"BoxUsage"`
}

type attributePair struct {
	Name  string `xml:"Name"`
	Value string `xml:"Value"`
}

type selectItem struct {
	Name      string          `xml:"Name"`
	Attribute []attributePair `xml:"Attribute"`
}

type domainMetadataFields struct {
	ItemCount                uint64 `xml:"ItemCount"`
	ItemNamesSizeBytes       uint64 `xml:"ItemNamesSizeBytes"`
	AttributeNameCount       uint64 `xml:"AttributeNameCount"`
	AttributeNamesSizeBytes  uint64 `xml:"AttributeNamesSizeBytes"`
	AttributeValueCount      uint64 `xml:"AttributeValueCount"`
	AttributeValuesSizeBytes uint64 `xml:"AttributeValuesSizeBytes"`
	Timestamp                int64  `xml:"Timestamp"`
}

// actionResponse is the single envelope shape spec.md calls for: a root
// <ActionResponse> holding whichever action-specific child elements
// apply, plus the always-present <ResponseMetadata>.
type actionResponse struct {
	XMLName    xml.Name              `xml:"ActionResponse"`
	DomainName []string              `xml:"DomainName,omitempty"`
	Metadata   *domainMetadataFields `xml:"DomainMetadata,omitempty"`
	Attribute  []attributePair       `xml:"Attribute,omitempty"`
	Item       []selectItem          `xml:"Item,omitempty"`

	ResponseMetadata responseMetadata `xml:"ResponseMetadata"`
}

func newResponse(started time.Time) *actionResponse {
	return &actionResponse{
		ResponseMetadata: responseMetadata{
			RequestId: uuid.NewString(),
			BoxUsage:  fmt.Sprintf("%.7f", time.Since(started).Seconds()),
		},
	}
}

func writeXML(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	enc.Encode(v)
}
