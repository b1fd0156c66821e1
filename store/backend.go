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

// Package store defines the abstract storage-backend contract and its
// layered default behavior: concrete backends implement a handful of
// leaves, and Base derives the rest.
package store

import "github.com/basicdb/basicdb/kv"

// Metadata is the live-computed summary returned by DomainMetadata.
type Metadata struct {
	ItemCount                uint64
	ItemNamesSizeBytes       uint64
	AttributeNameCount       uint64
	AttributeNamesSizeBytes  uint64
	AttributeValueCount      uint64
	AttributeValuesSizeBytes uint64
	Timestamp                int64
}

// Backend declares the leaves every concrete storage engine must
// implement. Base supplies every other operation on top of these.
type Backend interface {

	CreateDomain(owner, domain string) error
	DeleteDomain(owner, domain string) error
	ListDomains(owner string) ([]string, error)
	DomainMetadata(owner, domain string) (Metadata, error)

	GetAttributes(owner, domain, item string) (kv.AttrMap, error)
	AddAttributeValue(owner, domain, item, attr, value string) error
	DeleteAttributeAll(owner, domain, item, attr string) error
	DeleteAttributeValue(owner, domain, item, attr, value string) error

	// Items returns every item in a domain, for use by the select
	// driver. None of the concrete backends push the WHERE expression
	// down into their medium (spec allows the client-side fallback);
	// Items is the one required fetch-all leaf that makes that
	// fallback possible.
	Items(owner, domain string) (map[string]kv.AttrMap, error)

	// Reset clears all state for one owner. Test-only; not part of
	// the wire-facing action set.
	Reset(owner string) error
}
