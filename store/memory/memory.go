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

// Package memory is the reference backend: nested maps mirroring the
// value model exactly, guarded by a single process-wide lock.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/basicdb/basicdb/cnf"
	"github.com/basicdb/basicdb/kv"
	"github.com/basicdb/basicdb/store"
)

func init() {
	store.Register("memory", func(opts *cnf.Options) (*store.Base, error) {
		return store.NewBase(New()), nil
	})
}

type domain map[string]kv.AttrMap // item -> attrs

// Backend is the in-memory leaf implementation. All requests for all
// owners share this one structure -- concurrent reads are allowed,
// writes are exclusive.
type Backend struct {
	mu   sync.RWMutex
	data map[string]map[string]domain // owner -> domain name -> domain
}

// New returns an empty in-memory backend.
func New() *Backend {
	return &Backend{data: make(map[string]map[string]domain)}
}

func (b *Backend) CreateDomain(owner, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data[owner] == nil {
		b.data[owner] = make(map[string]domain)
	}
	if _, ok := b.data[owner][name]; !ok {
		b.data[owner][name] = make(domain)
	}
	return nil
}

func (b *Backend) DeleteDomain(owner, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if owned, ok := b.data[owner]; ok {
		delete(owned, name)
	}
	return nil
}

func (b *Backend) ListDomains(owner string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.data[owner]))
	for name := range b.data[owner] {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func (b *Backend) DomainMetadata(owner, name string) (store.Metadata, error) {

	b.mu.RLock()
	defer b.mu.RUnlock()

	var md store.Metadata
	md.Timestamp = time.Now().Unix()

	dom := b.data[owner][name]
	md.ItemCount = uint64(len(dom))

	attrNames := map[string]bool{}

	for itemName, attrs := range dom {
		md.ItemNamesSizeBytes += uint64(len(itemName))
		for attrName, values := range attrs {
			attrNames[attrName] = true
			md.AttributeValueCount += uint64(len(values))
			for _, v := range values {
				md.AttributeValuesSizeBytes += uint64(len(v))
			}
		}
	}

	md.AttributeNameCount = uint64(len(attrNames))
	for name := range attrNames {
		md.AttributeNamesSizeBytes += uint64(len(name))
	}

	return md, nil

}

func (b *Backend) GetAttributes(owner, domainName, item string) (kv.AttrMap, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	attrs := b.data[owner][domainName][item]
	return attrs.Clone(), nil
}

func (b *Backend) AddAttributeValue(owner, domainName, item, attr, value string) error {

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.data[owner] == nil {
		b.data[owner] = make(map[string]domain)
	}
	if b.data[owner][domainName] == nil {
		b.data[owner][domainName] = make(domain)
	}
	if b.data[owner][domainName][item] == nil {
		b.data[owner][domainName][item] = kv.AttrMap{}
	}

	attrs := b.data[owner][domainName][item]
	attrs.Set(attr, attrs[attr].Add(value))

	return nil

}

func (b *Backend) DeleteAttributeAll(owner, domainName, item, attr string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if attrs, ok := b.data[owner][domainName][item]; ok {
		delete(attrs, attr)
	}
	return nil
}

func (b *Backend) DeleteAttributeValue(owner, domainName, item, attr, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	attrs, ok := b.data[owner][domainName][item]
	if !ok {
		return nil
	}
	attrs.Set(attr, attrs[attr].Remove(value))
	return nil
}

func (b *Backend) Items(owner, domainName string) (map[string]kv.AttrMap, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]kv.AttrMap, len(b.data[owner][domainName]))
	for item, attrs := range b.data[owner][domainName] {
		out[item] = attrs.Clone()
	}
	return out, nil
}

func (b *Backend) Reset(owner string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, owner)
	return nil
}
