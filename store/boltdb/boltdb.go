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

// Package boltdb is the single-file embedded backend: one bucket tree
// per owner, nested down to domain, then item, with attribute values
// held as a JSON-encoded list under the attribute name.
package boltdb

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/boltdb/bolt"

	"github.com/basicdb/basicdb/cnf"
	"github.com/basicdb/basicdb/kv"
	"github.com/basicdb/basicdb/store"
)

func init() {
	store.Register("bolt", func(opts *cnf.Options) (*store.Base, error) {
		path := strings.TrimPrefix(opts.DB.Path, "bolt://")
		backend, err := New(path)
		if err != nil {
			return nil, err
		}
		return store.NewBase(backend), nil
	})
}

var ownersBucket = []byte("owners")

// Backend is the BoltDB leaf implementation.
type Backend struct {
	db *bolt.DB
}

// New opens (creating if necessary) the bolt file at path.
func New(path string) (*Backend, error) {

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(ownersBucket)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Backend{db: db}, nil

}

func (b *Backend) CreateDomain(owner, domain string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		owners, err := tx.Bucket(ownersBucket).CreateBucketIfNotExists([]byte(owner))
		if err != nil {
			return err
		}
		_, err = owners.CreateBucketIfNotExists([]byte(domain))
		return err
	})
}

func (b *Backend) DeleteDomain(owner, domain string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		owners := tx.Bucket(ownersBucket).Bucket([]byte(owner))
		if owners == nil {
			return nil
		}
		if owners.Bucket([]byte(domain)) == nil {
			return nil
		}
		return owners.DeleteBucket([]byte(domain))
	})
}

func (b *Backend) ListDomains(owner string) ([]string, error) {

	var out []string

	err := b.db.View(func(tx *bolt.Tx) error {
		owners := tx.Bucket(ownersBucket).Bucket([]byte(owner))
		if owners == nil {
			return nil
		}
		return owners.ForEach(func(name, v []byte) error {
			if v == nil { // nested bucket, not a plain key
				out = append(out, string(name))
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(out)
	return out, nil

}

func (b *Backend) DomainMetadata(owner, domain string) (store.Metadata, error) {

	var md store.Metadata
	md.Timestamp = time.Now().Unix()

	err := b.db.View(func(tx *bolt.Tx) error {

		dom := domainBucket(tx, owner, domain)
		if dom == nil {
			return nil
		}

		attrNames := map[string]bool{}

		err := dom.ForEach(func(itemName, v []byte) error {
			if v != nil {
				return nil
			}
			item := dom.Bucket(itemName)
			md.ItemCount++
			md.ItemNamesSizeBytes += uint64(len(itemName))
			return item.ForEach(func(attr, raw []byte) error {
				attrNames[string(attr)] = true
				values, err := decodeValues(raw)
				if err != nil {
					return err
				}
				md.AttributeValueCount += uint64(len(values))
				for _, v := range values {
					md.AttributeValuesSizeBytes += uint64(len(v))
				}
				return nil
			})
		})
		if err != nil {
			return err
		}

		md.AttributeNameCount = uint64(len(attrNames))
		for name := range attrNames {
			md.AttributeNamesSizeBytes += uint64(len(name))
		}

		return nil

	})
	if err != nil {
		return md, err
	}

	return md, nil

}

func domainBucket(tx *bolt.Tx, owner, domain string) *bolt.Bucket {
	owners := tx.Bucket(ownersBucket).Bucket([]byte(owner))
	if owners == nil {
		return nil
	}
	return owners.Bucket([]byte(domain))
}

func decodeValues(raw []byte) (kv.Values, error) {
	if raw == nil {
		return nil, nil
	}
	var out kv.Values
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeValues(values kv.Values) ([]byte, error) {
	return json.Marshal(values)
}

func (b *Backend) GetAttributes(owner, domain, item string) (kv.AttrMap, error) {

	out := kv.AttrMap{}

	err := b.db.View(func(tx *bolt.Tx) error {
		dom := domainBucket(tx, owner, domain)
		if dom == nil {
			return nil
		}
		it := dom.Bucket([]byte(item))
		if it == nil {
			return nil
		}
		return it.ForEach(func(attr, raw []byte) error {
			values, err := decodeValues(raw)
			if err != nil {
				return err
			}
			out.Set(string(attr), values)
			return nil
		})
	})

	return out, err

}

func (b *Backend) AddAttributeValue(owner, domain, item, attr, value string) error {
	return b.db.Update(func(tx *bolt.Tx) error {

		owners, err := tx.Bucket(ownersBucket).CreateBucketIfNotExists([]byte(owner))
		if err != nil {
			return err
		}
		dom, err := owners.CreateBucketIfNotExists([]byte(domain))
		if err != nil {
			return err
		}
		it, err := dom.CreateBucketIfNotExists([]byte(item))
		if err != nil {
			return err
		}

		values, err := decodeValues(it.Get([]byte(attr)))
		if err != nil {
			return err
		}
		values = values.Add(value)

		raw, err := encodeValues(values)
		if err != nil {
			return err
		}

		return it.Put([]byte(attr), raw)

	})
}

func (b *Backend) DeleteAttributeAll(owner, domain, item, attr string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		dom := domainBucket(tx, owner, domain)
		if dom == nil {
			return nil
		}
		it := dom.Bucket([]byte(item))
		if it == nil {
			return nil
		}
		return it.Delete([]byte(attr))
	})
}

func (b *Backend) DeleteAttributeValue(owner, domain, item, attr, value string) error {
	return b.db.Update(func(tx *bolt.Tx) error {

		dom := domainBucket(tx, owner, domain)
		if dom == nil {
			return nil
		}
		it := dom.Bucket([]byte(item))
		if it == nil {
			return nil
		}

		values, err := decodeValues(it.Get([]byte(attr)))
		if err != nil {
			return err
		}

		values = values.Remove(value)
		if len(values) == 0 {
			return it.Delete([]byte(attr))
		}

		raw, err := encodeValues(values)
		if err != nil {
			return err
		}

		return it.Put([]byte(attr), raw)

	})
}

func (b *Backend) Items(owner, domain string) (map[string]kv.AttrMap, error) {

	out := map[string]kv.AttrMap{}

	err := b.db.View(func(tx *bolt.Tx) error {

		dom := domainBucket(tx, owner, domain)
		if dom == nil {
			return nil
		}

		return dom.ForEach(func(itemName, v []byte) error {
			if v != nil {
				return nil
			}
			it := dom.Bucket(itemName)
			attrs := kv.AttrMap{}
			err := it.ForEach(func(attr, raw []byte) error {
				values, err := decodeValues(raw)
				if err != nil {
					return err
				}
				attrs.Set(string(attr), values)
				return nil
			})
			if err != nil {
				return err
			}
			out[string(itemName)] = attrs
			return nil
		})

	})

	return out, err

}

func (b *Backend) Reset(owner string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		owners := tx.Bucket(ownersBucket)
		if owners.Bucket([]byte(owner)) == nil {
			return nil
		}
		return owners.DeleteBucket([]byte(owner))
	})
}
