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

// Package mongodoc is the remote-store backend: one "owners" collection
// mapping each owner to its domains' bucket collection names, and one
// collection per domain holding one document per item.
package mongodoc

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/basicdb/basicdb/cnf"
	"github.com/basicdb/basicdb/kv"
	"github.com/basicdb/basicdb/store"
)

func init() {
	store.Register("mongodb", func(opts *cnf.Options) (*store.Base, error) {
		backend, err := New(opts.DB.Path)
		if err != nil {
			return nil, err
		}
		return store.NewBase(backend), nil
	})
}

// Backend is the mgo.v2 leaf implementation.
type Backend struct {
	session *mgo.Session
	dbName  string
}

// New dials uri and returns a backend using its path component as the
// database name (defaulting to "basicdb").
func New(uri string) (*Backend, error) {

	session, err := mgo.Dial(uri)
	if err != nil {
		return nil, err
	}
	session.SetMode(mgo.Monotonic, true)

	dbName := "basicdb"
	rest := strings.TrimPrefix(uri, "mongodb://")
	if i := strings.Index(rest, "/"); i >= 0 {
		path := rest[i+1:]
		if j := strings.Index(path, "?"); j >= 0 {
			path = path[:j]
		}
		if path != "" {
			dbName = path
		}
	}

	return &Backend{session: session, dbName: dbName}, nil

}

type ownerDoc struct {
	ID      string            `bson:"_id"`
	Domains map[string]string `bson:"domains"` // domain name -> bucket collection name
}

type itemDoc struct {
	ID    string              `bson:"_id"`
	Attrs map[string][]string `bson:"attrs"`
}

func (b *Backend) copy() (*mgo.Session, *mgo.Database) {
	s := b.session.Copy()
	return s, s.DB(b.dbName)
}

func (b *Backend) owners(db *mgo.Database) *mgo.Collection {
	return db.C("owners")
}

// bucketName derives a collection-safe, collision-resistant name for
// an owner/domain pair.
func bucketName(owner, domain string) string {
	sum := sha1.Sum([]byte(owner + "\x00" + domain))
	return "dom_" + hex.EncodeToString(sum[:])
}

func (b *Backend) CreateDomain(owner, domain string) error {

	s, db := b.copy()
	defer s.Close()

	bucket := bucketName(owner, domain)

	_, err := b.owners(db).UpsertId(owner, bson.M{
		"$set": bson.M{"domains." + domain: bucket},
	})

	return err

}

func (b *Backend) DeleteDomain(owner, domain string) error {

	s, db := b.copy()
	defer s.Close()

	if err := db.C(bucketName(owner, domain)).DropCollection(); err != nil && err != mgo.ErrNotFound {
		return err
	}

	err := b.owners(db).UpdateId(owner, bson.M{
		"$unset": bson.M{"domains." + domain: ""},
	})
	if err == mgo.ErrNotFound {
		return nil
	}

	return err

}

func (b *Backend) ListDomains(owner string) ([]string, error) {

	s, db := b.copy()
	defer s.Close()

	var doc ownerDoc
	err := b.owners(db).FindId(owner).One(&doc)
	if err == mgo.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(doc.Domains))
	for name := range doc.Domains {
		out = append(out, name)
	}

	return out, nil

}

func (b *Backend) DomainMetadata(owner, domain string) (store.Metadata, error) {

	var md store.Metadata
	md.Timestamp = time.Now().Unix()

	items, err := b.Items(owner, domain)
	if err != nil {
		return md, err
	}

	attrNames := map[string]bool{}

	for itemName, attrs := range items {
		md.ItemCount++
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

func (b *Backend) bucket(db *mgo.Database, owner, domain string) *mgo.Collection {
	return db.C(bucketName(owner, domain))
}

func (b *Backend) GetAttributes(owner, domain, item string) (kv.AttrMap, error) {

	s, db := b.copy()
	defer s.Close()

	var doc itemDoc
	err := b.bucket(db, owner, domain).FindId(item).One(&doc)
	if err == mgo.ErrNotFound {
		return kv.AttrMap{}, nil
	}
	if err != nil {
		return nil, err
	}

	return attrMapFromDoc(doc), nil

}

func attrMapFromDoc(doc itemDoc) kv.AttrMap {
	out := kv.AttrMap{}
	for attr, values := range doc.Attrs {
		out.Set(attr, kv.Values(values))
	}
	return out
}

func (b *Backend) AddAttributeValue(owner, domain, item, attr, value string) error {

	s, db := b.copy()
	defer s.Close()

	var doc itemDoc
	err := b.bucket(db, owner, domain).FindId(item).One(&doc)
	if err != nil && err != mgo.ErrNotFound {
		return err
	}
	if doc.Attrs == nil {
		doc.Attrs = map[string][]string{}
	}

	values := kv.Values(doc.Attrs[attr]).Add(value)
	doc.Attrs[attr] = []string(values)
	doc.ID = item

	_, err = b.bucket(db, owner, domain).UpsertId(item, doc)
	return err

}

func (b *Backend) DeleteAttributeAll(owner, domain, item, attr string) error {

	s, db := b.copy()
	defer s.Close()

	err := b.bucket(db, owner, domain).UpdateId(item, bson.M{
		"$unset": bson.M{"attrs." + attr: ""},
	})
	if err == mgo.ErrNotFound {
		return nil
	}

	return err

}

func (b *Backend) DeleteAttributeValue(owner, domain, item, attr, value string) error {

	s, db := b.copy()
	defer s.Close()

	var doc itemDoc
	err := b.bucket(db, owner, domain).FindId(item).One(&doc)
	if err == mgo.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	values := kv.Values(doc.Attrs[attr]).Remove(value)
	if len(values) == 0 {
		delete(doc.Attrs, attr)
	} else {
		doc.Attrs[attr] = []string(values)
	}

	return b.bucket(db, owner, domain).UpdateId(item, bson.M{"$set": bson.M{"attrs": doc.Attrs}})

}

func (b *Backend) Items(owner, domain string) (map[string]kv.AttrMap, error) {

	s, db := b.copy()
	defer s.Close()

	var docs []itemDoc
	if err := b.bucket(db, owner, domain).Find(nil).All(&docs); err != nil {
		return nil, err
	}

	out := make(map[string]kv.AttrMap, len(docs))
	for _, doc := range docs {
		out[doc.ID] = attrMapFromDoc(doc)
	}

	return out, nil

}

func (b *Backend) Reset(owner string) error {

	s, db := b.copy()
	defer s.Close()

	var doc ownerDoc
	err := b.owners(db).FindId(owner).One(&doc)
	if err == mgo.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	for domain := range doc.Domains {
		if err := db.C(bucketName(owner, domain)).DropCollection(); err != nil && err != mgo.ErrNotFound {
			return err
		}
	}

	err = b.owners(db).RemoveId(owner)
	if err == mgo.ErrNotFound {
		return nil
	}

	return err

}
