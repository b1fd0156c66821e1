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

// Package fsdb is the filesystem backend: each (owner, domain) is a
// directory, each item a subdirectory, each attribute a subdirectory
// of that, and each value a file named by its MD5 digest.
package fsdb

import (
	"crypto/md5"
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/basicdb/basicdb/cnf"
	"github.com/basicdb/basicdb/kv"
	"github.com/basicdb/basicdb/store"
)

func init() {
	store.Register("file", func(opts *cnf.Options) (*store.Base, error) {
		base := strings.TrimPrefix(opts.DB.Path, "file://")
		if err := os.MkdirAll(base, 0755); err != nil {
			return nil, err
		}
		return store.NewBase(New(base)), nil
	})
}

// Backend is the filesystem leaf implementation.
type Backend struct {
	base string
}

// New returns a filesystem backend rooted at base.
func New(base string) *Backend {
	return &Backend{base: base}
}

func (b *Backend) domainDir(owner, domain string) string {
	return filepath.Join(b.base, owner, domain)
}

func (b *Backend) itemDir(owner, domain, item string) string {
	return filepath.Join(b.domainDir(owner, domain), item)
}

func (b *Backend) attrDir(owner, domain, item, attr string) string {
	return filepath.Join(b.itemDir(owner, domain, item), attr)
}

// digest names a value file by its MD5 hex digest -- value uniqueness
// is enforced by digest collision in the filename, which lets any
// byte sequence be stored safely regardless of filesystem-unsafe
// characters.
func digest(value string) string {
	sum := md5.Sum([]byte(value))
	return hex.EncodeToString(sum[:])
}

func (b *Backend) CreateDomain(owner, domain string) error {
	return os.MkdirAll(b.domainDir(owner, domain), 0755)
}

func (b *Backend) DeleteDomain(owner, domain string) error {
	return os.RemoveAll(b.domainDir(owner, domain))
}

func (b *Backend) ListDomains(owner string) ([]string, error) {

	entries, err := ioutil.ReadDir(filepath.Join(b.base, owner))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}

	return out, nil

}

func (b *Backend) DomainMetadata(owner, domain string) (store.Metadata, error) {

	var md store.Metadata
	md.Timestamp = time.Now().Unix()

	items, err := ioutil.ReadDir(b.domainDir(owner, domain))
	if os.IsNotExist(err) {
		return md, nil
	}
	if err != nil {
		return md, err
	}

	attrNames := map[string]bool{}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		md.ItemCount++
		md.ItemNamesSizeBytes += uint64(len(item.Name()))

		attrs, err := ioutil.ReadDir(filepath.Join(b.domainDir(owner, domain), item.Name()))
		if err != nil {
			continue
		}

		for _, attr := range attrs {
			if !attr.IsDir() {
				continue
			}
			attrNames[attr.Name()] = true

			values, err := ioutil.ReadDir(filepath.Join(b.domainDir(owner, domain), item.Name(), attr.Name()))
			if err != nil {
				continue
			}
			for _, vf := range values {
				if vf.IsDir() {
					continue
				}
				md.AttributeValueCount++
				md.AttributeValuesSizeBytes += uint64(vf.Size())
			}
		}
	}

	md.AttributeNameCount = uint64(len(attrNames))
	for name := range attrNames {
		md.AttributeNamesSizeBytes += uint64(len(name))
	}

	return md, nil

}

func (b *Backend) GetAttributes(owner, domain, item string) (kv.AttrMap, error) {

	out := kv.AttrMap{}

	attrDirs, err := ioutil.ReadDir(b.itemDir(owner, domain, item))
	if os.IsNotExist(err) {
		return out, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "fsdb: reading item directory for %s/%s/%s", owner, domain, item)
	}

	for _, a := range attrDirs {
		if !a.IsDir() {
			continue
		}
		values, err := b.readValues(owner, domain, item, a.Name())
		if err != nil {
			return nil, err
		}
		out.Set(a.Name(), values)
	}

	return out, nil

}

func (b *Backend) readValues(owner, domain, item, attr string) (kv.Values, error) {

	files, err := ioutil.ReadDir(b.attrDir(owner, domain, item, attr))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "fsdb: reading attribute directory for %s/%s/%s/%s", owner, domain, item, attr)
	}

	var out kv.Values
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		content, err := ioutil.ReadFile(filepath.Join(b.attrDir(owner, domain, item, attr), f.Name()))
		if err != nil {
			continue
		}
		out = out.Add(string(content))
	}

	return out, nil

}

func (b *Backend) AddAttributeValue(owner, domain, item, attr, value string) error {
	dir := b.attrDir(owner, domain, item, attr)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return ioutil.WriteFile(filepath.Join(dir, digest(value)), []byte(value), 0644)
}

func (b *Backend) DeleteAttributeAll(owner, domain, item, attr string) error {
	return os.RemoveAll(b.attrDir(owner, domain, item, attr))
}

func (b *Backend) DeleteAttributeValue(owner, domain, item, attr, value string) error {

	dir := b.attrDir(owner, domain, item, attr)

	if err := os.Remove(filepath.Join(dir, digest(value))); err != nil && !os.IsNotExist(err) {
		return err
	}

	if entries, err := ioutil.ReadDir(dir); err == nil && len(entries) == 0 {
		os.Remove(dir)
	}

	return nil

}

func (b *Backend) Items(owner, domain string) (map[string]kv.AttrMap, error) {

	out := map[string]kv.AttrMap{}

	entries, err := ioutil.ReadDir(b.domainDir(owner, domain))
	if os.IsNotExist(err) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		attrs, err := b.GetAttributes(owner, domain, e.Name())
		if err != nil {
			return nil, err
		}
		out[e.Name()] = attrs
	}

	return out, nil

}

func (b *Backend) Reset(owner string) error {
	return os.RemoveAll(filepath.Join(b.base, owner))
}
