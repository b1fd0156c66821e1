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

package ql

import (
	"errors"
	"fmt"
	"strings"
)

// ParseError is returned for any input the scanner/parser rejects.
// Callers that need to map it onto a wire error kind (the core itself
// does not define HTTP-facing error kinds) can type-assert for it.
type ParseError struct {
	Found    string
	Expected []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("found `%s` but expected one of: %s", e.Found, strings.Join(e.Expected, ", "))
}

// ErrInvalidSort is returned by Run when an ORDER BY key other than
// itemName() is not also referenced as an identifier (bare or inside
// every()) in the WHERE clause.
var ErrInvalidSort = errors.New("ORDER BY key must appear as an identifier in the WHERE expression")
