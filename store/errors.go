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

package store

import "github.com/basicdb/basicdb/ql"

// Kind names one of the six wire-facing error kinds.
type Kind int

const (
	_ Kind = iota
	KindConditionalCheckFailed
	KindInvalidQueryExpression
	KindInvalidSortExpression
	KindAttributeDoesNotExist
	KindMultiValuedAttribute
	KindUnknownAction
)

var statusByKind = map[Kind]int{
	KindConditionalCheckFailed: 409,
	KindInvalidQueryExpression: 400,
	KindInvalidSortExpression:  400,
	KindAttributeDoesNotExist:  404,
	KindMultiValuedAttribute:   409,
	KindUnknownAction:          500,
}

var nameByKind = map[Kind]string{
	KindConditionalCheckFailed: "ConditionalCheckFailed",
	KindInvalidQueryExpression: "InvalidQueryExpression",
	KindInvalidSortExpression:  "InvalidSortExpression",
	KindAttributeDoesNotExist:  "AttributeDoesNotExist",
	KindMultiValuedAttribute:   "MultiValuedAttribute",
	KindUnknownAction:          "UnknownAction",
}

// Error is a typed error carrying one of the six wire-facing kinds and
// the HTTP status it maps to.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Name is the XML element name the error maps to on the wire.
func (e *Error) Name() string { return nameByKind[e.Kind] }

// Status is the HTTP status code the error maps to.
func (e *Error) Status() int { return statusByKind[e.Kind] }

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func errConditionalCheckFailed(msg string) *Error { return newError(KindConditionalCheckFailed, msg) }
func errInvalidQueryExpression(msg string) *Error { return newError(KindInvalidQueryExpression, msg) }
func errInvalidSortExpression(msg string) *Error  { return newError(KindInvalidSortExpression, msg) }
func errAttributeDoesNotExist(msg string) *Error  { return newError(KindAttributeDoesNotExist, msg) }
func errMultiValuedAttribute(msg string) *Error   { return newError(KindMultiValuedAttribute, msg) }

// ErrUnknownAction is returned by the HTTP decoder for an unrecognized
// Action parameter.
func ErrUnknownAction(action string) *Error {
	return newError(KindUnknownAction, "unknown action: "+action)
}

// TranslateQueryError maps a ql package error onto the wire-facing
// kinds. ql has no dependency on store (to avoid an import cycle), so
// this translation lives here instead of in ql itself. Exported so the
// HTTP front-end can apply it to a parse error too, not just the
// sort error Select surfaces from ql.Run.
func TranslateQueryError(err error) error {
	if err == nil {
		return nil
	}
	if err == ql.ErrInvalidSort {
		return errInvalidSortExpression(err.Error())
	}
	if _, ok := err.(*ql.ParseError); ok {
		return errInvalidQueryExpression(err.Error())
	}
	return errInvalidQueryExpression(err.Error())
}
