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
	"strconv"
	"strings"
)

// Parser turns SELECT text into a Statement.
type Parser struct {
	s   *Scanner
	buf struct {
		n   int
		tok Token
		lit string
	}
}

// Parse parses a single SELECT statement.
func Parse(text string) (*Statement, error) {
	p := &Parser{s: NewScanner(strings.NewReader(text))}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if tok, lit, _ := p.shouldBe(EOF); tok != EOF {
		return nil, &ParseError{Found: lit, Expected: []string{"end of query"}}
	}
	return stmt, nil
}

func (p *Parser) scan() (tok Token, lit string) {
	tok, lit = p.seek()
	for tok == WS {
		tok, lit = p.seek()
	}
	return
}

func (p *Parser) seek() (tok Token, lit string) {
	if p.buf.n != 0 {
		p.buf.n = 0
		return p.buf.tok, p.buf.lit
	}
	tok, lit = p.s.Scan()
	p.buf.tok, p.buf.lit = tok, lit
	return
}

func (p *Parser) unscan() {
	p.buf.n = 1
}

func (p *Parser) in(tok Token, set []Token) bool {
	for _, t := range set {
		if tok == t {
			return true
		}
	}
	return false
}

func (p *Parser) mightBe(expected ...Token) (tok Token, lit string, found bool) {
	tok, lit = p.scan()
	if found = p.in(tok, expected); !found {
		p.unscan()
	}
	return
}

func (p *Parser) shouldBe(expected ...Token) (tok Token, lit string, err error) {
	tok, lit = p.scan()
	if !p.in(tok, expected) {
		p.unscan()
		err = &ParseError{Found: lit, Expected: lookup(expected)}
	}
	return
}

func (p *Parser) parseStatement() (*Statement, error) {

	if _, lit, err := p.shouldBe(SELECT); err != nil {
		return nil, &ParseError{Found: lit, Expected: []string{"SELECT"}}
	}

	stmt := &Statement{}

	cols, count, err := p.parseColumns()
	if err != nil {
		return nil, err
	}
	stmt.Columns, stmt.Count = cols, count

	if _, lit, err := p.shouldBe(FROM); err != nil {
		return nil, &ParseError{Found: lit, Expected: []string{"FROM"}}
	}

	_, lit, err := p.shouldBe(IDENT)
	if err != nil {
		return nil, &ParseError{Found: lit, Expected: []string{"table name"}}
	}
	stmt.Table = lit

	if _, _, exists := p.mightBe(WHERE); exists {
		where, err := p.parseIntersection()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}

	if _, _, exists := p.mightBe(ORDER); exists {
		if _, lit, err := p.shouldBe(BY); err != nil {
			return nil, &ParseError{Found: lit, Expected: []string{"BY"}}
		}
		tok, lit, err := p.shouldBe(IDENT, ITEMNAME)
		if err != nil {
			return nil, &ParseError{Found: lit, Expected: []string{"order key"}}
		}
		if tok == ITEMNAME {
			if _, lit, err := p.shouldBe(LPAREN); err != nil {
				return nil, &ParseError{Found: lit, Expected: []string{"("}}
			}
			if _, lit, err := p.shouldBe(RPAREN); err != nil {
				return nil, &ParseError{Found: lit, Expected: []string{")"}}
			}
			stmt.OrderBy = "itemName()"
		} else {
			stmt.OrderBy = lit
		}
		if _, _, exists := p.mightBe(DESC); exists {
			stmt.Desc = true
		} else {
			p.mightBe(ASC)
		}
	}

	if _, _, exists := p.mightBe(LIMIT); exists {
		_, lit, err := p.shouldBe(NUMBER)
		if err != nil {
			return nil, &ParseError{Found: lit, Expected: []string{"integer"}}
		}
		n, convErr := strconv.Atoi(lit)
		if convErr != nil {
			return nil, &ParseError{Found: lit, Expected: []string{"integer"}}
		}
		stmt.Limit = n
	}

	return stmt, nil

}

// parseColumns parses the result_column production: '*', 'count(*)',
// or a comma-separated identifier list.
func (p *Parser) parseColumns() (cols []string, count bool, err error) {

	if _, _, exists := p.mightBe(STAR); exists {
		return nil, false, nil
	}

	if _, _, exists := p.mightBe(COUNT); exists {
		if _, lit, err := p.shouldBe(LPAREN); err != nil {
			return nil, false, &ParseError{Found: lit, Expected: []string{"("}}
		}
		if _, lit, err := p.shouldBe(STAR); err != nil {
			return nil, false, &ParseError{Found: lit, Expected: []string{"*"}}
		}
		if _, lit, err := p.shouldBe(RPAREN); err != nil {
			return nil, false, &ParseError{Found: lit, Expected: []string{")"}}
		}
		return nil, true, nil
	}

	for {
		tok, lit, err := p.shouldBe(IDENT, ITEMNAME)
		if err != nil {
			return nil, false, &ParseError{Found: lit, Expected: []string{"column name"}}
		}
		if tok == ITEMNAME {
			if _, lit, err := p.shouldBe(LPAREN); err != nil {
				return nil, false, &ParseError{Found: lit, Expected: []string{"("}}
			}
			if _, lit, err := p.shouldBe(RPAREN); err != nil {
				return nil, false, &ParseError{Found: lit, Expected: []string{")"}}
			}
			cols = append(cols, "itemName()")
		} else {
			cols = append(cols, lit)
		}
		if _, _, exists := p.mightBe(COMMA); !exists {
			break
		}
	}

	return cols, false, nil

}

// --- WHERE expression, precedence order (loosest to tightest):
// INTERSECTION, AND, OR, NOT, BETWEEN/comparison, primary.

func (p *Parser) parseIntersection() (Expr, error) {

	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for {
		if _, _, exists := p.mightBe(INTERSECTION); !exists {
			break
		}
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = &Intersection{LHS: lhs, RHS: rhs}
	}

	return lhs, nil

}

func (p *Parser) parseAnd() (Expr, error) {

	lhs, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	for {
		if _, _, exists := p.mightBe(AND); !exists {
			break
		}
		rhs, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		lhs = &And{LHS: lhs, RHS: rhs}
	}

	return lhs, nil

}

func (p *Parser) parseOr() (Expr, error) {

	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		if _, _, exists := p.mightBe(OR); !exists {
			break
		}
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = &Or{LHS: lhs, RHS: rhs}
	}

	return lhs, nil

}

func (p *Parser) parseUnary() (Expr, error) {

	if _, _, exists := p.mightBe(NOT); exists {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Not{Operand: operand}, nil
	}

	return p.parseComparison()

}

func (p *Parser) parseComparison() (Expr, error) {

	if _, _, exists := p.mightBe(LPAREN); exists {
		sub, err := p.parseIntersection()
		if err != nil {
			return nil, err
		}
		if _, lit, err := p.shouldBe(RPAREN); err != nil {
			return nil, &ParseError{Found: lit, Expected: []string{")"}}
		}
		return sub, nil
	}

	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	tok, lit, err := p.shouldBe(EQ, EQQ, NEQ, LT, LTE, GT, GTE, IN, LIKE, IS, BETWEEN)
	if err != nil {
		return nil, &ParseError{Found: lit, Expected: []string{"comparison operator"}}
	}

	switch tok {

	case IN:
		if _, lit, err := p.shouldBe(LPAREN); err != nil {
			return nil, &ParseError{Found: lit, Expected: []string{"("}}
		}
		if !isIdentKind(lhs) {
			return nil, &ParseError{Found: lit, Expected: []string{"identifier before IN"}}
		}
		list, err := p.parseValueList()
		if err != nil {
			return nil, err
		}
		if _, lit, err := p.shouldBe(RPAREN); err != nil {
			return nil, &ParseError{Found: lit, Expected: []string{")"}}
		}
		return &Comparison{Op: IN, Left: lhs, Right: &ValueList{Values: list}}, nil

	case LIKE:
		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		if err := validateMixed(lhs, rhs); err != nil {
			return nil, err
		}
		return &Comparison{Op: LIKE, Left: lhs, Right: rhs}, nil

	case IS:
		neg := false
		if _, _, exists := p.mightBe(NOT); exists {
			neg = true
		}
		if _, lit, err := p.shouldBe(NULL); err != nil {
			return nil, &ParseError{Found: lit, Expected: []string{"NULL"}}
		}
		if !isIdentKind(lhs) {
			return nil, &ParseError{Found: lit, Expected: []string{"identifier before IS [NOT] NULL"}}
		}
		node := Expr(&IsNull{Operand: lhs})
		if neg {
			node = &Not{Operand: node}
		}
		return node, nil

	case BETWEEN:
		lo, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		if _, lit, err := p.shouldBe(AND); err != nil {
			return nil, &ParseError{Found: lit, Expected: []string{"AND"}}
		}
		hi, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		if err := validateMixed(lhs, lo); err != nil {
			return nil, err
		}
		if err := validateMixed(lhs, hi); err != nil {
			return nil, err
		}
		return &Between{Operand: lhs, Lo: lo, Hi: hi}, nil

	default: // EQ, EQQ, NEQ, LT, LTE, GT, GTE
		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		if err := validateMixed(lhs, rhs); err != nil {
			return nil, err
		}
		return &Comparison{Op: tok, Left: lhs, Right: rhs}, nil

	}

}

// parsePrimary parses a non-boolean operand: a string literal, NULL,
// a bare identifier, itemName(), or every(ident). Bare integers are
// deliberately not accepted here -- the grammar permits only quoted
// strings in comparisons.
func (p *Parser) parsePrimary() (Expr, error) {

	tok, lit, err := p.shouldBe(STRING, NULL, IDENT, ITEMNAME, EVERY)
	if err != nil {
		return nil, &ParseError{Found: lit, Expected: []string{"string literal or identifier"}}
	}

	switch tok {

	case STRING:
		return &Literal{Value: lit}, nil

	case NULL:
		return &Null{}, nil

	case IDENT:
		return &Ident{Name: lit}, nil

	case ITEMNAME:
		if _, lit, err := p.shouldBe(LPAREN); err != nil {
			return nil, &ParseError{Found: lit, Expected: []string{"("}}
		}
		if _, lit, err := p.shouldBe(RPAREN); err != nil {
			return nil, &ParseError{Found: lit, Expected: []string{")"}}
		}
		return &ItemName{}, nil

	case EVERY:
		if _, lit, err := p.shouldBe(LPAREN); err != nil {
			return nil, &ParseError{Found: lit, Expected: []string{"("}}
		}
		_, idLit, err := p.shouldBe(IDENT)
		if err != nil {
			return nil, &ParseError{Found: idLit, Expected: []string{"attribute name"}}
		}
		if _, lit, err := p.shouldBe(RPAREN); err != nil {
			return nil, &ParseError{Found: lit, Expected: []string{")"}}
		}
		return &EveryIdent{Name: idLit}, nil

	}

	return nil, &ParseError{Found: lit, Expected: []string{"operand"}}

}

func (p *Parser) parseValueList() (out []string, err error) {
	for {
		_, lit, err := p.shouldBe(STRING)
		if err != nil {
			return nil, &ParseError{Found: lit, Expected: []string{"string literal"}}
		}
		out = append(out, lit)
		if _, _, exists := p.mightBe(COMMA); !exists {
			break
		}
	}
	return out, nil
}

func isLiteralKind(e Expr) bool {
	switch e.(type) {
	case *Literal, *Null:
		return true
	}
	return false
}

func isIdentKind(e Expr) bool {
	switch e.(type) {
	case *Ident, *EveryIdent, *ItemName:
		return true
	}
	return false
}

// validateMixed rejects comparisons between two literals or between
// two identifiers -- the grammar requires one operand of each kind,
// in either order.
func validateMixed(lhs, rhs Expr) error {
	if isLiteralKind(lhs) && isLiteralKind(rhs) {
		return &ParseError{Found: "literal", Expected: []string{"identifier on one side of the comparison"}}
	}
	if isIdentKind(lhs) && isIdentKind(rhs) {
		return &ParseError{Found: "identifier", Expected: []string{"literal on one side of the comparison"}}
	}
	return nil
}
