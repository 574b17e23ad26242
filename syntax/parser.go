// Package syntax contains the IDL front end: the lexer and the recursive
// descent parser producing the raw definition forest consumed by
// finalization.  All parsing functions assume they begin with the parser
// positioned on the first token of their production and consume every token
// of it, leaving the parser on the next token.
package syntax

import (
	"os"
	"strconv"

	"idlglue/idl"
	"idlglue/report"
)

// Parser is the parser for one IDL source file.
type Parser struct {
	lexer *Lexer
	file  *report.File

	// tok is the current token the parser is positioned on.
	tok *Token

	// ahead is the lookahead token, when one has been peeked.
	ahead *Token
}

// NewParser creates a new parser over the given source text.
func NewParser(file *report.File, src string) *Parser {
	return &Parser{
		lexer: NewLexer(file, src),
		file:  file,
	}
}

// ParseFile parses the IDL file at the given path into its top-level
// definitions.
func ParseFile(path string) ([]idl.Definition, *report.File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	file := report.NewFile(path)
	defs, err := NewParser(file, string(src)).Parse()
	return defs, file, err
}

// Parse parses the whole source, returning its top-level definitions.
func (p *Parser) Parse() ([]idl.Definition, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	return p.parseDefinitionList(TOK_EOF, false)
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() error {
	if p.ahead != nil {
		p.tok = p.ahead
		p.ahead = nil
		return nil
	}

	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}

	p.tok = tok
	return nil
}

// peek returns the token after the current one without consuming anything.
func (p *Parser) peek() (*Token, error) {
	if p.ahead == nil {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return nil, err
		}

		p.ahead = tok
	}

	return p.ahead, nil
}

// got returns whether the parser is on a token of the given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// expect asserts that the parser is on a token of the given kind, returning
// it and moving forward.
func (p *Parser) expect(kind int) (*Token, error) {
	if !p.got(kind) {
		return nil, p.reject()
	}

	tok := p.tok
	return tok, p.next()
}

// loc returns the location of the current token.
func (p *Parser) loc() report.Location {
	return report.Location{File: p.file, Line: p.tok.Line}
}

// reject reports an unexpected token error on the current token.
func (p *Parser) reject() error {
	if p.got(TOK_EOF) {
		return report.Raise(p.loc(), "unexpected end of file")
	}

	return report.Raise(p.loc(), "unexpected token `%s`", p.tok.Value)
}

// -----------------------------------------------------------------------------

// parseDefinitionList parses definitions until the given end token, which is
// not consumed.  inClass selects the member grammar: constructors are legal,
// nested namespaces are not.
func (p *Parser) parseDefinitionList(end int, inClass bool) ([]idl.Definition, error) {
	var defs []idl.Definition
	for !p.got(end) {
		defn, err := p.parseDefinition(inClass)
		if err != nil {
			return nil, err
		}

		defs = append(defs, defn)
	}

	return defs, nil
}

// parseDefinition parses one definition: a class, namespace, enum, typedef,
// typename, callback, function, variable or verbatim block, with optional
// leading documentation and attributes.
func (p *Parser) parseDefinition(inClass bool) (idl.Definition, error) {
	attrs, err := p.parseAttributesOpt()
	if err != nil {
		return nil, err
	}

	loc := p.loc()
	switch p.tok.Kind {
	case TOK_VERBATIM:
		text := p.tok.Value
		return idl.NewVerbatim(loc, attrs, text), p.next()
	case TOK_NAMESPACE:
		if inClass {
			return nil, p.reject()
		}

		return p.parseNamespace(loc, attrs)
	case TOK_CLASS:
		return p.parseClass(loc, attrs)
	case TOK_ENUM:
		return p.parseEnum(loc, attrs)
	case TOK_TYPEDEF:
		if err := p.next(); err != nil {
			return nil, err
		}

		ref, err := p.parseType()
		if err != nil {
			return nil, err
		}

		name, err := p.expect(TOK_ID)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TOK_SEMI); err != nil {
			return nil, err
		}

		return idl.NewTypedef(loc, attrs, name.Value, ref), nil
	case TOK_TYPENAME:
		if err := p.next(); err != nil {
			return nil, err
		}

		name, err := p.expect(TOK_ID)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TOK_SEMI); err != nil {
			return nil, err
		}

		return idl.NewTypename(loc, attrs, name.Value), nil
	case TOK_CALLBACK:
		if err := p.next(); err != nil {
			return nil, err
		}

		ref, err := p.parseType()
		if err != nil {
			return nil, err
		}

		name, err := p.expect(TOK_ID)
		if err != nil {
			return nil, err
		}

		params, err := p.parseParamList()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TOK_SEMI); err != nil {
			return nil, err
		}

		return idl.NewCallback(loc, attrs, name.Value, ref, params), nil
	}

	// Constructors have no return type: inside a class, an identifier
	// directly followed by `(` starts one.
	if inClass && p.got(TOK_ID) {
		ahead, err := p.peek()
		if err != nil {
			return nil, err
		}

		if ahead.Kind == TOK_LPAREN {
			name := p.tok.Value
			if err := p.next(); err != nil {
				return nil, err
			}

			params, err := p.parseParamList()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(TOK_SEMI); err != nil {
				return nil, err
			}

			return idl.NewFunction(loc, attrs, name, nil, params), nil
		}
	}

	// Otherwise a type followed by a name: a function when `(` follows, a
	// variable when `;` does.
	ref, err := p.parseType()
	if err != nil {
		return nil, err
	}

	name, err := p.expect(TOK_ID)
	if err != nil {
		return nil, err
	}

	if p.got(TOK_LPAREN) {
		params, err := p.parseParamList()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TOK_SEMI); err != nil {
			return nil, err
		}

		return idl.NewFunction(loc, attrs, name.Value, ref, params), nil
	}

	if _, err := p.expect(TOK_SEMI); err != nil {
		return nil, err
	}

	return idl.NewVariable(loc, attrs, name.Value, ref), nil
}

// parseNamespace parses `namespace ID { definition_list }`.  There is no
// trailing semicolon.
func (p *Parser) parseNamespace(loc report.Location, attrs idl.Attributes) (idl.Definition, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	name, err := p.expect(TOK_ID)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TOK_LBRACE); err != nil {
		return nil, err
	}

	members, err := p.parseDefinitionList(TOK_RBRACE, false)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TOK_RBRACE); err != nil {
		return nil, err
	}

	return idl.NewNamespace(loc, attrs, name.Value, members), nil
}

// parseClass parses `class ID [: type] { member_definition_list } ;`.
func (p *Parser) parseClass(loc report.Location, attrs idl.Attributes) (idl.Definition, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	name, err := p.expect(TOK_ID)
	if err != nil {
		return nil, err
	}

	var baseRef idl.TypeRef
	if p.got(TOK_COLON) {
		if err := p.next(); err != nil {
			return nil, err
		}

		baseRef, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TOK_LBRACE); err != nil {
		return nil, err
	}

	members, err := p.parseDefinitionList(TOK_RBRACE, true)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TOK_RBRACE); err != nil {
		return nil, err
	}

	if _, err := p.expect(TOK_SEMI); err != nil {
		return nil, err
	}

	return idl.NewClass(loc, attrs, name.Value, baseRef, members), nil
}

// parseEnum parses `enum ID { ID [= NUMBER] {, ID [= NUMBER]} } ;`.
func (p *Parser) parseEnum(loc report.Location, attrs idl.Attributes) (idl.Definition, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	name, err := p.expect(TOK_ID)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TOK_LBRACE); err != nil {
		return nil, err
	}

	var values []idl.EnumValue
	for {
		valueName, err := p.expect(TOK_ID)
		if err != nil {
			return nil, err
		}

		value := idl.EnumValue{Name: valueName.Value}
		if p.got(TOK_ASSIGN) {
			if err := p.next(); err != nil {
				return nil, err
			}

			numTok, err := p.expect(TOK_NUMBER)
			if err != nil {
				return nil, err
			}

			num, err := strconv.ParseInt(numTok.Value, 0, 64)
			if err != nil {
				return nil, report.Raise(loc, "invalid number `%s`", numTok.Value)
			}

			n := int(num)
			value.Value = &n
		}

		values = append(values, value)
		if !p.got(TOK_COMMA) {
			break
		}

		if err := p.next(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TOK_RBRACE); err != nil {
		return nil, err
	}

	if _, err := p.expect(TOK_SEMI); err != nil {
		return nil, err
	}

	return idl.NewEnum(loc, attrs, name.Value, values), nil
}

// parseParamList parses `( [param {, param}] )` where param is `type ID`.
func (p *Parser) parseParamList() ([]*idl.Param, error) {
	if _, err := p.expect(TOK_LPAREN); err != nil {
		return nil, err
	}

	var params []*idl.Param
	for !p.got(TOK_RPAREN) {
		if len(params) > 0 {
			if _, err := p.expect(TOK_COMMA); err != nil {
				return nil, err
			}
		}

		ref, err := p.parseType()
		if err != nil {
			return nil, err
		}

		name, err := p.expect(TOK_ID)
		if err != nil {
			return nil, err
		}

		params = append(params, &idl.Param{Ref: ref, Name: name.Value})
	}

	return params, p.next()
}

// parseAttributesOpt parses an optional `%[ ... %]` documentation block
// followed by an optional `[attr {, attr}]` attribute list, where attr is
// `attrid [= attrid]` and attrid is an identifier, qualifier keyword, or
// quoted string.
func (p *Parser) parseAttributesOpt() (idl.Attributes, error) {
	attrs := idl.Attributes{}

	if p.got(TOK_DOCS) {
		attrs["__docs"] = p.tok.Value
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	if !p.got(TOK_LBRACKET) {
		return attrs, nil
	}

	if err := p.next(); err != nil {
		return nil, err
	}

	first := true
	for !p.got(TOK_RBRACKET) {
		if !first {
			if _, err := p.expect(TOK_COMMA); err != nil {
				return nil, err
			}
		}

		first = false

		key, err := p.parseAttrID()
		if err != nil {
			return nil, err
		}

		value := ""
		if p.got(TOK_ASSIGN) {
			if err := p.next(); err != nil {
				return nil, err
			}

			value, err = p.parseAttrID()
			if err != nil {
				return nil, err
			}
		}

		attrs[key] = value
	}

	return attrs, p.next()
}

func (p *Parser) parseAttrID() (string, error) {
	switch p.tok.Kind {
	case TOK_ID, TOK_QUALIFIER, TOK_STRING:
		value := p.tok.Value
		return value, p.next()
	default:
		return "", p.reject()
	}
}

// parseType parses a type reference: qualifier-prefixed, possibly scoped,
// with array and nullable postfixes.
func (p *Parser) parseType() (idl.TypeRef, error) {
	loc := p.loc()
	if p.got(TOK_QUALIFIER) {
		qualifier := p.tok.Value
		if err := p.next(); err != nil {
			return nil, err
		}

		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}

		return idl.NewQualifiedRef(loc, qualifier, inner), nil
	}

	return p.parseTypeReference()
}

func (p *Parser) parseTypeReference() (idl.TypeRef, error) {
	loc := p.loc()

	var ref idl.TypeRef
	switch p.tok.Kind {
	case TOK_SIGNED:
		sign := p.tok.Value
		if err := p.next(); err != nil {
			return nil, err
		}

		name, err := p.expect(TOK_ID)
		if err != nil {
			return nil, err
		}

		ref = idl.NewNameRef(loc, sign+" "+name.Value)
	case TOK_ID:
		name := p.tok.Value
		if err := p.next(); err != nil {
			return nil, err
		}

		if p.got(TOK_SCOPE) {
			if err := p.next(); err != nil {
				return nil, err
			}

			inner, err := p.parseTypeReference()
			if err != nil {
				return nil, err
			}

			return idl.NewScopedRef(loc, name, inner), nil
		}

		ref = idl.NewNameRef(loc, name)
	default:
		return nil, p.reject()
	}

	// Array and nullable postfixes.
	for {
		switch {
		case p.got(TOK_LBRACKET):
			if err := p.next(); err != nil {
				return nil, err
			}

			size := idl.Unsized
			if p.got(TOK_NUMBER) {
				num, err := strconv.ParseInt(p.tok.Value, 0, 64)
				if err != nil {
					return nil, report.Raise(loc, "invalid number `%s`", p.tok.Value)
				}

				size = int(num)
				if err := p.next(); err != nil {
					return nil, err
				}
			}

			if _, err := p.expect(TOK_RBRACKET); err != nil {
				return nil, err
			}

			ref = idl.NewArrayRef(loc, ref, size)
		case p.got(TOK_QUESTION):
			if err := p.next(); err != nil {
				return nil, err
			}

			ref = idl.NewQualifiedRef(loc, "nullable", ref)
		default:
			return ref, nil
		}
	}
}
