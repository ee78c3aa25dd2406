package source

import (
	"fmt"
	"slices"
	"strings"
)

type SyntaxError struct {
	Pos Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

type modifiers struct {
	static bool
}

type parser struct {
	toks []Token
	pos  int
	file *File
	err  error
	// locals are the local classes in scope at the current position,
	// innermost last.
	locals []*ClassDecl
}

// Parse scans the declarations of a compilation unit. Method bodies and
// initializers are only searched for anonymous and local classes.
func Parse(path string, src []byte) (*File, error) {
	p := &parser{
		toks: Tokenize(src, path),
		file: &File{Path: path},
	}
	p.parseCompilationUnit()
	if p.err != nil {
		return nil, p.err
	}
	return p.file, nil
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) peekN(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) prev() Token {
	if p.pos == 0 {
		return Token{}
	}
	return p.toks[p.pos-1]
}

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if t.Kind != TokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) at(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *parser) atIdent(literal string) bool {
	t := p.peek()
	return t.Kind == TokenIdent && t.Literal == literal
}

func (p *parser) accept(kind TokenKind) bool {
	if p.at(kind) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(kind TokenKind) Token {
	t := p.peek()
	if t.Kind != kind {
		p.fail("expected %s, found %q", kind, t.Literal)
		return Token{Kind: kind, Span: t.Span}
	}
	return p.next()
}

// fail records the first error and stops the scan.
func (p *parser) fail(format string, args ...any) {
	if p.err == nil {
		p.err = &SyntaxError{Pos: p.peek().Span.Start, Msg: fmt.Sprintf(format, args...)}
	}
	p.pos = len(p.toks) - 1
}

func (p *parser) parseCompilationUnit() {
	p.skipAnnotations()
	if p.accept(TokenPackage) {
		p.file.Package = p.qualifiedName()
		p.expect(TokenSemicolon)
	}

	for p.at(TokenImport) {
		p.next()
		imp := Import{Static: p.accept(TokenStatic)}
		imp.Name = p.qualifiedName()
		if p.at(TokenDot) && p.peekN(1).Literal == "*" {
			p.next()
			p.next()
			imp.OnDemand = true
		}
		p.expect(TokenSemicolon)
		p.file.Imports = append(p.file.Imports, imp)
	}

	for !p.at(TokenEOF) {
		if p.accept(TokenSemicolon) {
			continue
		}
		mods := p.parseModifiers()
		if p.atIdent("module") || (p.atIdent("open") && p.peekN(1).Literal == "module") {
			return
		}
		kind, ok := p.typeDeclStart()
		if !ok {
			p.fail("expected type declaration, found %q", p.peek().Literal)
			return
		}
		p.file.Types = append(p.file.Types, p.parseTypeDecl(nil, mods, kind))
	}
}

func (p *parser) qualifiedName() string {
	parts := []string{p.expect(TokenIdent).Literal}
	for p.at(TokenDot) && p.peekN(1).Kind == TokenIdent {
		p.next()
		parts = append(parts, p.next().Literal)
	}
	return strings.Join(parts, ".")
}

func (p *parser) parseModifiers() modifiers {
	var m modifiers
	for {
		t := p.peek()
		switch t.Kind {
		case TokenPublic, TokenPrivate, TokenProtected, TokenAbstract, TokenFinal,
			TokenNative, TokenSynchronized, TokenTransient, TokenVolatile,
			TokenStrictfp, TokenDefault:
			p.next()
		case TokenStatic:
			m.static = true
			p.next()
		case TokenAt:
			if p.peekN(1).Kind == TokenInterface {
				return m
			}
			p.skipAnnotation()
		case TokenIdent:
			if (t.Literal == "sealed" || t.Literal == "non-sealed") && p.startsDeclaration(1) {
				p.next()
				continue
			}
			return m
		default:
			return m
		}
	}
}

func (p *parser) startsDeclaration(n int) bool {
	t := p.peekN(n)
	switch t.Kind {
	case TokenClass, TokenInterface, TokenAbstract, TokenFinal, TokenStatic,
		TokenPublic, TokenPrivate, TokenProtected, TokenStrictfp, TokenAt:
		return true
	case TokenIdent:
		return t.Literal == "sealed" || t.Literal == "non-sealed"
	}
	return false
}

func (p *parser) skipAnnotations() {
	for p.at(TokenAt) && p.peekN(1).Kind != TokenInterface {
		p.skipAnnotation()
	}
}

func (p *parser) skipAnnotation() {
	p.expect(TokenAt)
	p.qualifiedName()
	if p.at(TokenLParen) {
		p.skipBalanced(TokenLParen, TokenRParen)
	}
}

func (p *parser) skipBalanced(open, close TokenKind) {
	p.expect(open)
	depth := 1
	for depth > 0 {
		switch p.next().Kind {
		case open:
			depth++
		case close:
			depth--
		case TokenEOF:
			p.fail("unterminated %s", open)
			return
		}
	}
}

func (p *parser) typeDeclStart() (DeclKind, bool) {
	switch t := p.peek(); t.Kind {
	case TokenClass:
		return DeclClass, true
	case TokenInterface:
		return DeclInterface, true
	case TokenEnum:
		return DeclEnum, true
	case TokenAt:
		if p.peekN(1).Kind == TokenInterface {
			return DeclAnnotation, true
		}
	case TokenIdent:
		if t.Literal == "record" && p.peekN(1).Kind == TokenIdent {
			return DeclRecord, true
		}
	}
	return 0, false
}

func (p *parser) parseTypeDecl(parent *ClassDecl, mods modifiers, kind DeclKind) *ClassDecl {
	if kind == DeclAnnotation {
		p.next()
	}
	p.next()
	name := p.expect(TokenIdent)

	c := &ClassDecl{
		Name:   name.Literal,
		Kind:   kind,
		Parent: parent,
		File:   p.file,
		Span:   name.Span,
	}
	if parent != nil {
		c.Static = mods.static || kind != DeclClass ||
			parent.Kind == DeclInterface || parent.Kind == DeclAnnotation
	}

	if p.at(TokenLT) {
		c.TypeParams = p.parseTypeParams()
	}
	if kind == DeclRecord && p.at(TokenLParen) {
		c.Components, _ = p.parseParams()
		for _, comp := range c.Components {
			c.Fields = append(c.Fields, &FieldDecl{Name: comp.Name, Type: comp.Type, Span: comp.Span})
		}
	}

	for !p.at(TokenLBrace) && !p.at(TokenEOF) {
		switch {
		case p.accept(TokenExtends) || p.accept(TokenImplements):
			c.Supers = append(c.Supers, p.parseTypeList()...)
		case p.atIdent("permits"):
			p.next()
			p.parseTypeList()
		default:
			p.fail("unexpected %q in declaration of %s", p.peek().Literal, c.Name)
		}
	}
	p.expect(TokenLBrace)
	p.parseClassBody(c)
	return c
}

func (p *parser) parseClassBody(c *ClassDecl) {
	if c.Kind == DeclEnum {
		p.parseEnumConstants(c)
	}
	for !p.at(TokenRBrace) && !p.at(TokenEOF) {
		p.parseMember(c)
	}
	p.expect(TokenRBrace)
}

func (p *parser) parseEnumConstants(c *ClassDecl) {
	for {
		p.skipAnnotations()
		if !p.at(TokenIdent) {
			break
		}
		name := p.next()
		c.Fields = append(c.Fields, &FieldDecl{
			Name:   name.Literal,
			Type:   TypeExpr{Name: c.Name, Span: name.Span},
			Static: true,
			Span:   name.Span,
		})
		if p.accept(TokenLParen) {
			p.scanCode(c, nil, never)
			p.expect(TokenRParen)
		}
		if p.at(TokenLBrace) {
			anon := p.newAnonymous(c, nil, TypeExpr{Name: c.Name, Span: name.Span}, name.Span)
			p.next()
			p.parseClassBody(anon)
		}
		if !p.accept(TokenComma) {
			break
		}
	}
	p.accept(TokenSemicolon)
}

func (p *parser) parseMember(c *ClassDecl) {
	switch {
	case p.accept(TokenSemicolon):
		return
	case p.at(TokenLBrace):
		p.next()
		p.parseBlock(c, nil)
		return
	case p.at(TokenStatic) && p.peekN(1).Kind == TokenLBrace:
		p.next()
		p.next()
		p.parseBlock(c, nil)
		return
	}

	mods := p.parseModifiers()
	if kind, ok := p.typeDeclStart(); ok {
		c.Members = append(c.Members, p.parseTypeDecl(c, mods, kind))
		return
	}

	var typeParams []TypeParam
	if p.at(TokenLT) {
		typeParams = p.parseTypeParams()
	}

	if !c.Anon && p.atIdent(c.Name) {
		switch p.peekN(1).Kind {
		case TokenLParen:
			name := p.next()
			m := &MethodDecl{Name: name.Literal, Constructor: true, TypeParams: typeParams, Span: name.Span}
			m.Params, m.VarArgs = p.parseParams()
			p.skipThrows()
			p.expect(TokenLBrace)
			p.parseBlock(c, m)
			c.Methods = append(c.Methods, m)
			return
		case TokenLBrace:
			if c.Kind == DeclRecord {
				name := p.next()
				m := &MethodDecl{Name: name.Literal, Constructor: true, Params: c.Components, Span: name.Span}
				p.next()
				p.parseBlock(c, m)
				c.Methods = append(c.Methods, m)
				return
			}
		}
	}

	typ := p.parseType()
	name := p.expect(TokenIdent)

	if p.at(TokenLParen) {
		m := &MethodDecl{
			Name:       name.Literal,
			Static:     mods.static,
			TypeParams: typeParams,
			Return:     typ,
			Span:       name.Span,
		}
		m.Params, m.VarArgs = p.parseParams()
		m.Return.Dims += p.parseDims()
		p.skipThrows()
		if p.accept(TokenDefault) {
			p.scanCode(c, m, stopAt(TokenSemicolon))
		}
		if p.accept(TokenLBrace) {
			p.parseBlock(c, m)
		} else {
			p.expect(TokenSemicolon)
		}
		c.Methods = append(c.Methods, m)
		return
	}

	static := mods.static || c.Kind == DeclInterface || c.Kind == DeclAnnotation
	for {
		ft := typ
		ft.Dims += p.parseDims()
		c.Fields = append(c.Fields, &FieldDecl{Name: name.Literal, Type: ft, Static: static, Span: name.Span})
		if p.accept(TokenAssign) {
			p.scanCode(c, nil, stopAt(TokenComma, TokenSemicolon))
		}
		if !p.accept(TokenComma) {
			break
		}
		name = p.expect(TokenIdent)
	}
	p.expect(TokenSemicolon)
}

func (p *parser) skipThrows() {
	if p.accept(TokenThrows) {
		p.parseTypeList()
	}
}

func (p *parser) parseTypeList() []TypeExpr {
	types := []TypeExpr{p.parseType()}
	for p.accept(TokenComma) {
		types = append(types, p.parseType())
	}
	return types
}

func (p *parser) parseType() TypeExpr {
	p.skipAnnotations()
	t := p.peek()
	if t.Kind.IsPrimitive() {
		p.next()
		return TypeExpr{Name: t.Literal, Primitive: true, Dims: p.parseDims(), Span: t.Span}
	}
	if t.Kind != TokenIdent {
		p.fail("expected type, found %q", t.Literal)
		return TypeExpr{}
	}

	var parts []string
	end := t.Span.End
	for {
		id := p.expect(TokenIdent)
		parts = append(parts, id.Literal)
		end = id.Span.End
		if p.at(TokenLT) {
			p.skipTypeArgs()
		}
		if p.at(TokenDot) && p.peekN(1).Kind == TokenIdent {
			p.next()
			continue
		}
		break
	}
	return TypeExpr{
		Name: strings.Join(parts, "."),
		Dims: p.parseDims(),
		Span: Span{Start: t.Span.Start, End: end},
	}
}

func (p *parser) parseDims() int {
	dims := 0
	for p.at(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.next()
		p.next()
		dims++
	}
	return dims
}

func (p *parser) skipTypeArgs() {
	p.expect(TokenLT)
	depth := 1
	for depth > 0 {
		switch p.next().Kind {
		case TokenLT:
			depth++
		case TokenGT:
			depth--
		case TokenEOF, TokenSemicolon, TokenLBrace:
			p.fail("unterminated type arguments")
			return
		}
	}
}

func (p *parser) parseTypeParams() []TypeParam {
	p.expect(TokenLT)
	var params []TypeParam
	for !p.at(TokenEOF) {
		p.skipAnnotations()
		tp := TypeParam{Name: p.expect(TokenIdent).Literal}
		if p.accept(TokenExtends) {
			tp.Bounds = append(tp.Bounds, p.parseType())
			for p.accept(TokenBitAnd) {
				tp.Bounds = append(tp.Bounds, p.parseType())
			}
		}
		params = append(params, tp)
		if !p.accept(TokenComma) {
			break
		}
	}
	p.expect(TokenGT)
	return params
}

func (p *parser) parseParams() ([]ParamDecl, bool) {
	p.expect(TokenLParen)
	var params []ParamDecl
	varArgs := false
	for !p.at(TokenRParen) && !p.at(TokenEOF) {
		p.parseModifiers()
		typ := p.parseType()
		varArgs = false
		if p.accept(TokenEllipsis) {
			typ.Dims++
			varArgs = true
		}

		if p.accept(TokenThis) {
			// receiver parameter
		} else {
			name := p.expect(TokenIdent)
			if p.at(TokenDot) && p.peekN(1).Kind == TokenThis {
				p.next()
				p.next()
			} else {
				typ.Dims += p.parseDims()
				params = append(params, ParamDecl{Name: name.Literal, Type: typ, Span: name.Span})
			}
		}

		if !p.accept(TokenComma) {
			break
		}
	}
	p.expect(TokenRParen)
	return params, varArgs
}

func (p *parser) parseBlock(c *ClassDecl, m *MethodDecl) {
	p.scanCode(c, m, never)
	p.expect(TokenRBrace)
}

func never(Token) bool { return false }

func stopAt(kinds ...TokenKind) func(Token) bool {
	return func(t Token) bool {
		for _, k := range kinds {
			if t.Kind == k {
				return true
			}
		}
		return false
	}
}

// scanCode skips over statements or an expression, registering the
// anonymous and local classes it contains with c. It returns before an
// unmatched closing bracket or, at nesting depth zero, before a token
// accepted by stop.
func (p *parser) scanCode(c *ClassDecl, m *MethodDecl, stop func(Token) bool) {
	mark := len(p.locals)
	defer func() { p.locals = p.locals[:mark] }()
	var blocks []int

	depth := 0
	for !p.at(TokenEOF) {
		t := p.peek()
		if depth == 0 && stop(t) {
			return
		}
		switch t.Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			if t.Kind == TokenLBrace {
				blocks = append(blocks, len(p.locals))
			}
			depth++
			p.next()
		case TokenRParen, TokenRBracket, TokenRBrace:
			if depth == 0 {
				return
			}
			if t.Kind == TokenRBrace && len(blocks) > 0 {
				p.locals = p.locals[:blocks[len(blocks)-1]]
				blocks = blocks[:len(blocks)-1]
			}
			depth--
			p.next()
		case TokenNew:
			p.scanCreator(c, m)
		case TokenClass, TokenInterface, TokenEnum:
			if p.prev().Kind == TokenDot {
				p.next()
				continue
			}
			kind, _ := p.typeDeclStart()
			p.parseLocalType(c, m, kind)
		case TokenIdent:
			if t.Literal == "record" && p.peekN(1).Kind == TokenIdent &&
				(p.peekN(2).Kind == TokenLParen || p.peekN(2).Kind == TokenLT) {
				p.parseLocalType(c, m, DeclRecord)
				continue
			}
			p.next()
		default:
			p.next()
		}
	}
}

func (p *parser) parseLocalType(c *ClassDecl, m *MethodDecl, kind DeclKind) {
	visible := slices.Clone(p.locals)
	local := p.parseTypeDecl(c, modifiers{}, kind)
	local.Local = true
	local.Static = false
	local.ScopeTypeParams = scopeTypeParams(m)
	local.Visible = visible
	c.Inner = append(c.Inner, local)
	p.locals = append(p.locals, local)
}

func (p *parser) scanCreator(c *ClassDecl, m *MethodDecl) {
	methodRef := p.prev().Kind == TokenColonColon
	newTok := p.next()
	if methodRef {
		return
	}
	if p.at(TokenLT) {
		p.skipTypeArgs()
	}
	p.skipAnnotations()
	if !p.at(TokenIdent) {
		return
	}

	typ := p.parseType()
	if typ.Dims > 0 || !p.accept(TokenLParen) {
		return
	}
	p.scanCode(c, m, never)
	p.expect(TokenRParen)

	if p.at(TokenLBrace) {
		anon := p.newAnonymous(c, m, typ, Span{Start: newTok.Span.Start, End: typ.Span.End})
		p.next()
		p.parseClassBody(anon)
	}
}

func (p *parser) newAnonymous(parent *ClassDecl, m *MethodDecl, super TypeExpr, span Span) *ClassDecl {
	anon := &ClassDecl{
		Kind:            DeclClass,
		Anon:            true,
		Parent:          parent,
		File:            p.file,
		Supers:          []TypeExpr{super},
		ScopeTypeParams: scopeTypeParams(m),
		Visible:         slices.Clone(p.locals),
		Span:            span,
	}
	parent.Inner = append(parent.Inner, anon)
	return anon
}

func scopeTypeParams(m *MethodDecl) []TypeParam {
	if m == nil {
		return nil
	}
	return m.TypeParams
}
