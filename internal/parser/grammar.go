package parser

import (
	"github.com/darilrt/bicc/internal/ast"
	"github.com/darilrt/bicc/internal/token"
)

// ---- values and primary expressions ----

func (p *Parser) parseValue() (ast.Node, error) {
	tok := p.peek()
	switch tok.Type {
	case token.INTEGER:
		p.next()
		return ast.NewInteger(tok.Pos(), tok.Literal), nil
	case token.FLOAT:
		p.next()
		return ast.NewFloat(tok.Pos(), tok.Literal), nil
	case token.BOOLEAN:
		p.next()
		return ast.NewBoolean(tok.Pos(), tok.Literal), nil
	case token.NULL:
		p.next()
		return ast.NewNull(tok.Pos()), nil
	case token.STRING:
		p.next()
		return ast.NewString(tok.Pos(), tok.Literal), nil
	case token.CHAR:
		p.next()
		return ast.NewChar(tok.Pos(), tok.Literal), nil
	}
	return nil, errAt(tok.Pos(), "unexpected %s %q", tok.Type, tok.Literal)
}

// parsePrimary parses a value literal, a parenthesized expression, a
// pre-increment/decrement, an implicit-this field access ("." name), or a
// name-led expression (plain reference, namespace path, subscript, call, or
// variadic pack expansion).
func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.peek()

	switch tok.Type {
	case token.INTEGER, token.FLOAT, token.BOOLEAN, token.NULL, token.STRING, token.CHAR:
		return p.parseValue()

	case token.TYPE:
		p.next()
		return ast.NewIdentifier(tok.Pos(), tok.Literal), nil

	case token.DOT:
		p.next()
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		return ast.NewObjectAccess(tok.Pos(), nil, true, name, false), nil

	case token.LPAREN:
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		node := ast.Node(ast.NewParenthesis(tok.Pos(), inner))
		if p.at(token.LBRACKET) {
			return p.parseIndex(node)
		}
		return node, nil

	case token.INC, token.DEC:
		op := tok.Literal
		p.next()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return ast.NewPreOp(tok.Pos(), op, operand), nil

	case token.IDENT:
		node, err := p.parseName()
		if err != nil {
			return nil, err
		}
		var result ast.Node = node
		if p.at(token.COLONCOLON) {
			result, err = p.parseNamespaceAccess(result)
			if err != nil {
				return nil, err
			}
		}
		switch p.peek().Type {
		case token.INC, token.DEC:
			op := p.next()
			return ast.NewPostOp(tok.Pos(), result, op.Literal), nil
		case token.LBRACKET:
			return p.parseIndex(result)
		case token.LPAREN:
			return p.parseCall(result)
		case token.LT:
			// A '<' after a name opens a template argument list only if one
			// parses; otherwise it is left for parseComp as a comparison.
			call, err := speculative(p, func() (ast.Node, error) { return p.parseCall(result) })
			if err != nil {
				return result, nil
			}
			return call, nil
		case token.ELLIPSIS:
			p.next()
			return ast.NewPostOp(tok.Pos(), result, "..."), nil
		}
		return result, nil
	}

	return nil, errAt(tok.Pos(), "unexpected %s %q", tok.Type, tok.Literal)
}

func (p *Parser) parseName() (*ast.Identifier, error) {
	tok, err := p.expect(token.IDENT, "an identifier")
	if err != nil {
		return nil, err
	}
	return ast.NewIdentifier(tok.Pos(), tok.Literal), nil
}

func (p *Parser) parseNamespaceAccess(node ast.Node) (ast.Node, error) {
	for p.at(token.COLONCOLON) {
		pos := p.next().Pos()
		right, err := p.parseName()
		if err != nil {
			return nil, err
		}
		node = ast.NewNamespaceAccess(pos, node, right)
	}
	return node, nil
}

// parseObjectAccess consumes a run of ".name" / "->name" suffixes, the
// member-access chain that sits between a primary expression and the
// multiplicative operators.
func (p *Parser) parseObjectAccess(node ast.Node) (ast.Node, error) {
	for p.at(token.DOT) || p.at(token.ARROW) {
		arrow := p.at(token.ARROW)
		pos := p.next().Pos()
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		node = ast.NewObjectAccess(pos, node, false, name, arrow)
	}
	return node, nil
}

func (p *Parser) parseDotExpr() (ast.Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseObjectAccess(node)
}

// parseArgs parses a comma-separated expression list, used by parseCall.
func (p *Parser) parseArgs() ([]ast.Node, error) {
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	args := []ast.Node{first}
	for p.at(token.COMMA) {
		p.next()
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (p *Parser) parseCall(callee ast.Node) (ast.Node, error) {
	pos := p.peek().Pos()
	var tmpl *ast.TemplateParams
	if p.at(token.LT) {
		t, err := p.parseTemplateParams()
		if err != nil {
			return nil, err
		}
		tmpl = t
	}
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	if p.at(token.RPAREN) {
		p.next()
		return ast.NewCall(pos, callee, nil, tmpl), nil
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return ast.NewCall(pos, callee, args, tmpl), nil
}

func (p *Parser) parseIndex(node ast.Node) (ast.Node, error) {
	for p.at(token.LBRACKET) {
		pos := p.next().Pos()
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET, "]"); err != nil {
			return nil, err
		}
		node = ast.NewIndexExpr(pos, node, idx)
	}
	return node, nil
}

// ---- precedence ladder: unary -> term -> add -> bitop -> comp -> assign ----

func (p *Parser) parseUnary() (ast.Node, error) {
	tok := p.peek()
	switch tok.Type {
	case token.NEW:
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewNewExpr(tok.Pos(), inner), nil
	case token.PLUS, token.BANG, token.MINUS, token.AMP, token.MUL:
		p.next()
		operand, err := p.parseDotExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(tok.Pos(), tok.Literal, operand), nil
	}
	return p.parseDotExpr()
}

// parseTerm handles multiplication, division, and modulo. The DOT branch
// mirrors the reference grammar exactly but can never actually fire: every
// path into parseUnary already runs through parseDotExpr, which consumes
// every leading '.'/'->' itself before returning here.
func (p *Parser) parseTerm() (ast.Node, error) {
	node, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(token.DOT) || p.at(token.MUL) || p.at(token.FORWARDSLASH) || p.at(token.MOD) {
		tok := p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.DOT {
			node = ast.NewDotExpr(tok.Pos(), node, right)
			continue
		}
		node = ast.NewBinOp(tok.Pos(), node, tok.Literal, right)
	}
	if p.at(token.LBRACKET) {
		return p.parseIndex(node)
	}
	return node, nil
}

func (p *Parser) parseAdd() (ast.Node, error) {
	node, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.at(token.PLUS) || p.at(token.MINUS) {
		tok := p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		node = ast.NewBinOp(tok.Pos(), node, tok.Literal, right)
	}
	return node, nil
}

// parseBitop handles the bitwise operators. Its right-hand operand is a
// full expression rather than another parseAdd, matching the reference
// grammar's own asymmetry here (every other level recurses into the next
// tighter level on its right-hand side; this one alone recurses all the
// way back to the top).
func (p *Parser) parseBitop() (ast.Node, error) {
	node, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for p.at(token.AMP) || p.at(token.PIPE) || p.at(token.CARET) || p.at(token.LSHIFT) || p.at(token.RSHIFT) {
		tok := p.next()
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		node = ast.NewBinOp(tok.Pos(), node, tok.Literal, right)
	}
	return node, nil
}

// parseComp handles comparison and logical operators. A '>' is never
// consumed while inside a template argument list: the caller (parseCall or
// parseTemplateParams) needs to see it to close the list. Inside a
// template list a would-be '>>' has already been split into two separate
// '>' tokens by the stream, so this same check also closes the inner of a
// nested generic like Vec<Map<K, V>> without any extra bookkeeping here.
func (p *Parser) parseComp() (ast.Node, error) {
	node, err := p.parseBitop()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		switch tok.Type {
		case token.EQ, token.NEQ, token.LT, token.LTE, token.GTE, token.AND, token.OR:
			p.next()
		case token.GT:
			if p.ts.inTemplate() {
				return node, nil
			}
			p.next()
		default:
			return node, nil
		}
		right, err := p.parseBitop()
		if err != nil {
			return nil, err
		}
		node = ast.NewBinOp(tok.Pos(), node, tok.Literal, right)
	}
}

var assignOps = map[token.Type]bool{
	token.ASSIGN: true, token.ADDEQ: true, token.SUBEQ: true, token.MULEQ: true,
	token.DIVEQ: true, token.MODEQ: true, token.ANDEQ: true, token.OREQ: true, token.XOREQ: true,
}

func (p *Parser) parseAssign(node ast.Node) (ast.Node, error) {
	op := p.next()
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewBinOp(op.Pos(), node, op.Literal, right), nil
}

// parseExpr is the top of the precedence ladder: a comparison chain,
// optionally followed by a call (reachable when a generic function call
// trails a comparison-level expression) and/or a trailing assignment.
func (p *Parser) parseExpr() (ast.Node, error) {
	node, err := p.parseComp()
	if err != nil {
		return nil, err
	}
	if p.at(token.LPAREN) || p.at(token.LT) {
		node, err = p.parseCall(node)
		if err != nil {
			return nil, err
		}
	}
	if assignOps[p.peek().Type] {
		node, err = p.parseAssign(node)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

// ---- types ----

func (p *Parser) parseTypeName() (ast.Node, error) {
	tok := p.peek()
	if tok.Type == token.IDENT {
		node, err := p.parseName()
		if err != nil {
			return nil, err
		}
		var result ast.Node = node
		for p.at(token.COLONCOLON) {
			pos := p.next().Pos()
			right, err := p.parseName()
			if err != nil {
				return nil, err
			}
			result = ast.NewNamespaceAccess(pos, result, right)
		}
		return result, nil
	}
	if tok.Type == token.TYPE {
		p.next()
		return ast.NewIdentifier(tok.Pos(), tok.Literal), nil
	}
	return nil, errAt(tok.Pos(), "expected a type name, found %s %q", tok.Type, tok.Literal)
}

func (p *Parser) parseTypePtr() (ast.Node, error) {
	node, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	for p.at(token.MUL) {
		pos := p.next().Pos()
		node = ast.NewTypePtr(pos, node)
	}
	return node, nil
}

func (p *Parser) parseTypeRef() (ast.Node, error) {
	node, err := p.parseTypePtr()
	if err != nil {
		return nil, err
	}
	for p.at(token.AMP) {
		pos := p.next().Pos()
		node = ast.NewTypeRef(pos, node)
	}
	return node, nil
}

func (p *Parser) parseBracket() (*ast.Bracket, error) {
	pos := p.peek().Pos()
	if _, err := p.expect(token.LBRACKET, "["); err != nil {
		return nil, err
	}
	var size ast.Node
	if !p.at(token.RBRACKET) {
		s, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		size = s
	}
	if _, err := p.expect(token.RBRACKET, "]"); err != nil {
		return nil, err
	}
	return ast.NewBracket(pos, size), nil
}

// parseTemplateParamListVal resolves one entry of a template argument list:
// a type when the text parses as one, otherwise a value expression (e.g. a
// non-type template parameter like an integer constant). The two
// productions share enough of a prefix (both can start with an identifier)
// that only a trial parse can tell them apart.
func (p *Parser) parseTemplateParamListVal() (ast.Node, error) {
	node, err := speculative(p, p.parseTypeSpec)
	if err == nil {
		return node, nil
	}
	return p.parseExpr()
}

func (p *Parser) parseTemplateParams() (*ast.TemplateParams, error) {
	pos := p.peek().Pos()
	p.ts.enterTemplate()
	defer p.ts.exitTemplate()

	if _, err := p.expect(token.LT, "<"); err != nil {
		return nil, err
	}
	var args []ast.Node
	if !p.at(token.GT) {
		first, err := p.parseTemplateParamListVal()
		if err != nil {
			return nil, err
		}
		args = append(args, first)
		for p.at(token.COMMA) {
			p.next()
			next, err := p.parseTemplateParamListVal()
			if err != nil {
				return nil, err
			}
			args = append(args, next)
		}
	}
	if _, err := p.expect(token.GT, ">"); err != nil {
		return nil, err
	}
	return ast.NewTemplateParams(pos, args), nil
}

func (p *Parser) parseTemplateType() (*ast.TemplateType, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, ":"); err != nil {
		return nil, err
	}
	var kind string
	switch {
	case p.at(token.TYPE_KEY):
		p.next()
		kind = "type"
	case p.at(token.CLASS):
		p.next()
		kind = "class"
	default:
		constraint, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		kind = constraint.Render(0)
	}
	variadic := false
	if p.at(token.ELLIPSIS) {
		p.next()
		variadic = true
	}
	return ast.NewTemplateType(name.Pos(), name, kind, variadic), nil
}

func (p *Parser) parseTemplateDecl() (*ast.TemplateDecl, error) {
	pos := p.peek().Pos()
	p.ts.enterTemplate()
	defer p.ts.exitTemplate()

	if _, err := p.expect(token.LT, "<"); err != nil {
		return nil, err
	}
	first, err := p.parseTemplateType()
	if err != nil {
		return nil, err
	}
	types := []*ast.TemplateType{first}
	for p.at(token.COMMA) {
		p.next()
		next, err := p.parseTemplateType()
		if err != nil {
			return nil, err
		}
		types = append(types, next)
	}
	if _, err := p.expect(token.GT, ">"); err != nil {
		return nil, err
	}
	return ast.NewTemplateDecl(pos, types), nil
}

func (p *Parser) parseTypeSpec() (*ast.TypeNode, error) {
	pos := p.peek().Pos()
	isConst := false
	if p.at(token.CONST) {
		p.next()
		isConst = true
	}
	base, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	var tmpl *ast.TemplateParams
	if p.at(token.LT) {
		t, err := p.parseTemplateParams()
		if err != nil {
			return nil, err
		}
		tmpl = t
	}
	variadic := false
	if p.at(token.ELLIPSIS) {
		p.next()
		variadic = true
	}
	return ast.NewTypeNode(pos, base, isConst, tmpl, variadic), nil
}

// ---- declarations ----

func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	tok := p.peek()
	isMut := false
	switch tok.Type {
	case token.LET:
		p.next()
	case token.MUT:
		p.next()
		isMut = true
	default:
		return nil, errAt(tok.Pos(), "expected let or mut, found %s %q", tok.Type, tok.Literal)
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	var brackets []*ast.Bracket
	for p.at(token.LBRACKET) {
		b, err := p.parseBracket()
		if err != nil {
			return nil, err
		}
		brackets = append(brackets, b)
	}
	if _, err := p.expect(token.COLON, ":"); err != nil {
		return nil, err
	}
	typeSpec, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	var value ast.Node
	if p.at(token.ASSIGN) {
		p.next()
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		value = v
	}
	return ast.NewVarDecl(tok.Pos(), name, typeSpec, value, isMut, brackets, false), nil
}

// parseSimpleVarDecl parses a for-loop binding: a bare name, mutable by
// default, with an optional type annotation and no initializer.
func (p *Parser) parseSimpleVarDecl() (*ast.VarDecl, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	var typeSpec ast.Node
	if p.at(token.COLON) {
		p.next()
		t, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		typeSpec = t
	}
	return ast.NewVarDecl(name.Pos(), name, typeSpec, nil, true, nil, false), nil
}

func (p *Parser) parseParam() (*ast.Param, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	var brackets []*ast.Bracket
	for p.at(token.LBRACKET) {
		b, err := p.parseBracket()
		if err != nil {
			return nil, err
		}
		brackets = append(brackets, b)
	}
	if _, err := p.expect(token.COLON, ":"); err != nil {
		return nil, err
	}
	typeSpec, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	return ast.NewParam(name.Pos(), name, typeSpec, brackets), nil
}

func (p *Parser) parseParams() ([]*ast.Param, error) {
	first, err := p.parseParam()
	if err != nil {
		return nil, err
	}
	params := []*ast.Param{first}
	for p.at(token.COMMA) {
		p.next()
		next, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, next)
	}
	return params, nil
}

// parseFuncDecl parses a function or method declaration. isVirtual allows
// the body to be replaced with a bare ";" (a pure-virtual declaration);
// the caller only passes true when a preceding "virtual" keyword has
// already been consumed for this statement.
func (p *Parser) parseFuncDecl(isVirtual bool) (*ast.FuncDecl, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	var template *ast.TemplateDecl
	if p.at(token.LT) {
		t, err := p.parseTemplateDecl()
		if err != nil {
			return nil, err
		}
		template = t
	}
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	var params []*ast.Param
	if !p.at(token.RPAREN) {
		ps, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		params = ps
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	isConst := false
	if p.at(token.CONST) {
		p.next()
		isConst = true
	}
	var retType ast.Node
	if p.at(token.ARROW) {
		p.next()
		t, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		retType = t
	}
	var body *ast.Block
	if isVirtual && p.at(token.SEMI) {
		p.next()
	} else {
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		body = b
	}
	fn := ast.NewFuncDecl(name.Pos(), name, params, retType, body)
	fn.Template = template
	fn.IsConst = isConst
	return fn, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	pos := p.peek().Pos()
	if _, err := p.expect(token.LBRACE, "{"); err != nil {
		return nil, err
	}
	var stmts []*ast.Statement
	for !p.at(token.RBRACE) {
		if p.at(token.EOF) {
			return nil, errAt(p.peek().Pos(), "expected }, found end of file")
		}
		stmt, err := p.parseStatement(false)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.expect(token.RBRACE, "}"); err != nil {
		return nil, err
	}
	return ast.NewBlock(pos, stmts), nil
}

func (p *Parser) parseReturnStmt() (*ast.Return, error) {
	pos := p.peek().Pos()
	if _, err := p.expect(token.RET, "ret"); err != nil {
		return nil, err
	}
	if p.at(token.SEMI) {
		return ast.NewReturn(pos, nil), nil
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewReturn(pos, value), nil
}

func (p *Parser) parseElifStmt() (*ast.Elif, error) {
	pos := p.peek().Pos()
	if _, err := p.expect(token.ELIF, "elif"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewElif(pos, cond, body), nil
}

func (p *Parser) parseIfStmt() (*ast.If, error) {
	pos := p.peek().Pos()
	if _, err := p.expect(token.IF, "if"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elifs []*ast.Elif
	for p.at(token.ELIF) {
		e, err := p.parseElifStmt()
		if err != nil {
			return nil, err
		}
		elifs = append(elifs, e)
	}
	var elseBlock *ast.Block
	if p.at(token.ELSE) {
		p.next()
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		elseBlock = b
	}
	return ast.NewIf(pos, cond, body, elifs, elseBlock), nil
}

func (p *Parser) parseWhileStmt() (*ast.While, error) {
	pos := p.peek().Pos()
	if _, err := p.expect(token.WHILE, "while"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(pos, cond, body), nil
}

func (p *Parser) parseForStmt() (*ast.For, error) {
	pos := p.peek().Pos()
	if _, err := p.expect(token.FOR, "for"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	binding, err := p.parseSimpleVarDecl()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN, "in"); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFor(pos, binding, iterable, body), nil
}

func (p *Parser) parseTypeDecl() (*ast.TypeDecl, error) {
	if _, err := p.expect(token.TYPE_KEY, "type"); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN, "="); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	return ast.NewTypeDecl(name.Pos(), name, typ), nil
}

func (p *Parser) parseInheritDecl() ([]ast.Inherit, error) {
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	var inherits []ast.Inherit
	for !p.at(token.RPAREN) {
		vis := ast.VisibilityProtected
		switch {
		case p.at(token.PUB):
			p.next()
			vis = ast.VisibilityPublic
		case p.at(token.PRIV):
			p.next()
			vis = ast.VisibilityPrivate
		}
		typ, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		inherits = append(inherits, ast.Inherit{Visibility: vis, Type: typ})
		if p.at(token.COMMA) {
			p.next()
		} else {
			break
		}
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return inherits, nil
}

func (p *Parser) parseClassDecl() (*ast.ClassDecl, error) {
	pos := p.peek().Pos()
	if _, err := p.expect(token.CLASS, "class"); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	var template *ast.TemplateDecl
	if p.at(token.LT) {
		t, err := p.parseTemplateDecl()
		if err != nil {
			return nil, err
		}
		template = t
	}
	var inherits []ast.Inherit
	if p.at(token.LPAREN) {
		in, err := p.parseInheritDecl()
		if err != nil {
			return nil, err
		}
		inherits = in
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewClassDecl(pos, name, body, template, inherits), nil
}

func (p *Parser) parseProtectionDecl() (ast.Visibility, error) {
	tok := p.peek()
	switch tok.Type {
	case token.PUB:
		p.next()
		return ast.VisibilityPublic, nil
	case token.PRIV:
		p.next()
		return ast.VisibilityPrivate, nil
	}
	return ast.VisibilityNone, errAt(tok.Pos(), "expected pub or priv, found %s %q", tok.Type, tok.Literal)
}

func (p *Parser) parseDelStmt() (*ast.Del, error) {
	pos := p.peek().Pos()
	if _, err := p.expect(token.DEL, "del"); err != nil {
		return nil, err
	}
	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewDel(pos, inner), nil
}

func (p *Parser) parseEnumKey() (*ast.EnumType, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if p.at(token.ASSIGN) {
		p.next()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewEnumType(name.Pos(), name, value), nil
	}
	return ast.NewEnumType(name.Pos(), name, nil), nil
}

func (p *Parser) parseEnumDecl() (*ast.EnumDecl, error) {
	pos := p.peek().Pos()
	if _, err := p.expect(token.ENUM, "enum"); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	var underlying ast.Node
	if p.at(token.COLON) {
		p.next()
		t, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		underlying = t
	}
	if _, err := p.expect(token.LBRACE, "{"); err != nil {
		return nil, err
	}
	var keys []*ast.EnumType
	for !p.at(token.RBRACE) {
		k, err := p.parseEnumKey()
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		if p.at(token.COMMA) {
			p.next()
		} else {
			break
		}
	}
	if _, err := p.expect(token.RBRACE, "}"); err != nil {
		return nil, err
	}
	return ast.NewEnumDecl(pos, name, underlying, keys), nil
}

var operatorTokens = map[token.Type]bool{
	token.PLUS: true, token.MINUS: true, token.MUL: true, token.FORWARDSLASH: true,
}

func (p *Parser) parseOpID() (string, error) {
	tok := p.peek()
	if !operatorTokens[tok.Type] {
		return "", errAt(tok.Pos(), "expected an overloadable operator, found %s %q", tok.Type, tok.Literal)
	}
	p.next()
	return tok.Literal, nil
}

func (p *Parser) parseOperatorDecl() (*ast.OperatorDecl, error) {
	pos := p.peek().Pos()
	if _, err := p.expect(token.OPERATOR, "operator"); err != nil {
		return nil, err
	}
	op, err := p.parseOpID()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	isConst := false
	if p.at(token.CONST) {
		p.next()
		isConst = true
	}
	var retType ast.Node
	if p.at(token.ARROW) {
		p.next()
		t, err := p.parseTypeSpec()
		if err != nil {
			return nil, err
		}
		retType = t
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	decl := ast.NewOperatorDecl(pos, op, params, retType, body)
	decl.IsConst = isConst
	return decl, nil
}

// ---- statements ----

// setVisibility and setStatic apply a preceding "pub"/"priv"/"static"
// modifier to whichever of the five declaration kinds that can carry one
// (VarDecl, FuncDecl, OperatorDecl, EnumDecl, ClassDecl); they report false
// for anything else, which the caller treats as a fatal error.
func setVisibility(n ast.Node, v ast.Visibility) bool {
	switch decl := n.(type) {
	case *ast.VarDecl:
		decl.Visibility = v
	case *ast.FuncDecl:
		decl.Visibility = v
	case *ast.OperatorDecl:
		decl.Visibility = v
	case *ast.EnumDecl:
		decl.Visibility = v
	case *ast.ClassDecl:
		decl.Visibility = v
	default:
		return false
	}
	return true
}

func setStatic(n ast.Node) bool {
	switch decl := n.(type) {
	case *ast.VarDecl:
		decl.IsStatic = true
	case *ast.FuncDecl:
		decl.IsStatic = true
	case *ast.OperatorDecl:
		decl.IsStatic = true
	case *ast.EnumDecl:
		decl.IsStatic = true
	case *ast.ClassDecl:
		decl.IsStatic = true
	default:
		return false
	}
	return true
}

// parseStatement parses one statement. isVirtual is threaded through from
// a preceding "virtual" keyword so parseFuncDecl knows a bare ";" is
// allowed in place of a body. A nil, nil return means the statement was a
// no-op (a bare ";", or the EOF guard) and contributes nothing to the
// enclosing block.
func (p *Parser) parseStatement(isVirtual bool) (*ast.Statement, error) {
	tok := p.peek()

	switch tok.Type {
	case token.EOF:
		p.next()
		return nil, nil

	case token.CPPLIT:
		p.next()
		return ast.NewStatement(tok.Pos(), ast.NewRawLiteral(tok.Pos(), tok.Literal)), nil

	case token.IMPORT:
		p.next()
		var imp ast.Node
		if p.at(token.STRING) {
			lit := p.next()
			imp = ast.NewImport(lit.Pos(), lit.Literal)
		}
		if _, err := p.expect(token.SEMI, ";"); err != nil {
			return nil, err
		}
		return ast.NewStatement(tok.Pos(), imp), nil

	case token.SEMI:
		p.next()
		return nil, nil

	case token.TYPE_KEY:
		node, err := p.parseTypeDecl()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI, ";"); err != nil {
			return nil, err
		}
		return ast.NewStatement(tok.Pos(), node), nil

	case token.RET:
		node, err := p.parseReturnStmt()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI, ";"); err != nil {
			return nil, err
		}
		return ast.NewStatement(tok.Pos(), node), nil

	case token.DEL:
		node, err := p.parseDelStmt()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI, ";"); err != nil {
			return nil, err
		}
		return ast.NewStatement(tok.Pos(), node), nil

	case token.LBRACE:
		node, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return ast.NewStatement(tok.Pos(), node), nil

	case token.IF:
		node, err := p.parseIfStmt()
		if err != nil {
			return nil, err
		}
		return ast.NewStatement(tok.Pos(), node), nil

	case token.WHILE:
		node, err := p.parseWhileStmt()
		if err != nil {
			return nil, err
		}
		return ast.NewStatement(tok.Pos(), node), nil

	case token.FOR:
		node, err := p.parseForStmt()
		if err != nil {
			return nil, err
		}
		return ast.NewStatement(tok.Pos(), node), nil

	case token.BREAK:
		// The trailing ";" is deliberately left unconsumed here, matching
		// the reference parser: the next statement() call sees it as a
		// bare SEMI and discards it as a no-op, so the source text's
		// semicolon is still absorbed, just one statement later.
		p.next()
		return ast.NewStatement(tok.Pos(), ast.NewBreak(tok.Pos())), nil

	case token.CONTINUE:
		p.next()
		if _, err := p.expect(token.SEMI, ";"); err != nil {
			return nil, err
		}
		return ast.NewStatement(tok.Pos(), ast.NewContinue(tok.Pos())), nil

	case token.PUB, token.PRIV:
		vis, err := p.parseProtectionDecl()
		if err != nil {
			return nil, err
		}
		inner, err := p.parseStatement(isVirtual)
		if err != nil {
			return nil, err
		}
		if inner == nil || !setVisibility(inner.Inner, vis) {
			return nil, errAt(tok.Pos(), "pub/priv cannot modify this statement")
		}
		return inner, nil

	case token.STATIC:
		p.next()
		inner, err := p.parseStatement(isVirtual)
		if err != nil {
			return nil, err
		}
		if inner == nil || !setStatic(inner.Inner) {
			return nil, errAt(tok.Pos(), "static cannot modify this statement")
		}
		return inner, nil

	case token.VIRTUAL:
		p.next()
		inner, err := p.parseStatement(true)
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return nil, errAt(tok.Pos(), "virtual can only modify a function declaration")
		}
		fn, ok := inner.Inner.(*ast.FuncDecl)
		if !ok {
			return nil, errAt(tok.Pos(), "virtual can only modify a function declaration")
		}
		fn.IsVirtual = true
		return inner, nil

	case token.LET, token.MUT:
		node, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI, ";"); err != nil {
			return nil, err
		}
		return ast.NewStatement(tok.Pos(), node), nil

	case token.CLASS:
		node, err := p.parseClassDecl()
		if err != nil {
			return nil, err
		}
		return ast.NewStatement(tok.Pos(), node), nil

	case token.ENUM:
		node, err := p.parseEnumDecl()
		if err != nil {
			return nil, err
		}
		return ast.NewStatement(tok.Pos(), node), nil

	case token.TILDE:
		p.next()
		node, err := p.parseFuncDecl(isVirtual)
		if err != nil {
			return nil, err
		}
		node.MethodKind = ast.MethodDestructor
		return ast.NewStatement(tok.Pos(), node), nil

	case token.OPERATOR:
		node, err := p.parseOperatorDecl()
		if err != nil {
			return nil, err
		}
		return ast.NewStatement(tok.Pos(), node), nil

	case token.IDENT:
		node, err := speculative(p, func() (*ast.FuncDecl, error) { return p.parseFuncDecl(isVirtual) })
		if err != nil {
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.SEMI, ";"); err != nil {
				return nil, err
			}
			return ast.NewStatement(tok.Pos(), expr), nil
		}
		return ast.NewStatement(tok.Pos(), node), nil
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI, ";"); err != nil {
		return nil, err
	}
	return ast.NewStatement(tok.Pos(), expr), nil
}
