package stone

/*
Grammar (EBNF):

	program        = top-stmt (sep top-stmt)* EOF
	sep            = ';' | EOL
	top-stmt       = class-stmt | stmt
	class-stmt     = 'class' Ident ('extends' Ident)? compound
	stmt           = proc-stmt | if-stmt | while-stmt | return-stmt | compound | null | expr
	proc-stmt      = 'def' Ident param-list compound
	return-stmt    = 'return' expr?   (supplemental: see SPEC_FULL.md §9)
	if-stmt        = 'if' expr compound ('else' (if-stmt | compound))?
	while-stmt     = 'while' expr compound
	compound       = '{' stmt (sep stmt)* '}'
	null           = ε  (current token is EOF/EOL/';'/'}')
	param-list     = '(' (Ident (',' Ident)*)? ')'
	expr           = binary(0)
	binary(min)    = unary ( op[prec>=min] binary(prec + (assoc?0:1)) )*
	unary          = '-' postfix | postfix
	postfix        = primary ( '(' args? ')' | '.' (Ident | 'new') | '[' expr ']' )*
	primary        = '(' expr ')' | 'fun' param-list compound
	               | '[' (expr (',' expr)*)? ']' | Ident | Int | Str
*/

// A Parser consumes a TokenStream and produces a Program AST via recursive
// descent with precedence climbing for binary expressions.
type Parser struct {
	toks *TokenStream
}

// NewParser constructs a Parser reading from lex through a fresh
// TokenStream.
func NewParser(lex *Lexer) *Parser {
	return &Parser{toks: NewTokenStream(lex)}
}

// Parse consumes the whole token stream and returns the resulting Program,
// or the first ParseError / lex error encountered.
func (p *Parser) Parse() (*Program, error) {
	first, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	line := first.Line

	var stmts []Statement
	s, err := p.parseTopStmt()
	if err != nil {
		return nil, err
	}
	stmts = append(stmts, s)

	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		if !isSepToken(tok) {
			break
		}
		if _, err := p.toks.Read(); err != nil {
			return nil, err
		}
		s, err := p.parseTopStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}

	tok, err := p.toks.Read()
	if err != nil {
		return nil, err
	}
	if tok.Kind != EOF {
		return nil, unexpectedToken(tok, "end of file")
	}

	return NewProgram(line, stmts), nil
}

func isSepToken(tok Token) bool {
	return tok.Kind == Semicolon || tok.Kind == EOL
}

func isNullStart(tok Token) bool {
	return tok.Kind == EOF || tok.Kind == EOL || tok.Kind == Semicolon || tok.Kind == RightBrace
}

// --- token plumbing ---

func (p *Parser) peek(k int) (Token, error) {
	return p.toks.Peek(k)
}

func (p *Parser) read() (Token, error) {
	return p.toks.Read()
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok, err := p.read()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, unexpectedToken(tok, kind.String())
	}
	return tok, nil
}

// --- statements ---

func (p *Parser) parseTopStmt() (Statement, error) {
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if tok.Kind == KeywordClass {
		return p.parseClass()
	}
	return p.parseStmt()
}

func (p *Parser) parseStmt() (Statement, error) {
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	switch {
	case isNullStart(tok):
		return nil, nil
	case tok.Kind == KeywordDef:
		return p.parseProcedure()
	case tok.Kind == KeywordIf:
		return p.parseIf()
	case tok.Kind == KeywordWhile:
		return p.parseWhile()
	case tok.Kind == KeywordReturn:
		return p.parseReturn()
	case tok.Kind == LeftBrace:
		return p.parseCompound()
	default:
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return NewExprStatement(e), nil
	}
}

func (p *Parser) parseClass() (Statement, error) {
	start, err := p.expect(KeywordClass)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(Ident)
	if err != nil {
		return nil, err
	}
	var super string
	if tok, err := p.peek(0); err != nil {
		return nil, err
	} else if tok.Kind == KeywordExtends {
		if _, err := p.read(); err != nil {
			return nil, err
		}
		superTok, err := p.expect(Ident)
		if err != nil {
			return nil, err
		}
		super = superTok.Text
	}
	body, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	return NewClassDecl(start.Line, name.Text, super, body), nil
}

func (p *Parser) parseProcedure() (Statement, error) {
	start, err := p.expect(KeywordDef)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(Ident)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	return NewProcedure(start.Line, name.Text, params, body), nil
}

func (p *Parser) parseIf() (Statement, error) {
	start, err := p.expect(KeywordIf)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	var els Statement
	if tok, err := p.peek(0); err != nil {
		return nil, err
	} else if tok.Kind == KeywordElse {
		if _, err := p.read(); err != nil {
			return nil, err
		}
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		if tok.Kind == KeywordIf {
			els, err = p.parseIf()
		} else {
			els, err = p.parseCompound()
		}
		if err != nil {
			return nil, err
		}
	}
	return NewIf(start.Line, cond, then, els), nil
}

func (p *Parser) parseWhile() (Statement, error) {
	start, err := p.expect(KeywordWhile)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	return NewWhile(start.Line, cond, body), nil
}

func (p *Parser) parseReturn() (Statement, error) {
	start, err := p.expect(KeywordReturn)
	if err != nil {
		return nil, err
	}
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if isNullStart(tok) {
		return NewReturn(start.Line, nil), nil
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return NewReturn(start.Line, value), nil
}

func (p *Parser) parseCompound() (*Compound, error) {
	start, err := p.expect(LeftBrace)
	if err != nil {
		return nil, err
	}

	var stmts []Statement
	s, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	stmts = append(stmts, s)

	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		if !isSepToken(tok) {
			break
		}
		if _, err := p.read(); err != nil {
			return nil, err
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}

	if _, err := p.expect(RightBrace); err != nil {
		return nil, err
	}
	return NewCompound(start.Line, stmts), nil
}

func (p *Parser) parseParameterList() (*ParameterList, error) {
	start, err := p.expect(LeftParen)
	if err != nil {
		return nil, err
	}
	var names []string
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if tok.Kind != RightParen {
		for {
			id, err := p.expect(Ident)
			if err != nil {
				return nil, err
			}
			names = append(names, id.Text)
			tok, err := p.peek(0)
			if err != nil {
				return nil, err
			}
			if tok.Kind != Comma {
				break
			}
			if _, err := p.read(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(RightParen); err != nil {
		return nil, err
	}
	return NewParameterList(start.Line, names), nil
}

// --- expressions ---

func (p *Parser) parseExpr() (Expression, error) {
	return p.binary(0)
}

// binary implements precedence climbing per the grammar's binary(min) rule:
// the recursive call for the right-hand side uses prec+1 for left-assoc
// operators so it can't reabsorb an operator of equal precedence, and prec
// for right-assoc operators so it can.
func (p *Parser) binary(min int) (Expression, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		op, ok := operators[tok.Kind]
		if !ok || op.Prec < min {
			return left, nil
		}
		if _, err := p.read(); err != nil {
			return nil, err
		}
		nextMin := op.Prec
		if !op.Right {
			nextMin = op.Prec + 1
		}
		right, err := p.binary(nextMin)
		if err != nil {
			return nil, err
		}
		if tok.Kind == AssignTok {
			// Any expression is accepted as the LHS here; whether it is a
			// legal assignment target (Identifier, MemberAccess, ArrayIndex)
			// is checked by Evaluator.evalAssign, not here — see §4.7/§7.
			left = NewAssign(tok.Line, left, right)
		} else {
			left = NewBinary(tok.Line, tok.Kind, left, right)
		}
	}
}

func (p *Parser) unary() (Expression, error) {
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if tok.Kind == Minus {
		if _, err := p.read(); err != nil {
			return nil, err
		}
		operand, err := p.postfix()
		if err != nil {
			return nil, err
		}
		return NewUnary(tok.Line, Minus, operand), nil
	}
	return p.postfix()
}

func (p *Parser) postfix() (Expression, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case LeftParen:
			args, err := p.parseArgumentList()
			if err != nil {
				return nil, err
			}
			e = NewCall(tok.Line, e, args)
		case Dot:
			if _, err := p.read(); err != nil {
				return nil, err
			}
			member, err := p.read()
			if err != nil {
				return nil, err
			}
			// `new` is a reserved word but is still a valid member name, so
			// that `Class.new` parses as ordinary member access.
			if member.Kind != Ident && member.Kind != KeywordNew {
				return nil, unexpectedToken(member, Ident.String())
			}
			e = NewMemberAccess(tok.Line, e, member.Text)
		case LeftBracket:
			if _, err := p.read(); err != nil {
				return nil, err
			}
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RightBracket); err != nil {
				return nil, err
			}
			e = NewArrayIndex(tok.Line, e, idx)
		default:
			return e, nil
		}
	}
}

func (p *Parser) parseArgumentList() (*ArgumentList, error) {
	start, err := p.expect(LeftParen)
	if err != nil {
		return nil, err
	}
	var args []Expression
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	if tok.Kind != RightParen {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			tok, err := p.peek(0)
			if err != nil {
				return nil, err
			}
			if tok.Kind != Comma {
				break
			}
			if _, err := p.read(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(RightParen); err != nil {
		return nil, err
	}
	return NewArgumentList(start.Line, args), nil
}

func (p *Parser) primary() (Expression, error) {
	tok, err := p.peek(0)
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case LeftParen:
		if _, err := p.read(); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RightParen); err != nil {
			return nil, err
		}
		return e, nil

	case KeywordFun:
		if _, err := p.read(); err != nil {
			return nil, err
		}
		params, err := p.parseParameterList()
		if err != nil {
			return nil, err
		}
		body, err := p.parseCompound()
		if err != nil {
			return nil, err
		}
		return NewClosure(tok.Line, params, body), nil

	case LeftBracket:
		if _, err := p.read(); err != nil {
			return nil, err
		}
		var elems []Expression
		peeked, err := p.peek(0)
		if err != nil {
			return nil, err
		}
		if peeked.Kind != RightBracket {
			for {
				e, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				elems = append(elems, e)
				next, err := p.peek(0)
				if err != nil {
					return nil, err
				}
				if next.Kind != Comma {
					break
				}
				if _, err := p.read(); err != nil {
					return nil, err
				}
			}
		}
		if _, err := p.expect(RightBracket); err != nil {
			return nil, err
		}
		return NewArrayLiteral(tok.Line, elems), nil

	case Ident:
		if _, err := p.read(); err != nil {
			return nil, err
		}
		return NewIdentifier(tok.Line, tok.Text), nil

	case IntegerTok:
		if _, err := p.read(); err != nil {
			return nil, err
		}
		return NewIntegerLiteral(tok.Line, tok.IntValue), nil

	case StringTok:
		if _, err := p.read(); err != nil {
			return nil, err
		}
		return NewStringLiteral(tok.Line, tok.StrValue), nil

	default:
		return nil, unexpectedToken(tok, "an expression")
	}
}
