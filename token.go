package stone

import "fmt"

// TokenKind classifies a Token.
type TokenKind int

// Token kinds, in the order the lexer tries them.
const (
	EOF TokenKind = iota
	EOL
	Ident
	IntegerTok
	StringTok

	// Keywords.
	KeywordIf
	KeywordElse
	KeywordWhile
	KeywordDef
	KeywordFun
	KeywordReturn
	KeywordClass
	KeywordExtends
	KeywordNew

	// Punctuators.
	Plus
	Minus
	Star
	Slash
	Percent
	AssignTok
	Equal
	NotEqual
	LessThan
	LessEqual
	GreaterThan
	GreaterEqual
	Dot
	Comma
	Semicolon
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
)

var tokenKindNames = [...]string{
	EOF:           "end of file",
	EOL:           "end of line",
	Ident:         "identifier",
	IntegerTok:    "integer literal",
	StringTok:     "string literal",
	KeywordIf:     "if",
	KeywordElse:   "else",
	KeywordWhile:  "while",
	KeywordDef:    "def",
	KeywordFun:    "fun",
	KeywordReturn: "return",
	KeywordClass:  "class",
	KeywordExtends: "extends",
	KeywordNew:     "new",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	AssignTok:     "=",
	Equal:         "==",
	NotEqual:      "!=",
	LessThan:      "<",
	LessEqual:     "<=",
	GreaterThan:   ">",
	GreaterEqual:  ">=",
	Dot:           ".",
	Comma:         ",",
	Semicolon:     ";",
	LeftParen:     "(",
	RightParen:    ")",
	LeftBrace:     "{",
	RightBrace:    "}",
	LeftBracket:   "[",
	RightBracket:  "]",
}

// String returns the name of a token kind, as it appears in error messages.
func (k TokenKind) String() string {
	if int(k) < 0 || int(k) >= len(tokenKindNames) {
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
	return tokenKindNames[k]
}

// keywords maps a lexeme to its keyword kind. Checked after an identifier's
// maximal run has been scanned.
var keywords = map[string]TokenKind{
	"if":      KeywordIf,
	"else":    KeywordElse,
	"while":   KeywordWhile,
	"def":     KeywordDef,
	"fun":     KeywordFun,
	"return":  KeywordReturn,
	"class":   KeywordClass,
	"extends": KeywordExtends,
	"new":     KeywordNew,
}

// punctuators lists multi-character punctuators before their single-character
// prefixes, so the lexer's longest-match scan finds them first.
var punctuators = []struct {
	text string
	kind TokenKind
}{
	{"==", Equal},
	{"!=", NotEqual},
	{"<=", LessEqual},
	{">=", GreaterEqual},
	{"+", Plus},
	{"-", Minus},
	{"*", Star},
	{"/", Slash},
	{"%", Percent},
	{"=", AssignTok},
	{"<", LessThan},
	{">", GreaterThan},
	{".", Dot},
	{",", Comma},
	{";", Semicolon},
	{"(", LeftParen},
	{")", RightParen},
	{"{", LeftBrace},
	{"}", RightBrace},
	{"[", LeftBracket},
	{"]", RightBracket},
}

// Token is an immutable lexeme: its kind, its literal source text, the
// 1-based line it started on, and a kind-specific payload.
type Token struct {
	Kind TokenKind
	Text string
	Line int

	IntValue int32
	StrValue string
}

// IsTerminator reports whether the token ends a statement: end of file, end
// of line, or a semicolon.
func (t Token) IsTerminator() bool {
	switch t.Kind {
	case EOF, EOL, Semicolon:
		return true
	default:
		return false
	}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) @%d", t.Kind, t.Text, t.Line)
}
