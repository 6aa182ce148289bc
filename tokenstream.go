package stone

// A TokenStream is a FIFO buffer over a Lexer providing Read (consume and
// return next) and Peek(k) (return the token at offset k without consuming),
// filling the buffer lazily from the Lexer. Once the Lexer starts yielding
// EOF, the stream keeps yielding it indefinitely.
type TokenStream struct {
	lex *Lexer
	buf []Token
}

// NewTokenStream wraps a Lexer in a buffered lookahead stream.
func NewTokenStream(lex *Lexer) *TokenStream {
	return &TokenStream{lex: lex}
}

// fill ensures the buffer holds at least n+1 tokens.
func (s *TokenStream) fill(n int) error {
	for len(s.buf) <= n {
		tok, err := s.lex.Read()
		if err != nil {
			return err
		}
		s.buf = append(s.buf, tok)
	}
	return nil
}

// Peek returns the token k positions ahead of the next unread token, without
// consuming anything. Peek(0) is the same token Read would return next.
func (s *TokenStream) Peek(k int) (Token, error) {
	if err := s.fill(k); err != nil {
		return Token{}, err
	}
	return s.buf[k], nil
}

// Read consumes and returns the next token.
func (s *TokenStream) Read() (Token, error) {
	if err := s.fill(0); err != nil {
		return Token{}, err
	}
	tok := s.buf[0]
	s.buf = s.buf[1:]
	return tok, nil
}
