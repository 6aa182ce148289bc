package stone

// Operator describes one binary operator's place in the precedence table:
// its precedence (higher binds tighter) and whether it associates right.
type Operator struct {
	Prec  int
	Right bool
}

// operators is the binary operator precedence/associativity table from the
// grammar. Only kinds present here are recognized by Parser.binary; anything
// else ends the climb.
var operators = map[TokenKind]Operator{
	Star:    {Prec: 5, Right: false},
	Slash:   {Prec: 5, Right: false},
	Percent: {Prec: 5, Right: false},

	Plus:  {Prec: 4, Right: false},
	Minus: {Prec: 4, Right: false},

	LessThan:     {Prec: 3, Right: false},
	LessEqual:    {Prec: 3, Right: false},
	GreaterThan:  {Prec: 3, Right: false},
	GreaterEqual: {Prec: 3, Right: false},

	Equal:    {Prec: 2, Right: false},
	NotEqual: {Prec: 2, Right: false},

	AssignTok: {Prec: 1, Right: true},
}
