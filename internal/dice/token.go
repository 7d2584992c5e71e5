package dice

import "strconv"

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	KindNumber TokenKind = iota
	KindRepeat
	KindMultiply
	KindDivide
	KindModulo
	KindAdd
	KindSubtract
	KindDice
	KindLParen
	KindRParen
	KindChoose
)

var kindSymbols = map[TokenKind]string{
	KindRepeat:   "x",
	KindMultiply: "*",
	KindDivide:   "/",
	KindModulo:   "%",
	KindAdd:      "+",
	KindSubtract: "-",
	KindDice:     "d",
	KindLParen:   "(",
	KindRParen:   ")",
	KindChoose:   ":",
}

// String returns the operator symbol, or "number".
func (k TokenKind) String() string {
	if k == KindNumber {
		return "number"
	}
	if s, ok := kindSymbols[k]; ok {
		return s
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Token is one lexical element of an expression. Value is only meaningful
// for KindNumber.
type Token struct {
	Kind  TokenKind
	Value int
}

// Num returns a number token.
func Num(v int) Token {
	return Token{Kind: KindNumber, Value: v}
}

// Op returns an operator token of kind k.
func Op(k TokenKind) Token {
	return Token{Kind: k}
}

// String renders the token as it would appear in an expression.
func (t Token) String() string {
	if t.Kind == KindNumber {
		return strconv.Itoa(t.Value)
	}
	return t.Kind.String()
}
