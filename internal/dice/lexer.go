package dice

import (
	"fmt"
	"strconv"
)

// operatorKind maps a single operator character to its token kind.
func operatorKind(c byte) (TokenKind, error) {
	switch c {
	case '*':
		return KindMultiply, nil
	case '/':
		return KindDivide, nil
	case '%':
		return KindModulo, nil
	case '+':
		return KindAdd, nil
	case '-':
		return KindSubtract, nil
	case 'd':
		return KindDice, nil
	case ':':
		return KindChoose, nil
	case 'x':
		return KindRepeat, nil
	case '(':
		return KindLParen, nil
	case ')':
		return KindRParen, nil
	}
	return 0, recoverable(fmt.Errorf("%w: %q", ErrInvalidOperator, c))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isSpace reports whether c separates tokens. Only the space character does;
// tabs and newlines are invalid characters.
func isSpace(c byte) bool {
	return c == ' '
}

// Tokenize splits text into tokens.
//
// Whitespace only separates tokens, so "1 2" yields two adjacent numbers and
// is left for Validate to reject. A 'd' that does not follow a number or a
// closing parenthesis gets an implicit count of 1, making "d6" equal "1d6".
//
// Postcondition: returns the token sequence, or a Recoverable error for a
// character outside the language or a digit run that does not fit an int.
func Tokenize(text string) ([]Token, error) {
	var toks []Token
	start := -1

	flush := func(end int) error {
		if start < 0 {
			return nil
		}
		n, err := strconv.Atoi(text[start:end])
		if err != nil {
			return recoverable(fmt.Errorf("%w: %s", ErrNumberRange, text[start:end]))
		}
		toks = append(toks, Num(n))
		start = -1
		return nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		if isDigit(c) {
			if start < 0 {
				start = i
			}
			continue
		}
		if err := flush(i); err != nil {
			return nil, err
		}
		if isSpace(c) {
			continue
		}
		if c == 'd' && needsImplicitCount(toks) {
			toks = append(toks, Num(1))
		}
		kind, err := operatorKind(c)
		if err != nil {
			return nil, err
		}
		toks = append(toks, Op(kind))
	}
	if err := flush(len(text)); err != nil {
		return nil, err
	}
	return toks, nil
}

func needsImplicitCount(toks []Token) bool {
	if len(toks) == 0 {
		return true
	}
	last := toks[len(toks)-1].Kind
	return last != KindNumber && last != KindRParen
}
