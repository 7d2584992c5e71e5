package dice

// Validate reports whether toks is structurally well formed: parentheses
// balance, at most one repeat marker appears and only outside parentheses,
// and values alternate with operators, ending on a value.
func Validate(toks []Token) bool {
	return balanced(toks) && alternates(toks)
}

func balanced(toks []Token) bool {
	depth := 0
	seenRepeat := false
	for _, t := range toks {
		switch t.Kind {
		case KindLParen:
			depth++
		case KindRParen:
			depth--
			if depth < 0 {
				return false
			}
		case KindRepeat:
			if seenRepeat || depth != 0 {
				return false
			}
			seenRepeat = true
		}
	}
	return depth == 0
}

func alternates(toks []Token) bool {
	expectValue := true
	for _, t := range toks {
		if expectValue {
			switch t.Kind {
			case KindNumber:
				expectValue = false
			case KindLParen:
			default:
				return false
			}
			continue
		}
		switch t.Kind {
		case KindNumber, KindLParen:
			return false
		case KindRParen:
		default:
			expectValue = true
		}
	}
	return !expectValue
}
