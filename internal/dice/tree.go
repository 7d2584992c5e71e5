package dice

// The expression tree mirrors the precedence tiers: a group is a chain of
// additive terms, a term is a chain of multiplicative factors, and a factor is
// an operand followed by dice and choose links.

type operand struct {
	value int
	sub   *group // non-nil for a parenthesized operand
}

type linkKind int

const (
	linkDice   linkKind = iota // d sides [: keep]
	linkChoose                 // ": keep" with no dice before it
)

type link struct {
	kind linkKind
	arg  operand  // sides for linkDice, keep for linkChoose
	keep *operand // optional keep count for linkDice
}

type factor struct {
	base  operand
	links []link
}

type term struct {
	factors []factor
	ops     []TokenKind // len(ops) == len(factors)-1
}

type group struct {
	terms []term
	ops   []TokenKind // len(ops) == len(terms)-1
}

type builder struct {
	toks []Token
	pos  int
}

// build turns a token sequence without repeat markers into a group.
//
// A missing operand or unmatched parenthesis is Fatal: Validate already
// rejects both. Tokens left over after a complete group are Recoverable.
func build(toks []Token) (*group, error) {
	b := &builder{toks: toks}
	g, err := b.group()
	if err != nil {
		return nil, err
	}
	if b.pos != len(b.toks) {
		return nil, recoverable(ErrIrreducible)
	}
	return g, nil
}

func (b *builder) peek() (TokenKind, bool) {
	if b.pos >= len(b.toks) {
		return 0, false
	}
	return b.toks[b.pos].Kind, true
}

func (b *builder) group() (*group, error) {
	t, err := b.term()
	if err != nil {
		return nil, err
	}
	g := &group{terms: []term{t}}
	for {
		k, ok := b.peek()
		if !ok || (k != KindAdd && k != KindSubtract) {
			return g, nil
		}
		b.pos++
		t, err := b.term()
		if err != nil {
			return nil, err
		}
		g.ops = append(g.ops, k)
		g.terms = append(g.terms, t)
	}
}

func (b *builder) term() (term, error) {
	f, err := b.factor()
	if err != nil {
		return term{}, err
	}
	t := term{factors: []factor{f}}
	for {
		k, ok := b.peek()
		if !ok || (k != KindMultiply && k != KindDivide && k != KindModulo) {
			return t, nil
		}
		b.pos++
		f, err := b.factor()
		if err != nil {
			return term{}, err
		}
		t.ops = append(t.ops, k)
		t.factors = append(t.factors, f)
	}
}

func (b *builder) factor() (factor, error) {
	base, err := b.operand()
	if err != nil {
		return factor{}, err
	}
	f := factor{base: base}
	for {
		k, ok := b.peek()
		if !ok {
			return f, nil
		}
		switch k {
		case KindDice:
			b.pos++
			sides, err := b.operand()
			if err != nil {
				return factor{}, err
			}
			l := link{kind: linkDice, arg: sides}
			if next, ok := b.peek(); ok && next == KindChoose {
				b.pos++
				keep, err := b.operand()
				if err != nil {
					return factor{}, err
				}
				l.keep = &keep
			}
			f.links = append(f.links, l)
		case KindChoose:
			b.pos++
			keep, err := b.operand()
			if err != nil {
				return factor{}, err
			}
			f.links = append(f.links, link{kind: linkChoose, arg: keep})
		default:
			return f, nil
		}
	}
}

func (b *builder) operand() (operand, error) {
	k, ok := b.peek()
	if !ok {
		return operand{}, fatal(ErrOperands)
	}
	switch k {
	case KindNumber:
		v := b.toks[b.pos].Value
		b.pos++
		return operand{value: v}, nil
	case KindLParen:
		b.pos++
		sub, err := b.group()
		if err != nil {
			return operand{}, err
		}
		closing, ok := b.peek()
		if !ok {
			return operand{}, fatal(ErrUnbalanced)
		}
		if closing != KindRParen {
			return operand{}, recoverable(ErrIrreducible)
		}
		b.pos++
		return operand{sub: sub}, nil
	}
	return operand{}, fatal(ErrOperands)
}
