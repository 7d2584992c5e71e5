package dice

import "fmt"

type evaluator struct {
	src   Source
	trace func(DieRoll)
}

type resolvedLink struct {
	kind    linkKind
	arg     int
	keep    int
	hasKeep bool
}

type resolvedFactor struct {
	base  int
	links []resolvedLink
}

// Evaluate reduces a token sequence without repeat markers to one integer,
// rolling dice from src.
//
// Postcondition: returns the value, or an *Error whose Severity tells the
// caller whether to continue.
func Evaluate(toks []Token, src Source) (int, error) {
	g, err := build(toks)
	if err != nil {
		return 0, err
	}
	ev := &evaluator{src: src}
	return ev.eval(g)
}

// eval runs the tiers over the whole group, each as a full left-to-right
// pass: nested groups, then dice and choose, then multiplicative, then
// additive operators. Draw order and the first reported error follow the
// same order as an in-place reduction of the token sequence would.
func (ev *evaluator) eval(g *group) (int, error) {
	resolved := make([][]resolvedFactor, len(g.terms))
	for i, t := range g.terms {
		resolved[i] = make([]resolvedFactor, len(t.factors))
		for j, f := range t.factors {
			rf, err := ev.resolve(f)
			if err != nil {
				return 0, err
			}
			resolved[i][j] = rf
		}
	}

	rolled := make([][]int, len(g.terms))
	for i, fs := range resolved {
		rolled[i] = make([]int, len(fs))
		for j, rf := range fs {
			v, err := ev.roll(rf)
			if err != nil {
				return 0, err
			}
			rolled[i][j] = v
		}
	}

	totals := make([]int, len(g.terms))
	for i, t := range g.terms {
		acc := rolled[i][0]
		for k, op := range t.ops {
			var err error
			if acc, err = apply(op, acc, rolled[i][k+1]); err != nil {
				return 0, err
			}
		}
		totals[i] = acc
	}

	acc := totals[0]
	for k, op := range g.ops {
		var err error
		if acc, err = apply(op, acc, totals[k+1]); err != nil {
			return 0, err
		}
	}
	return acc, nil
}

func (ev *evaluator) value(o operand) (int, error) {
	if o.sub == nil {
		return o.value, nil
	}
	return ev.eval(o.sub)
}

func (ev *evaluator) resolve(f factor) (resolvedFactor, error) {
	base, err := ev.value(f.base)
	if err != nil {
		return resolvedFactor{}, err
	}
	rf := resolvedFactor{base: base, links: make([]resolvedLink, len(f.links))}
	for i, l := range f.links {
		arg, err := ev.value(l.arg)
		if err != nil {
			return resolvedFactor{}, err
		}
		rl := resolvedLink{kind: l.kind, arg: arg}
		if l.keep != nil {
			if rl.keep, err = ev.value(*l.keep); err != nil {
				return resolvedFactor{}, err
			}
			rl.hasKeep = true
		}
		rf.links[i] = rl
	}
	return rf, nil
}

func (ev *evaluator) roll(rf resolvedFactor) (int, error) {
	acc := rf.base
	for _, l := range rf.links {
		if l.kind == linkChoose {
			return 0, recoverable(ErrChooseWithoutDice)
		}
		var (
			r   DieRoll
			err error
		)
		if l.hasKeep {
			r, err = rollChoose(ev.src, acc, l.arg, l.keep)
		} else {
			r, err = rollSum(ev.src, acc, l.arg, ev.trace != nil)
		}
		if err != nil {
			return 0, err
		}
		if ev.trace != nil {
			ev.trace(r)
		}
		acc = r.Total
	}
	return acc, nil
}

// apply performs one multiplicative or additive operation.
func apply(op TokenKind, a, b int) (int, error) {
	switch op {
	case KindMultiply:
		return a * b, nil
	case KindDivide:
		if b == 0 {
			return 0, recoverable(ErrDivideByZero)
		}
		return a / b, nil
	case KindModulo:
		if b == 0 {
			return 0, recoverable(ErrModByZero)
		}
		return a % b, nil
	case KindAdd:
		return a + b, nil
	case KindSubtract:
		return a - b, nil
	}
	return 0, fatal(fmt.Errorf("%w: %s is not an arithmetic operator", ErrOperands, op))
}
