package dice

import (
	"fmt"
	"slices"
)

// MaxRepetitions is the largest repetition count an "x" prefix may yield.
const MaxRepetitions = 1 << 20

// Expression is a tokenized and validated dice expression. It holds no
// evaluation state, so one Expression may be evaluated any number of times.
type Expression struct {
	text  string
	count *group // repetition count; nil when there is no "x"
	body  *group
}

// Parse tokenizes and validates text.
//
// Postcondition: returns a ready-to-evaluate Expression, or an *Error.
// Bad input is Recoverable; a Fatal error means the validator accepted a
// sequence the tree builder could not follow.
func Parse(text string) (*Expression, error) {
	toks, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	if !Validate(toks) {
		return nil, recoverable(ErrBadExpression)
	}

	e := &Expression{text: text}
	body := toks
	if i := slices.IndexFunc(toks, func(t Token) bool { return t.Kind == KindRepeat }); i >= 0 {
		if e.count, err = build(toks[:i]); err != nil {
			return nil, err
		}
		body = toks[i+1:]
	}
	if e.body, err = build(body); err != nil {
		return nil, err
	}
	return e, nil
}

// MustParse parses text and panics on error. Useful for package-level values.
//
// Precondition: text must be a valid dice expression.
func MustParse(text string) *Expression {
	e, err := Parse(text)
	if err != nil {
		panic("dice: MustParse failed for expression " + text + ": " + err.Error())
	}
	return e
}

// String returns the text the Expression was parsed from.
func (e *Expression) String() string {
	return e.text
}

// Repeated reports whether the expression carries an "x" repetition prefix.
func (e *Expression) Repeated() bool {
	return e.count != nil
}

// Eval evaluates the expression, returning one value per repetition.
//
// Precondition: src must be non-nil.
// Postcondition: len(result) == repetition count, or 0 when the count is
// not positive. Dice are rolled afresh for every repetition.
func (e *Expression) Eval(src Source) ([]int, error) {
	return e.EvalTrace(src, nil)
}

// EvalTrace is Eval that also passes every group of dice rolled to trace.
// trace may be nil.
func (e *Expression) EvalTrace(src Source, trace func(DieRoll)) ([]int, error) {
	ev := &evaluator{src: src, trace: trace}

	reps := 1
	if e.count != nil {
		var err error
		if reps, err = ev.eval(e.count); err != nil {
			return nil, err
		}
	}

	if reps > MaxRepetitions {
		return nil, recoverable(fmt.Errorf("%w: %d exceeds %d", ErrTooManyRepeats, reps, MaxRepetitions))
	}
	results := make([]int, 0, max(reps, 0))
	for i := 0; i < reps; i++ {
		v, err := ev.eval(e.body)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}
