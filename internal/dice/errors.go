package dice

import (
	"errors"
	"fmt"
)

// Severity classifies how far an evaluation failure should propagate.
type Severity int

const (
	// Recoverable failures are caused by bad user input; callers report them
	// and continue with the next expression.
	Recoverable Severity = iota
	// Fatal failures mean the validator and evaluator disagree about the
	// grammar. They are invariant violations and must not be suppressed.
	Fatal
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case Recoverable:
		return "recoverable"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Recoverable failures.
var (
	ErrInvalidOperator   = errors.New("not a valid operation")
	ErrNumberRange       = errors.New("number out of range")
	ErrBadExpression     = errors.New("bad expression string")
	ErrDiceSides         = errors.New("dice number must be at least 1")
	ErrChooseTooMany     = errors.New("cannot choose more dice than rolled")
	ErrTooManyDice       = errors.New("too many dice")
	ErrTooManyRepeats    = errors.New("too many repetitions")
	ErrDivideByZero      = errors.New("cannot divide by zero")
	ErrModByZero         = errors.New("cannot mod by zero")
	ErrChooseWithoutDice = errors.New("choose without dice")
	ErrIrreducible       = errors.New("could not fully reduce expression")
)

// Fatal failures.
var (
	ErrOperands   = errors.New("operator arguments must be numbers")
	ErrUnbalanced = errors.New("unbalanced parentheses")
)

// Error tags an underlying error with its Severity.
type Error struct {
	Severity Severity
	Err      error
}

// Error returns the message of the wrapped error.
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error so errors.Is matches the sentinels above.
func (e *Error) Unwrap() error {
	return e.Err
}

func recoverable(err error) error {
	return &Error{Severity: Recoverable, Err: err}
}

func fatal(err error) error {
	return &Error{Severity: Fatal, Err: err}
}

// IsFatal reports whether err carries the Fatal severity anywhere in its chain.
func IsFatal(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Severity == Fatal
}
