package dice

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result holds the full audit trail for one evaluated expression.
//
// Postcondition: len(Values) equals the expression's repetition count.
type Result struct {
	ID         string    // unique roll identifier used to correlate log lines
	Expression string    // original expression text, e.g. "3x2d6+1"
	Values     []int     // one value per repetition
	Rolls      []DieRoll // every dice group rolled, in draw order
}

// String returns a human-readable audit string in the format:
//
//	"3x1d1 → [1 1 1]"
//
// Precondition: r.Expression is non-empty.
func (r Result) String() string {
	if r.Expression == "" {
		panic("dice: Result.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s → %v", r.Expression, r.Values)
}

// Roller wraps a Source and logger to provide logged expression evaluation.
// Successful rolls are logged at debug level with the roll id, expression,
// values and dice groups.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll evaluates expr and logs the outcome.
//
// Precondition: expr must come from Parse.
// Postcondition: result logged; returns Result or error.
func (r *Roller) Roll(expr *Expression) (Result, error) {
	id := uuid.New().String()
	var rolls []DieRoll
	values, err := expr.EvalTrace(r.src, func(d DieRoll) {
		rolls = append(rolls, d)
	})
	if err != nil {
		r.logFailure(id, expr.String(), err)
		return Result{}, err
	}
	r.logger.Debug("dice roll",
		zap.String("roll_id", id),
		zap.String("expression", expr.String()),
		zap.Ints("values", values),
		zap.Array("dice", dieRolls(rolls)),
	)
	return Result{
		ID:         id,
		Expression: expr.String(),
		Values:     values,
		Rolls:      rolls,
	}, nil
}

// RollExpr parses text and rolls it, logging the result.
//
// Postcondition: Returns a Result or a parse/roll error.
func (r *Roller) RollExpr(text string) (Result, error) {
	e, err := Parse(text)
	if err != nil {
		r.logFailure("", text, err)
		return Result{}, err
	}
	return r.Roll(e)
}

func (r *Roller) logFailure(id, text string, err error) {
	fields := []zap.Field{
		zap.String("expression", text),
		zap.Error(err),
	}
	if id != "" {
		fields = append(fields, zap.String("roll_id", id))
	}
	if IsFatal(err) {
		r.logger.Error("dice roll invariant violated", fields...)
		return
	}
	r.logger.Debug("dice roll rejected", fields...)
}
