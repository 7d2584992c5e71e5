// Package driver evaluates a batch of dice expressions for the command line,
// reporting bad input per expression and aborting only on invariant
// violations.
package driver

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dnd/internal/dice"
	"github.com/cory-johannsen/dnd/internal/preset"
)

const indent = "    "

// Roller evaluates dice expressions on behalf of a Driver. *dice.Roller
// implements it.
type Roller interface {
	Roll(e *dice.Expression) (dice.Result, error)
	RollExpr(text string) (dice.Result, error)
}

// Driver prints the results of each input in turn.
type Driver struct {
	roller  Roller
	presets *preset.Registry
	out     io.Writer
	logger  *zap.Logger
}

// New creates a Driver. presets may be nil, in which case every "@name"
// input is reported as an unknown preset.
//
// Precondition: roller, out and logger must be non-nil.
func New(roller Roller, presets *preset.Registry, out io.Writer, logger *zap.Logger) *Driver {
	return &Driver{roller: roller, presets: presets, out: out, logger: logger}
}

// Run handles inputs in order. Each input is echoed followed by a colon,
// then one indented line per result or a single indented "error: <msg>" line.
//
// Postcondition: returns nil once every input has been handled, or the first
// dice.IsFatal error (or write error) immediately.
func (d *Driver) Run(inputs []string) error {
	var failed int
	for _, in := range inputs {
		ok, err := d.handle(in)
		if err != nil {
			return err
		}
		if !ok {
			failed++
		}
	}
	d.logger.Info("run complete",
		zap.Int("inputs", len(inputs)),
		zap.Int("failed", failed),
	)
	return nil
}

// handle evaluates one input. ok is false when a recoverable error was reported.
func (d *Driver) handle(in string) (ok bool, err error) {
	if _, err := fmt.Fprintf(d.out, "%s:\n", in); err != nil {
		return false, err
	}

	res, err := d.roll(in)
	if err != nil {
		if dice.IsFatal(err) {
			return false, fmt.Errorf("evaluating %q: %w", in, err)
		}
		_, werr := fmt.Fprintf(d.out, "%serror: %v\n", indent, err)
		return false, werr
	}
	for _, v := range res.Values {
		if _, err := fmt.Fprintf(d.out, "%s%d\n", indent, v); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (d *Driver) roll(in string) (dice.Result, error) {
	p, err := d.presets.Resolve(in)
	if err != nil {
		return dice.Result{}, err
	}
	if p == nil {
		return d.roller.RollExpr(in)
	}
	d.logger.Debug("resolved preset",
		zap.String("preset", p.ID),
		zap.String("expression", p.Expression),
	)
	return d.roller.Roll(p.Parsed())
}
