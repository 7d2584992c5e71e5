// Package dice implements the dice-notation expression language: tokenizing,
// structural validation, tiered evaluation, and the rolling primitives behind
// expressions such as "3d6+2", "4d6:3" and "2x(1d20+5)".
package dice

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// DieRoll records one group of dice rolled while evaluating an expression.
//
// Faces is nil for plain sums rolled without a trace; otherwise
// len(Faces) == max(Count, 0).
type DieRoll struct {
	Count  int   // number of dice rolled
	Sides  int   // faces per die
	Keep   int   // number of highest dice kept; meaningful only when Chosen
	Chosen bool  // true for "NdS:K" groups
	Faces  []int // individual die results in draw order
	Total  int   // value the group collapsed to
}

// String renders the group as "4d6:3 [6 5 2 1] = 13".
func (d DieRoll) String() string {
	notation := fmt.Sprintf("%dd%d", d.Count, d.Sides)
	if d.Chosen {
		notation += fmt.Sprintf(":%d", d.Keep)
	}
	return fmt.Sprintf("%s %v = %d", notation, d.Faces, d.Total)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (d DieRoll) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("count", d.Count)
	enc.AddInt("sides", d.Sides)
	if d.Chosen {
		enc.AddInt("keep", d.Keep)
	}
	if err := enc.AddArray("faces", zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
		for _, f := range d.Faces {
			ae.AppendInt(f)
		}
		return nil
	})); err != nil {
		return err
	}
	enc.AddInt("total", d.Total)
	return nil
}

type dieRolls []DieRoll

func (rs dieRolls) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, r := range rs {
		if err := enc.AppendObject(r); err != nil {
			return err
		}
	}
	return nil
}
