package dice

import (
	"fmt"
	"slices"
)

// RollSum rolls count dice with the given number of sides and returns their
// sum. A count below one rolls nothing and sums to 0; a count above MaxDice
// fails with ErrTooManyDice.
//
// Precondition: src must be non-nil.
// Postcondition: for count >= 1 the result lies in [count, count*sides].
func RollSum(src Source, count, sides int) (int, error) {
	r, err := rollSum(src, count, sides, false)
	if err != nil {
		return 0, err
	}
	return r.Total, nil
}

// RollChoose rolls count dice and sums the keep highest. A keep of zero or
// less sums to 0.
//
// Precondition: src must be non-nil.
// Postcondition: fails when sides < 1, keep > count or count > MaxDice.
func RollChoose(src Source, count, sides, keep int) (int, error) {
	r, err := rollChoose(src, count, sides, keep)
	if err != nil {
		return 0, err
	}
	return r.Total, nil
}

// MaxDice is the largest number of dice a single group may roll.
const MaxDice = 1 << 20

func checkCount(count int) error {
	if count > MaxDice {
		return recoverable(fmt.Errorf("%w: %d exceeds %d", ErrTooManyDice, count, MaxDice))
	}
	return nil
}

// draw rolls count dice and returns their sum. Faces are only kept when
// record is set.
func draw(src Source, count, sides int, record bool) (int, []int) {
	var faces []int
	if record {
		faces = make([]int, 0, max(count, 0))
	}
	total := 0
	for i := 0; i < count; i++ {
		f := src.Intn(sides) + 1
		total += f
		if record {
			faces = append(faces, f)
		}
	}
	return total, faces
}

func rollSum(src Source, count, sides int, record bool) (DieRoll, error) {
	if sides < 1 {
		return DieRoll{}, recoverable(ErrDiceSides)
	}
	if err := checkCount(count); err != nil {
		return DieRoll{}, err
	}
	total, faces := draw(src, count, sides, record)
	return DieRoll{Count: count, Sides: sides, Faces: faces, Total: total}, nil
}

func rollChoose(src Source, count, sides, keep int) (DieRoll, error) {
	if sides < 1 {
		return DieRoll{}, recoverable(ErrDiceSides)
	}
	if keep > count {
		return DieRoll{}, recoverable(ErrChooseTooMany)
	}
	if err := checkCount(count); err != nil {
		return DieRoll{}, err
	}
	_, faces := draw(src, count, sides, true)

	sorted := slices.Clone(faces)
	slices.SortFunc(sorted, func(a, b int) int { return b - a })
	total := 0
	for i := 0; i < keep && i < len(sorted); i++ {
		total += sorted[i]
	}
	return DieRoll{Count: count, Sides: sides, Keep: keep, Chosen: true, Faces: faces, Total: total}, nil
}
