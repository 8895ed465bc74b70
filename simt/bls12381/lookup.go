package bls12_381_simt

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/eon-protocol/eonkernel/simt"
)

// EvalLookup folds the five lookup-argument identities into value, one
// independent lane per row. Each step first scales the running accumulator
// by the folding challenge y, then adds the identity's term, so value ends
// up holding the y-weighted sum of all constraints.
//
// challenges is [y, beta, gamma]. table must already carry the upstream
// challenge-compressed combination of the looked-up columns. rotScale and
// size are powers of two; rotations wrap on the domain via bitmask. Only
// value is written.
func EvalLookup(
	grid *simt.Grid,
	value, table, permutedInputCoset, permutedTableCoset, productCoset []fr.Element,
	l0, lLast, lActiveRow []fr.Element,
	challenges [3]fr.Element,
	rotScale, size uint32,
) {
	y, beta, gamma := challenges[0], challenges[1], challenges[2]
	mask := size - 1

	var one fr.Element
	one.SetOne()

	grid.Execute(0, int(size), func(start, end int) {
		var acc, t, t2 fr.Element
		for idx := start; idx < end; idx++ {
			rNext := (uint32(idx) + rotScale) & mask
			rPrev := (uint32(idx) + size - rotScale) & mask

			acc = value[idx]

			// l_0(X) * (1 - z(X)) = 0: the grand product starts at 1
			t.Sub(&one, &productCoset[idx])
			t.Mul(&t, &l0[idx])
			acc.Mul(&acc, &y).Add(&acc, &t)

			// l_last(X) * (z(X)^2 - z(X)) = 0: z is 0 or 1 on the last row
			t.Square(&productCoset[idx])
			t.Sub(&t, &productCoset[idx])
			t.Mul(&t, &lLast[idx])
			acc.Mul(&acc, &y).Add(&acc, &t)

			// l_active(X) * (z(wX) (a'(X)+beta) (s'(X)+gamma) - z(X) t(X)) = 0:
			// the grand-product recurrence between adjacent rows
			t.Add(&permutedInputCoset[idx], &beta)
			t2.Add(&permutedTableCoset[idx], &gamma)
			t.Mul(&t, &t2)
			t.Mul(&t, &productCoset[rNext])
			t2.Mul(&productCoset[idx], &table[idx])
			t.Sub(&t, &t2)
			t.Mul(&t, &lActiveRow[idx])
			acc.Mul(&acc, &y).Add(&acc, &t)

			// l_0(X) * (a'(X) - s'(X)) = 0: permutations agree on row 0
			t.Sub(&permutedInputCoset[idx], &permutedTableCoset[idx])
			t.Mul(&t, &l0[idx])
			acc.Mul(&acc, &y).Add(&acc, &t)

			// l_active(X) * (a'(X) - s'(X)) (a'(X) - a'(w^-1 X)) = 0:
			// a' either repeats the previous row or matches the table
			t.Sub(&permutedInputCoset[idx], &permutedTableCoset[idx])
			t2.Sub(&permutedInputCoset[idx], &permutedInputCoset[rPrev])
			t.Mul(&t, &t2)
			t.Mul(&t, &lActiveRow[idx])
			acc.Mul(&acc, &y).Add(&acc, &t)

			value[idx] = acc
		}
	})
}
