package eonkernel

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// BuildSelectors materializes the boundary selector columns from an
// active-row mask: l0 is one-hot at row 0, lLast one-hot at the final row,
// lActiveRow carries 1 on every row set in active. Rows at and above size
// in the mask are rejected.
func BuildSelectors(size uint32, active *bitset.BitSet) (l0, lLast, lActiveRow []fr.Element, err error) {
	if size == 0 || size&(size-1) != 0 {
		return nil, nil, nil, fmt.Errorf("selector size %d is not a power of two", size)
	}
	l0 = make([]fr.Element, size)
	lLast = make([]fr.Element, size)
	lActiveRow = make([]fr.Element, size)

	l0[0].SetOne()
	lLast[size-1].SetOne()
	for i, ok := active.NextSet(0); ok; i, ok = active.NextSet(i + 1) {
		if i >= uint(size) {
			return nil, nil, nil, fmt.Errorf("active row %d outside domain of size %d", i, size)
		}
		lActiveRow[i].SetOne()
	}
	return l0, lLast, lActiveRow, nil
}
