package eonkernel

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	bls12_381_simt "github.com/eon-protocol/eonkernel/simt/bls12381"
)

// LookupContext is the row-aligned buffer set the lookup-argument kernel
// evaluates: Value accumulates the y-folded constraint terms, every other
// column is read-only. All columns share the domain length.
type LookupContext struct {
	Value              []fr.Element
	Table              []fr.Element // upstream-compressed table column
	PermutedInputCoset []fr.Element
	PermutedTableCoset []fr.Element
	ProductCoset       []fr.Element // grand product z on the coset
	L0                 []fr.Element
	LLast              []fr.Element
	LActiveRow         []fr.Element

	// Y folds the identities, Beta and Gamma randomize the recurrence.
	Y, Beta, Gamma fr.Element

	// RotScale is the index stride of one domain rotation.
	RotScale uint32
}

// EvalLookup validates the context once and launches the evaluation kernel.
// Only ctx.Value is mutated.
func (d *Domain) EvalLookup(ctx *LookupContext) error {
	size := uint32(d.Cardinality)
	for name, col := range map[string][]fr.Element{
		"value":                ctx.Value,
		"table":                ctx.Table,
		"permuted_input_coset": ctx.PermutedInputCoset,
		"permuted_table_coset": ctx.PermutedTableCoset,
		"product_coset":        ctx.ProductCoset,
		"l0":                   ctx.L0,
		"l_last":               ctx.LLast,
		"l_active_row":         ctx.LActiveRow,
	} {
		if uint32(len(col)) != size {
			return fmt.Errorf("%s length %d does not match domain size %d", name, len(col), size)
		}
	}
	if ctx.RotScale == 0 || ctx.RotScale&(ctx.RotScale-1) != 0 || ctx.RotScale >= size {
		return fmt.Errorf("rotation stride %d is not a power of two below %d", ctx.RotScale, size)
	}

	bls12_381_simt.EvalLookup(d.grid,
		ctx.Value, ctx.Table, ctx.PermutedInputCoset, ctx.PermutedTableCoset, ctx.ProductCoset,
		ctx.L0, ctx.LLast, ctx.LActiveRow,
		[3]fr.Element{ctx.Y, ctx.Beta, ctx.Gamma},
		ctx.RotScale, size)
	return nil
}
