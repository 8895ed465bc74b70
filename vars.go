package eonkernel

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// COSET_SHIFT is the multiplicative-group generator used upstream to shift
// the evaluation domain off its roots of unity. Hosts preparing the
// coset-evaluated columns the lookup kernel reads must agree on this shift.
var COSET_SHIFT = fr.NewElement(7)
