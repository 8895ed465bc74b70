//go:build icicle

package gpu

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	bls12_381_icicle "github.com/eon-protocol/eonkernel/gpu/bls12381"
)

const HasIcicle = true

// NTT runs the transform on the device, copying a there and back. The
// icicle NTT domain must have been initialized for len(a) beforehand.
func NTT(a []fr.Element, inverse bool) error {
	return bls12_381_icicle.NTTOnDevice(a, inverse)
}
