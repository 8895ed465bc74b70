//go:build !icicle

package gpu

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

const HasIcicle = false

// NTT reports the missing accelerator; the router falls back to the SIMT
// path before ever reaching this.
func NTT(_ []fr.Element, _ bool) error {
	return errors.New("icicle requested but program compiled without 'icicle' build tag")
}
