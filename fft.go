package eonkernel

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/sync/errgroup"

	"github.com/eon-protocol/eonkernel/logger"
	bls12_381_simt "github.com/eon-protocol/eonkernel/simt/bls12381"
)

// Direction selects the forward or inverse transform.
type Direction uint8

const (
	Forward Direction = iota
	Inverse
)

// fft runs the multi-launch pipeline on the SIMT grid: stages with
// non-decreasing lgp whose degrees sum to log2(n), alternating source and
// destination buffers since each stage consumes the full output of the
// previous one. The inverse direction ends with the 1/n normalization.
func (d *Domain) fft(a []fr.Element, dir Direction) {
	if d.Cardinality <= 1 {
		return
	}
	n := uint32(d.Cardinality)
	pq, omegas := d.pq, d.omegas
	if dir == Inverse {
		pq, omegas = d.pqInv, d.omegasInv
	}

	log := logger.Logger()
	log.Debug().Uint32("n", n).Uint32("maxDeg", d.maxDeg).
		Bool("inverse", dir == Inverse).Msg("fft launch plan")

	src := a
	dst := make([]fr.Element, n)
	for lgp := uint32(0); lgp < d.logN; {
		deg := d.maxDeg
		if deg > d.logN-lgp {
			deg = d.logN - lgp
		}
		bls12_381_simt.RadixFFT(d.grid, src, dst, pq, omegas, n, lgp, deg, d.maxDeg)
		lgp += deg
		src, dst = dst, src
	}
	if &src[0] != &a[0] {
		copy(a, src)
	}

	if dir == Inverse {
		bls12_381_simt.MulByScalar(d.grid, a, n, d.CardinalityInv)
	}
}

// BatchFFT transforms independent columns in parallel. Columns must all
// have the domain's length.
func (d *Domain) BatchFFT(columns [][]fr.Element, dir Direction) error {
	var eg errgroup.Group
	for _, col := range columns {
		eg.Go(func() error {
			return d.FFT(col, dir)
		})
	}
	return eg.Wait()
}
