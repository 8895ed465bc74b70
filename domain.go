// Package eonkernel hosts the orchestration layer for the SIMT field
// kernels: evaluation-domain setup, twiddle-table precomputation, launch
// planning and boundary validation. Kernels themselves live in
// simt/bls12381 and trust every precondition checked here.
package eonkernel

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"

	"github.com/eon-protocol/eonkernel/simt"
	bls12_381_simt "github.com/eon-protocol/eonkernel/simt/bls12381"
)

// Domain is an evaluation domain of power-of-two size together with the
// twiddle tables the radix-stage kernel consumes: pq holds the per-round
// butterfly multipliers, omegas[i] = generator^(2^i) feeds the per-group
// power lookup. Both are precomputed for the forward and inverse direction.
type Domain struct {
	Cardinality    uint64
	CardinalityInv fr.Element
	Generator      fr.Element
	GeneratorInv   fr.Element

	logN   uint32
	maxDeg uint32
	grid   *simt.Grid

	pq, pqInv         []fr.Element
	omegas, omegasInv []fr.Element
}

// DomainOption configures NewDomain.
type DomainOption func(*domainConfig)

type domainConfig struct {
	maxDeg uint32
	grid   *simt.Grid
}

// WithMaxRadixDegree bounds the digits merged per stage, trading scratch
// size for launch count. Values above the kernel limit are clamped.
func WithMaxRadixDegree(deg uint32) DomainOption {
	return func(c *domainConfig) { c.maxDeg = deg }
}

// WithGrid runs the domain's launches on a specific grid instead of the
// process-wide default.
func WithGrid(grid *simt.Grid) DomainOption {
	return func(c *domainConfig) { c.grid = grid }
}

// NewDomain builds a domain of size n. n must be a power of two for which
// the scalar field has a primitive n-th root of unity.
func NewDomain(n uint64, opts ...DomainOption) (*Domain, error) {
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("domain size %d is not a power of two", n)
	}
	if n > 1<<31 {
		return nil, fmt.Errorf("domain size %d exceeds the kernel index range", n)
	}

	cfg := domainConfig{maxDeg: bls12_381_simt.MaxRadixDegree, grid: simt.DefaultGrid()}
	for _, opt := range opts {
		opt(&cfg)
	}

	base := fft.NewDomain(n)
	d := &Domain{
		Cardinality:    n,
		CardinalityInv: base.CardinalityInv,
		Generator:      base.Generator,
		GeneratorInv:   base.GeneratorInv,
		logN:           uint32(bits.TrailingZeros64(n)),
		grid:           cfg.grid,
	}

	d.maxDeg = cfg.maxDeg
	if d.maxDeg > bls12_381_simt.MaxRadixDegree {
		d.maxDeg = bls12_381_simt.MaxRadixDegree
	}
	if d.maxDeg > d.logN {
		d.maxDeg = d.logN
	}
	if d.maxDeg == 0 {
		d.maxDeg = 1
	}

	d.pq, d.omegas = buildTables(d.Generator, n, d.maxDeg, d.logN)
	d.pqInv, d.omegasInv = buildTables(d.GeneratorInv, n, d.maxDeg, d.logN)
	return d, nil
}

// buildTables precomputes one direction's tables. pq is allocated to
// 2^maxDeg per the kernel contract; only the first half is addressable.
func buildTables(root fr.Element, n uint64, maxDeg, logN uint32) (pq, omegas []fr.Element) {
	pq = make([]fr.Element, 1<<maxDeg)
	var tw fr.Element
	tw.Exp(root, new(big.Int).SetUint64(n>>maxDeg))
	pq[0].SetOne()
	if maxDeg > 1 {
		pq[1] = tw
		for i := 2; i < 1<<(maxDeg-1); i++ {
			pq[i].Mul(&pq[i-1], &tw)
		}
	}

	omegas = make([]fr.Element, logN+1)
	omegas[0] = root
	for i := uint32(1); i <= logN; i++ {
		omegas[i].Square(&omegas[i-1])
	}
	return
}

func (d *Domain) validate(a []fr.Element) error {
	if uint64(len(a)) != d.Cardinality {
		return fmt.Errorf("buffer length %d does not match domain size %d", len(a), d.Cardinality)
	}
	return nil
}
