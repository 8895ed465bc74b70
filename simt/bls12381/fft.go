// Package bls12_381_simt holds the device kernels over the BLS12-381 scalar
// field: the radix-stage transform, the scalar broadcast multiply and the
// lookup-argument evaluation. Kernels trust their preconditions; the host
// layer validates sizes and table lengths before every launch.
package bls12_381_simt

import (
	"math/bits"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/eon-protocol/eonkernel/simt"
)

const (
	// MaxRadixDegree bounds the binary digits a single stage may merge and
	// fixes the size of the precomputed pq table.
	MaxRadixDegree = 8

	// MaxGroupLanes caps the cooperating lanes spawned per group.
	MaxGroupLanes = 64
)

// scratch buffers are sized for the largest supported stage so one pool
// serves every launch
var scratchPool = sync.Pool{
	New: func() any {
		s := make([]fr.Element, 1<<MaxRadixDegree)
		return &s
	},
}

// PowLookup returns root^e given omegas[i] = root^(2^i), multiplying the
// table entries selected by the set bits of e.
func PowLookup(omegas []fr.Element, e uint64) fr.Element {
	var res fr.Element
	res.SetOne()
	for i := 0; e > 0; i, e = i+1, e>>1 {
		if e&1 == 1 {
			res.Mul(&res, &omegas[i])
		}
	}
	return res
}

// expUint is a plain square-and-multiply, used once per lane to seed the
// twiddle ladder.
func expUint(base fr.Element, e uint64) fr.Element {
	var res fr.Element
	res.SetOne()
	if e == 0 {
		return res
	}
	for i := bits.Len64(e) - 1; i >= 0; i-- {
		res.Square(&res)
		if (e>>uint(i))&1 == 1 {
			res.Mul(&res, &base)
		}
	}
	return res
}

func bitReverse(i, deg uint32) uint32 {
	return bits.Reverse32(i) >> (32 - deg)
}

// RadixFFT computes one radix-2^deg stage of a multi-launch transform of
// size n, reading from x and writing to y. lgp is the log2 of the stride
// already covered by earlier stages; maxDeg is the pipeline-wide bound the
// pq table was built for. The addressing is part of the contract: stage
// outputs land exactly where the next launch expects to read them.
func RadixFFT(grid *simt.Grid, x, y, pq, omegas []fr.Element, n, lgp, deg, maxDeg uint32) {
	groups := int(n >> deg)
	grid.Launch(groups, func(g *simt.Group) {
		up := scratchPool.Get().(*[]fr.Element)
		radixFFTGroup(g, x, y, pq, omegas, (*up)[:1<<deg], n, lgp, deg, maxDeg)
		scratchPool.Put(up)
	})
}

// radixFFTGroup is the per-group kernel body. u is the group-local scratch,
// len(u) >= 2^deg, owned exclusively by this group for this invocation.
func radixFFTGroup(g *simt.Group, x, y, pq, omegas, u []fr.Element, n, lgp, deg, maxDeg uint32) {
	count := uint32(1) << deg
	counth := count >> 1

	lsize := counth
	if lsize > MaxGroupLanes {
		lsize = MaxGroupLanes
	}
	if lsize == 0 {
		lsize = 1
	}
	span := count / lsize

	index := g.Index()
	t := n >> deg
	p := uint32(1) << lgp
	k := index & (p - 1)

	xOff := index
	yOff := ((index - k) << deg) + k
	pqShift := maxDeg - deg

	// one lookup per group seeds the twiddle ladder
	twiddle := PowLookup(omegas, uint64(n>>lgp>>deg)*uint64(k))

	g.Run(int(lsize), func(lid int) {
		counts := span * uint32(lid)
		counte := counts + span

		// pre-rotate this lane's elements into scratch
		tmp := expUint(twiddle, uint64(counts))
		for i := counts; i < counte; i++ {
			u[i].Mul(&tmp, &x[xOff+i*t])
			tmp.Mul(&tmp, &twiddle)
		}
		g.Sync()

		// deg butterfly rounds; round r+1 reads what every lane wrote in
		// round r, hence the barrier
		for rnd := uint32(0); rnd < deg; rnd++ {
			bit := counth >> rnd
			for i := counts >> 1; i < counte>>1; i++ {
				di := i & (bit - 1)
				i0 := (i << 1) - di
				i1 := i0 + bit
				v := u[i0]
				u[i0].Add(&v, &u[i1])
				u[i1].Sub(&v, &u[i1])
				if di != 0 {
					u[i1].Mul(&u[i1], &pq[di<<rnd<<pqShift])
				}
			}
			g.Sync()
		}

		// bit-reversed scatter at stride p
		for i := counts; i < counte; i++ {
			y[yOff+bitReverse(i, deg)*p] = u[i]
		}
	})
}

// MulByScalar scales elements[0:n] in place, one independent lane per index.
func MulByScalar(grid *simt.Grid, elements []fr.Element, n uint32, scalar fr.Element) {
	grid.Execute(0, int(n), func(start, end int) {
		for i := start; i < end; i++ {
			elements[i].Mul(&elements[i], &scalar)
		}
	})
}
