package bls12_381_simt

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"

	"github.com/eon-protocol/eonkernel/simt"
)

/********** helpers **********/

// buildTables mirrors the host-side precomputation: pq holds ascending
// powers of the 2^maxDeg-th root, omegas the successive squarings of root.
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

// naiveDFT is the O(n^2) reference: out[k] = sum_j a[j] root^(jk).
func naiveDFT(a []fr.Element, root fr.Element) []fr.Element {
	n := len(a)
	out := make([]fr.Element, n)
	for k := 0; k < n; k++ {
		var w, wj, acc, t fr.Element
		w.Exp(root, big.NewInt(int64(k)))
		wj.SetOne()
		for j := 0; j < n; j++ {
			t.Mul(&a[j], &wj)
			acc.Add(&acc, &t)
			wj.Mul(&wj, &w)
		}
		out[k] = acc
	}
	return out
}

func randomVector(t *testing.T, n int) []fr.Element {
	t.Helper()
	v := make([]fr.Element, n)
	for i := range v {
		if _, err := v[i].SetRandom(); err != nil {
			t.Fatalf("SetRandom: %v", err)
		}
	}
	return v
}

// runStages applies the full launch sequence for one transform.
func runStages(grid *simt.Grid, a []fr.Element, pq, omegas []fr.Element, logN, maxDeg uint32) {
	n := uint32(len(a))
	src := a
	dst := make([]fr.Element, n)
	for lgp := uint32(0); lgp < logN; {
		deg := maxDeg
		if deg > logN-lgp {
			deg = logN - lgp
		}
		RadixFFT(grid, src, dst, pq, omegas, n, lgp, deg, maxDeg)
		lgp += deg
		src, dst = dst, src
	}
	if &src[0] != &a[0] {
		copy(a, src)
	}
}

/********** tests **********/

func TestPowLookup(t *testing.T) {
	const logN = 10
	const n = 1 << logN
	root := fft.NewDomain(n).Generator
	_, omegas := buildTables(root, n, 4, logN)

	exps := []uint64{0, 1, 2, 3, 7, 255, n / 2, n - 2, n - 1}
	for i := 0; i < 20; i++ {
		var r fr.Element
		if _, err := r.SetRandom(); err != nil {
			t.Fatal(err)
		}
		exps = append(exps, r.Bits()[0]%n)
	}

	for _, e := range exps {
		got := PowLookup(omegas, e)
		var want fr.Element
		want.Exp(root, new(big.Int).SetUint64(e))
		if !got.Equal(&want) {
			t.Fatalf("PowLookup(omegas, %d) = %s, want %s", e, got.String(), want.String())
		}
	}
}

func TestBitReverse(t *testing.T) {
	cases := []struct{ i, deg, want uint32 }{
		{0, 1, 0}, {1, 1, 1},
		{1, 2, 2}, {2, 2, 1}, {3, 2, 3},
		{1, 3, 4}, {3, 3, 6}, {6, 3, 3},
		{1, 8, 128}, {0x55, 8, 0xAA},
	}
	for _, c := range cases {
		if got := bitReverse(c.i, c.deg); got != c.want {
			t.Errorf("bitReverse(%d, %d) = %d, want %d", c.i, c.deg, got, c.want)
		}
	}
}

// A single launch merging all digits must equal the reference DFT directly.
func TestRadixFFTSingleStage(t *testing.T) {
	grid := simt.NewGrid(0)
	for _, logN := range []uint32{1, 2, 3, 4, 5} {
		n := uint64(1) << logN
		root := fft.NewDomain(n).Generator
		pq, omegas := buildTables(root, n, logN, logN)

		a := randomVector(t, int(n))
		want := naiveDFT(a, root)

		out := make([]fr.Element, n)
		RadixFFT(grid, a, out, pq, omegas, uint32(n), 0, logN, logN)

		for i := range out {
			if !out[i].Equal(&want[i]) {
				t.Fatalf("n=%d: out[%d] = %s, want %s", n, i, out[i].String(), want[i].String())
			}
		}
	}
}

// Every valid split of log2(n) into stage degrees must produce the same
// transform as the reference DFT.
func TestRadixFFTDegreeSplits(t *testing.T) {
	grid := simt.NewGrid(0)
	for _, logN := range []uint32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10} {
		n := uint64(1) << logN
		root := fft.NewDomain(n).Generator

		a := randomVector(t, int(n))
		want := naiveDFT(a, root)

		for maxDeg := uint32(1); maxDeg <= logN && maxDeg <= MaxRadixDegree; maxDeg++ {
			pq, omegas := buildTables(root, n, maxDeg, logN)
			got := make([]fr.Element, n)
			copy(got, a)
			runStages(grid, got, pq, omegas, logN, maxDeg)

			for i := range got {
				if !got[i].Equal(&want[i]) {
					t.Fatalf("n=%d maxDeg=%d: got[%d] = %s, want %s",
						n, maxDeg, i, got[i].String(), want[i].String())
				}
			}
		}
	}
}

// Forward then inverse (scaled by 1/n) must restore the input.
func TestRadixFFTRoundTrip(t *testing.T) {
	grid := simt.NewGrid(0)
	for _, logN := range []uint32{1, 3, 6, 9} {
		n := uint64(1) << logN
		dom := fft.NewDomain(n)
		maxDeg := logN
		if maxDeg > MaxRadixDegree {
			maxDeg = MaxRadixDegree
		}
		pq, omegas := buildTables(dom.Generator, n, maxDeg, logN)
		pqInv, omegasInv := buildTables(dom.GeneratorInv, n, maxDeg, logN)

		a := randomVector(t, int(n))
		got := make([]fr.Element, n)
		copy(got, a)

		runStages(grid, got, pq, omegas, logN, maxDeg)
		runStages(grid, got, pqInv, omegasInv, logN, maxDeg)
		MulByScalar(grid, got, uint32(n), dom.CardinalityInv)

		for i := range got {
			if !got[i].Equal(&a[i]) {
				t.Fatalf("n=%d: round trip mismatch at %d", n, i)
			}
		}
	}
}

// Each stage must write every destination index exactly once: launching over
// zeroed input must overwrite all sentinel values in the destination buffer.
func TestRadixFFTStageTilesDestination(t *testing.T) {
	grid := simt.NewGrid(0)
	sentinel := fr.NewElement(0xdead)

	const logN = 6
	const n = 1 << logN
	root := fft.NewDomain(n).Generator

	for _, c := range []struct{ lgp, deg, maxDeg uint32 }{
		{0, 1, 1}, {0, 2, 3}, {1, 2, 3}, {2, 3, 3}, {3, 3, 3}, {5, 1, 3}, {0, 6, 6},
	} {
		pq, omegas := buildTables(root, n, c.maxDeg, logN)
		x := make([]fr.Element, n)
		y := make([]fr.Element, n)
		for i := range y {
			y[i] = sentinel
		}
		RadixFFT(grid, x, y, pq, omegas, n, c.lgp, c.deg, c.maxDeg)
		for i := range y {
			if y[i].Equal(&sentinel) {
				t.Fatalf("lgp=%d deg=%d: destination %d never written", c.lgp, c.deg, i)
			}
		}
	}
}

func TestMulByScalar(t *testing.T) {
	grid := simt.NewGrid(0)
	const n = 1000
	a := randomVector(t, n)
	var s fr.Element
	s.SetUint64(42)

	want := make([]fr.Element, n)
	for i := range want {
		want[i].Mul(&a[i], &s)
	}

	MulByScalar(grid, a, n, s)
	for i := range a {
		if !a[i].Equal(&want[i]) {
			t.Fatalf("index %d: got %s, want %s", i, a[i].String(), want[i].String())
		}
	}
}
