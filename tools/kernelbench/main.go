package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/schollz/progressbar/v3"

	"github.com/eon-protocol/eonkernel"
)

func randomVector(n int) []fr.Element {
	v := make([]fr.Element, n)
	for i := range v {
		if _, err := v[i].SetRandom(); err != nil {
			log.Fatalln(err)
		}
	}
	return v
}

func main() {
	minLog := flag.Int("min", 10, "smallest domain size as log2")
	maxLog := flag.Int("max", 20, "largest domain size as log2")
	rounds := flag.Int("rounds", 3, "timed rounds per size")
	flag.Parse()

	bar := progressbar.Default(int64(*maxLog-*minLog+1), "ntt sweep")
	for k := *minLog; k <= *maxLog; k++ {
		n := uint64(1) << k
		d, err := eonkernel.NewDomain(n)
		if err != nil {
			log.Fatalln(err)
		}
		a := randomVector(int(n))

		var fwd, inv time.Duration
		for r := 0; r < *rounds; r++ {
			start := time.Now()
			if err := d.FFT(a, eonkernel.Forward); err != nil {
				log.Fatalln(err)
			}
			fwd += time.Since(start)

			start = time.Now()
			if err := d.FFT(a, eonkernel.Inverse); err != nil {
				log.Fatalln(err)
			}
			inv += time.Since(start)
		}

		fmt.Printf("n=2^%-2d forward=%-12s inverse=%-12s\n",
			k, fwd/time.Duration(*rounds), inv/time.Duration(*rounds))
		if err := bar.Add(1); err != nil {
			log.Fatalln(err)
		}
	}
}
