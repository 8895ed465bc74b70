package eonkernel

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/backend"

	"github.com/eon-protocol/eonkernel/gpu"
)

// FFT transforms a in place over the domain. When the prover options
// request the icicle accelerator and the binary was built with it, the
// transform runs on the device; otherwise it runs on the SIMT emulation.
func (d *Domain) FFT(a []fr.Element, dir Direction, opts ...backend.ProverOption) error {
	if err := d.validate(a); err != nil {
		return err
	}
	opt, err := backend.NewProverConfig(opts...)
	if err != nil {
		return err
	}

	if opt.Accelerator == "icicle" && gpu.HasIcicle {
		return gpu.NTT(a, dir == Inverse)
	}

	d.fft(a, dir)
	return nil
}
