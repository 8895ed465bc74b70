//go:build icicle

// Package bls12_381_icicle wraps the icicle-gnark device kernels used when
// the binary is built with the 'icicle' tag. Data moves host to device per
// call; resident-buffer reuse is up to the caller.
package bls12_381_icicle

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	icicle_core "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/core"
	icicle_bls12_381 "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/curves/bls12381"
	icicle_ntt "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/curves/bls12381/ntt"
	icicle_vecops "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/curves/bls12381/vecOps"
	icicle_runtime "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/runtime"
)

// InitDomain loads the icicle backend and initializes the device NTT domain
// from the field's root of unity. Must run once before NTTOnDevice.
func InitDomain(rou fr.Element) error {
	if st := icicle_runtime.LoadBackendFromEnvOrDefault(); st != icicle_runtime.Success {
		return fmt.Errorf("load icicle backend: %s", st.AsString())
	}
	rouBits := rou.Bits()
	limbs := icicle_core.ConvertUint64ArrToUint32Arr(rouBits[:])
	var rouIcicle icicle_bls12_381.ScalarField
	rouIcicle.FromLimbs(limbs)
	cfg := icicle_core.GetDefaultNTTInitDomainConfig()
	if st := icicle_ntt.InitDomain(rouIcicle, cfg); st != icicle_runtime.Success {
		return fmt.Errorf("init ntt domain: %s", st.AsString())
	}
	return nil
}

// NTTOnDevice copies a to the device, transforms it in place and copies the
// result back. Input and output stay in Montgomery form, natural ordering.
func NTTOnDevice(a []fr.Element, inverse bool) error {
	host := icicle_core.HostSliceFromElements(a)

	var dev icicle_core.DeviceSlice
	host.CopyToDevice(&dev, true)
	defer dev.Free()

	cfg := icicle_ntt.GetDefaultNttConfig()
	cfg.Ordering = icicle_core.KNN

	dir := icicle_core.KForward
	if inverse {
		dir = icicle_core.KInverse
	}
	if st := icicle_ntt.Ntt(dev, dir, &cfg, dev); st != icicle_runtime.Success {
		return fmt.Errorf("device ntt: %s", st.AsString())
	}

	host.CopyFromDevice(&dev)
	return nil
}

// VecMulOnDevice computes acc = acc * other elementwise, in place on the
// device. Inputs must be in canonical (non-Montgomery) form; convert with
// MontConvOnDevice first if needed.
func VecMulOnDevice(acc, other icicle_core.DeviceSlice) icicle_runtime.EIcicleError {
	cfg := icicle_core.DefaultVecOpsConfig()
	return icicle_vecops.VecOp(acc, other, acc, cfg, icicle_core.Mul)
}

// MontConvOnDevice converts a device-resident scalar array between
// Montgomery and canonical form, in place.
func MontConvOnDevice(s icicle_core.DeviceSlice, into bool) icicle_runtime.EIcicleError {
	if into {
		return icicle_bls12_381.ToMontgomery(s)
	}
	return icicle_bls12_381.FromMontgomery(s)
}
