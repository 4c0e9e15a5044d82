// Poseidon2 parameters shared by the native digest and the circuit.
package linrel

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/poseidon2"
)

const WIDTH = 2
const ROUND_FULL = 8
const ROUND_PARTIAL = 56
const SEED = "LINSIGMA_POSEIDON2_DIGEST_SEED"

// CURVE is the only curve whose scalar field is native to the circuit.
const CURVE = "bls12-381"

// GetPermutation returns the native Poseidon2 permutation for the parameters above.
var GetPermutation = sync.OnceValue(func() *poseidon2.Permutation {
	return poseidon2.NewPermutationWithSeed(WIDTH, ROUND_FULL, ROUND_PARTIAL, SEED)
})
