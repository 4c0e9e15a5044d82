// off-circuit evaluation of the proof digest, kept in lockstep with poseidon2.go
package linrel

import (
	"log"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// compress is one step of the digest chain: the second lane of the permuted
// pair (l, r), plus r.
func compress(l, r fr.Element) fr.Element {
	state := []fr.Element{l, r}
	if err := GetPermutation().Permutation(state); err != nil {
		log.Fatalln(err)
	}
	state[1].Add(&state[1], &r)
	return state[1]
}

// chain absorbs head and then rest into a zero accumulator.
func chain(head fr.Element, rest []fr.Element) fr.Element {
	acc := compress(fr.Element{}, head)
	for i := range rest {
		acc = compress(acc, rest[i])
	}
	return acc
}

// splitMod writes v as q*r + m for the scalar field modulus r.
func splitMod(v *big.Int) (q, m fr.Element) {
	var quo, rem big.Int
	quo.QuoRem(v, fr.Modulus(), &rem)
	q.SetBigInt(&quo)
	m.SetBigInt(&rem)
	return q, m
}

// DecomposeG1 maps the base field coordinates of p, which do not fit in fr,
// to the limbs [[X/r, X%r], [Y/r, Y%r]].
func DecomposeG1(p bls12381.G1Affine) (limbs [2][2]fr.Element) {
	for i, coord := range [2]*fp.Element{&p.X, &p.Y} {
		limbs[i][0], limbs[i][1] = splitMod(coord.BigInt(new(big.Int)))
	}
	return limbs
}

func HashG1(p bls12381.G1Affine) fr.Element {
	limbs := DecomposeG1(p)
	return compress(
		compress(limbs[0][0], limbs[0][1]),
		compress(limbs[1][0], limbs[1][1]),
	)
}

// Digest is the public input the circuit recomputes from A_hat and z.
func Digest(aHat bls12381.G1Affine, z []fr.Element) fr.Element {
	return chain(HashG1(aHat), z)
}
