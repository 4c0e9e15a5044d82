package linrel

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/test/unsafekzg"
)

// Pk holds the compiled relation circuit for one response length together
// with its PLONK keys.
type Pk struct {
	n   int
	ccs constraint.ConstraintSystem
	pk  plonk.ProvingKey
	vk  plonk.VerifyingKey
}

// Compile builds the circuit for responses of length n and runs the PLONK
// setup over a KZG SRS sampled in-process. Whoever runs Compile knows the
// SRS trapdoor, so the keys are only meaningful to that party.
func (me *Pk) Compile(n int) error {
	ccs, err := frontend.Compile(ecc.BLS12_381.ScalarField(), scs.NewBuilder, NewCircuit(n))
	if err != nil {
		return err
	}
	srs, srsLagrange, err := unsafekzg.NewSRS(ccs)
	if err != nil {
		return err
	}
	pk, vk, err := plonk.Setup(ccs, srs, srsLagrange)
	if err != nil {
		return err
	}
	me.n, me.ccs, me.pk, me.vk = n, ccs, pk, vk
	return nil
}

func (me *Pk) Size() int {
	return me.n
}

func (me *Pk) Vk() plonk.VerifyingKey {
	return me.vk
}

func (me *Pk) NbConstraints() int {
	return me.ccs.GetNbConstraints()
}

// Prove returns a PLONK proof for assignment and the public part of its
// witness.
func (me *Pk) Prove(assignment *Circuit) (plonk.Proof, witness.Witness, error) {
	full, err := frontend.NewWitness(assignment, ecc.BLS12_381.ScalarField())
	if err != nil {
		return nil, nil, err
	}
	proof, err := plonk.Prove(me.ccs, me.pk, full)
	if err != nil {
		return nil, nil, err
	}
	public, err := full.Public()
	if err != nil {
		return nil, nil, err
	}
	return proof, public, nil
}

func Verify(vk plonk.VerifyingKey, proof plonk.Proof, public witness.Witness) error {
	return plonk.Verify(proof, vk, public)
}
