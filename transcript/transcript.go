// Package transcript implements the labeled absorb/derive Fiat-Shamir
// transcript used to turn the sigma protocol non-interactive.
//
// The transcript is a running cSHAKE256 state customized with a protocol
// domain label. Every Absorb and Derive call appends a length-prefixed frame
// to the state, so outputs depend on every earlier call, its label and its
// order.
package transcript

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/sha3"
)

// Transcript is not safe for concurrent use; each proof owns its own.
type Transcript struct {
	state sha3.ShakeHash
}

// New starts a transcript for one protocol instance.
func New(domain string) *Transcript {
	return &Transcript{state: sha3.NewCShake256(nil, []byte(domain))}
}

// Absorb appends labeled data.
func (t *Transcript) Absorb(label string, data []byte) {
	t.frame([]byte(label))
	t.frame(data)
}

// Derive returns n bytes that are a function of all prior absorbs, all prior
// derives and label.
func (t *Transcript) Derive(label string, n int) []byte {
	t.frame([]byte(label))
	var l [4]byte
	binary.LittleEndian.PutUint32(l[:], uint32(n))
	t.write(l[:])

	out := make([]byte, n)
	reader := t.state.Clone()
	// ShakeHash reads never fail
	_, _ = reader.Read(out)
	return out
}

func (t *Transcript) frame(b []byte) {
	var l [4]byte
	binary.LittleEndian.PutUint32(l[:], uint32(len(b)))
	t.write(l[:])
	t.write(b)
}

func (t *Transcript) write(b []byte) {
	// ShakeHash writes never fail before the first read, and reads only
	// happen on clones.
	_, _ = t.state.Write(b)
}

// DeterministicReader returns an endless SHAKE256 stream keyed by seed. It is
// meant as an injected randomness source for reproducible proofs in tests and
// demos, never for production proving.
func DeterministicReader(seed []byte) io.Reader {
	h := sha3.NewShake256()
	_, _ = h.Write(seed)
	return h
}
