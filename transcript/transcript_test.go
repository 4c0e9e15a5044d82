package transcript

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveIsDeterministic(t *testing.T) {
	a := New("domain")
	b := New("domain")
	a.Absorb("x", []byte{1, 2, 3})
	b.Absorb("x", []byte{1, 2, 3})
	require.Equal(t, a.Derive("c0", 64), b.Derive("c0", 64))
	require.Equal(t, a.Derive("c1", 64), b.Derive("c1", 64))
}

func TestDeriveDependsOnEverything(t *testing.T) {
	base := func() *Transcript {
		tr := New("domain")
		tr.Absorb("x", []byte{1, 2, 3})
		return tr
	}
	ref := base().Derive("c0", 32)

	cases := map[string]func() []byte{
		"domain": func() []byte {
			tr := New("other")
			tr.Absorb("x", []byte{1, 2, 3})
			return tr.Derive("c0", 32)
		},
		"absorb label": func() []byte {
			tr := New("domain")
			tr.Absorb("y", []byte{1, 2, 3})
			return tr.Derive("c0", 32)
		},
		"absorb data": func() []byte {
			tr := New("domain")
			tr.Absorb("x", []byte{1, 2, 4})
			return tr.Derive("c0", 32)
		},
		"derive label": func() []byte {
			return base().Derive("c1", 32)
		},
		"framing": func() []byte {
			tr := New("domain")
			tr.Absorb("x", []byte{1, 2})
			tr.Absorb("", []byte{3})
			return tr.Derive("c0", 32)
		},
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			require.NotEqual(t, ref, fn())
		})
	}
}

func TestDeriveAdvancesState(t *testing.T) {
	tr := New("domain")
	first := tr.Derive("c", 32)
	second := tr.Derive("c", 32)
	require.NotEqual(t, first, second)
	require.Len(t, first, 32)
}

func TestDeterministicReader(t *testing.T) {
	a := make([]byte, 100)
	b := make([]byte, 100)
	_, err := io.ReadFull(DeterministicReader([]byte("seed")), a)
	require.NoError(t, err)
	_, err = io.ReadFull(DeterministicReader([]byte("seed")), b)
	require.NoError(t, err)
	require.True(t, bytes.Equal(a, b))

	_, err = io.ReadFull(DeterministicReader([]byte("other")), b)
	require.NoError(t, err)
	require.False(t, bytes.Equal(a, b))
}
