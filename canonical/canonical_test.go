package canonical

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Zeta  int    `json:"zeta"`
	Alpha string `json:"alpha"`
	Bytes []byte `json:"bytes"`
}

func TestMarshalKeyOrderingAndHex(t *testing.T) {
	s := sample{Zeta: 3, Alpha: "hi", Bytes: []byte{0xAB, 0xCD}}
	out := string(Marshal(s))
	require.Equal(t, `{"alpha":"hi","bytes":"abcd","zeta":3}`, out)
}

func TestMarshalStableAcrossMapOrdering(t *testing.T) {
	m1 := map[string]int{"b": 2, "a": 1, "c": 3}
	m2 := map[string]int{"c": 3, "a": 1, "b": 2}
	require.Equal(t, Marshal(m1), Marshal(m2))
}

func TestHashRoundTripStable(t *testing.T) {
	s := sample{Zeta: 1, Alpha: "x"}
	h1 := Hash(s)
	h2 := Hash(s)
	require.Equal(t, h1, h2)

	other := sample{Zeta: 2, Alpha: "x"}
	require.NotEqual(t, h1, Hash(other))
}

func TestCheckVersion(t *testing.T) {
	require.NoError(t, CheckVersion(CurrentVersion))
	require.Error(t, CheckVersion(Version(99)))
}
