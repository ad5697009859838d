package fixedpoint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMulFixed(t *testing.T) {
	tests := []struct {
		name string
		a, b Scalar
		want Scalar
	}{
		{"identity", FromInt(1), FromInt(5), FromInt(5)},
		{"half", Scalar(500_000), FromInt(10), FromInt(5)},
		{"zero", 0, FromInt(42), 0},
		{"negative", FromInt(-2), FromInt(3), FromInt(-6)},
		{"saturates on overflow", Scalar(math.MaxInt64), FromInt(2), Scalar(math.MaxInt64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, MulFixed(tt.a, tt.b))
		})
	}
}

func TestDivFixed(t *testing.T) {
	require.Equal(t, Scalar(0), DivFixed(FromInt(10), 0))
	require.Equal(t, FromInt(2), DivFixed(FromInt(10), FromInt(5)))
	require.Equal(t, Scalar(500_000), DivFixed(FromInt(1), FromInt(2)))
}

func TestAddSubSaturate(t *testing.T) {
	require.Equal(t, Scalar(math.MaxInt64), Add(Scalar(math.MaxInt64), Scalar(1)))
	require.Equal(t, Scalar(math.MinInt64), Sub(Scalar(math.MinInt64), Scalar(1)))
	require.Equal(t, FromInt(7), Add(FromInt(3), FromInt(4)))
}

func TestClamp(t *testing.T) {
	require.Equal(t, Scalar(5), Clamp(Scalar(10), 0, 5))
	require.Equal(t, Scalar(0), Clamp(Scalar(-3), 0, 5))
	require.Equal(t, Scalar(3), Clamp(Scalar(3), 0, 5))
	require.Equal(t, Scalar(1), Clamp(Scalar(9), 1, 0))
}

func TestQuantize(t *testing.T) {
	require.Equal(t, Scalar(10), Quantize(Scalar(14), Scalar(5)))
	require.Equal(t, Scalar(14), Quantize(Scalar(14), Scalar(0)))
}

func TestCmp(t *testing.T) {
	require.Equal(t, -1, Cmp(1, 2))
	require.Equal(t, 0, Cmp(2, 2))
	require.Equal(t, 1, Cmp(3, 2))
}

func TestHashSliceDeterministic(t *testing.T) {
	vec := []Scalar{FromInt(1), FromInt(2), FromInt(3)}
	h1 := HashSlice(vec)
	h2 := HashSlice(vec)
	require.Equal(t, h1, h2)

	other := []Scalar{FromInt(1), FromInt(2), FromInt(4)}
	require.NotEqual(t, h1, HashSlice(other))
}

func TestNoFloatInPublicAPI(t *testing.T) {
	// Consensus-path arithmetic never returns through a float type; this
	// test exists as a structural reminder, not a runtime check.
	var _ func(Scalar, Scalar) Scalar = MulFixed
	var _ func(Scalar, Scalar) Scalar = DivFixed
}
