package params

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomsons-zkauth/zkauth/group/dl"
)

func TestLoadDLProducesSafePrime(t *testing.T) {
	p, err := LoadDL()
	require.NoError(t, err)

	grp := p.Group.(*dl.Group)
	require.True(t, grp.P.ProbablyPrime(20), "canonical DL modulus is not prime")
	require.True(t, grp.Q.ProbablyPrime(20), "canonical DL subgroup order is not prime")

	two := big.NewInt(2)
	want := new(big.Int).Add(new(big.Int).Mul(two, grp.Q), big.NewInt(1))
	require.Equal(t, 0, grp.P.Cmp(want), "canonical DL modulus is not 2q+1")
	require.GreaterOrEqual(t, grp.P.BitLen(), 1000)
}

func TestLoadDLGeneratorsDistinctAndNontrivial(t *testing.T) {
	p, err := LoadDL()
	require.NoError(t, err)
	require.False(t, p.G.Equal(p.H), "canonical DL g == h")
}

func TestLoadECGeneratorsDistinctAndNontrivial(t *testing.T) {
	p, err := LoadEC()
	require.NoError(t, err)
	require.False(t, p.G.Equal(p.H), "canonical EC g == h")
}

func TestLoadDLDeterministic(t *testing.T) {
	a, err := LoadDL()
	require.NoError(t, err)
	b, err := LoadDL()
	require.NoError(t, err)
	require.True(t, a.G.Equal(b.G))
	require.True(t, a.H.Equal(b.H))
}

func TestLoadECDeterministic(t *testing.T) {
	a, err := LoadEC()
	require.NoError(t, err)
	b, err := LoadEC()
	require.NoError(t, err)
	require.True(t, a.G.Equal(b.G))
	require.True(t, a.H.Equal(b.H))
}

func TestGenerateDLAcceptsSmallBitLength(t *testing.T) {
	p, err := GenerateDL(32)
	require.NoError(t, err)
	require.False(t, p.G.Equal(p.H), "generated DL g == h")
}

func TestGenerateECDistinctGenerators(t *testing.T) {
	p, err := GenerateEC()
	require.NoError(t, err)
	require.False(t, p.G.Equal(p.H), "generated EC g == h")
}

func TestCanonicalDispatchesOnAlgorithm(t *testing.T) {
	dlParams, err := Canonical(AlgoDL)
	require.NoError(t, err)
	ecParams, err := Canonical(AlgoEC)
	require.NoError(t, err)

	_, ok := dlParams.Group.(*dl.Group)
	require.True(t, ok, "Canonical(AlgoDL) did not return a DL group")
	require.NotEqual(t, dlParams.Group, ecParams.Group)
}
