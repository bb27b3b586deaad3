package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/materiascout/materiascout/pkg/errors"
)

func TestBuildCriteriaEmpty(t *testing.T) {
	_, err := BuildCriteria(nil)
	require.Error(t, err)
	assert.True(t, errors.IsNoElementsFound(err))

	_, err = BuildCriteria([]string{})
	assert.True(t, errors.IsNoElementsFound(err))
}

func TestBuildCriteriaSingle(t *testing.T) {
	c, err := BuildCriteria([]string{"SiC"})
	require.NoError(t, err)

	single, ok := c.Single()
	assert.True(t, ok)
	assert.Equal(t, "SiC", single)
	// Single-symbol criteria is the symbol verbatim, no dash.
	assert.Equal(t, "SiC", c.String())
}

func TestBuildCriteriaChemicalSystem(t *testing.T) {
	c, err := BuildCriteria([]string{"O", "Fe"})
	require.NoError(t, err)

	_, ok := c.Single()
	assert.False(t, ok)
	assert.Equal(t, "Fe-O", c.ChemicalSystem())
	assert.Equal(t, "Fe-O", c.String())
	// The symbol list itself keeps first-occurrence order.
	assert.Equal(t, []string{"O", "Fe"}, c.Symbols)
}

func TestChemicalSystemCanonicalAcrossPermutations(t *testing.T) {
	a, err := BuildCriteria([]string{"Fe", "O"})
	require.NoError(t, err)
	b, err := BuildCriteria([]string{"O", "Fe"})
	require.NoError(t, err)

	assert.Equal(t, a.ChemicalSystem(), b.ChemicalSystem())

	three := []struct{ in []string }{
		{[]string{"Li", "Fe", "O"}},
		{[]string{"O", "Li", "Fe"}},
		{[]string{"Fe", "O", "Li"}},
	}
	for _, tt := range three {
		c, err := BuildCriteria(tt.in)
		require.NoError(t, err)
		assert.Equal(t, "Fe-Li-O", c.ChemicalSystem(), "input %v", tt.in)
	}
}

func TestChemicalSystemDoesNotMutateSymbols(t *testing.T) {
	c, err := BuildCriteria([]string{"O", "Fe"})
	require.NoError(t, err)

	_ = c.ChemicalSystem()
	assert.Equal(t, []string{"O", "Fe"}, c.Symbols)
}

func TestExtractThenBuildCriteria(t *testing.T) {
	e := New(DefaultLexicon(), NewPeriodicTable())

	c, err := BuildCriteria(e.Extract("materials with iron and oxygen"))
	require.NoError(t, err)
	assert.Equal(t, "Fe-O", c.String())

	_, err = BuildCriteria(e.Extract("tell me a story"))
	assert.True(t, errors.IsNoElementsFound(err))
}
