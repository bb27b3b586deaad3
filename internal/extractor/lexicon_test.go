package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLexiconLookups(t *testing.T) {
	lex := DefaultLexicon()

	tests := []struct {
		name   string
		symbol string
	}{
		{"iron", "Fe"},
		{"oxygen", "O"},
		{"sodium", "Na"},
		{"chlorine", "Cl"},
		{"tungsten", "W"},
		{"oganesson", "Og"},
	}
	for _, tt := range tests {
		got, ok := lex.SymbolForName(tt.name)
		require.True(t, ok, "name %q", tt.name)
		assert.Equal(t, tt.symbol, got)
	}

	_, ok := lex.SymbolForName("unobtainium")
	assert.False(t, ok)
}

func TestDefaultLexiconSpellingVariants(t *testing.T) {
	lex := DefaultLexicon()

	al, _ := lex.SymbolForName("aluminum")
	alGB, _ := lex.SymbolForName("aluminium")
	assert.Equal(t, al, alGB)

	s, _ := lex.SymbolForName("sulfur")
	sGB, _ := lex.SymbolForName("sulphur")
	assert.Equal(t, s, sGB)
}

func TestLexiconHasSymbolCaseSensitive(t *testing.T) {
	lex := DefaultLexicon()

	assert.True(t, lex.HasSymbol("Fe"))
	assert.False(t, lex.HasSymbol("fe"))
	assert.False(t, lex.HasSymbol("FE"))
}

func TestNewLexiconLowersNames(t *testing.T) {
	lex := NewLexicon(map[string]string{"Wolfram": "W"})

	got, ok := lex.SymbolForName("wolfram")
	require.True(t, ok)
	assert.Equal(t, "W", got)
	assert.Equal(t, 1, lex.Len())
}

func TestLoadLexiconFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	content := "names:\n  wolfram: W\n  quicksilver: Hg\n  iron: Xx\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lex, err := LoadLexiconFile(path)
	require.NoError(t, err)

	w, ok := lex.SymbolForName("wolfram")
	require.True(t, ok)
	assert.Equal(t, "W", w)

	hg, ok := lex.SymbolForName("quicksilver")
	require.True(t, ok)
	assert.Equal(t, "Hg", hg)

	// File entries override built-ins.
	fe, _ := lex.SymbolForName("iron")
	assert.Equal(t, "Xx", fe)

	// Built-ins not mentioned in the file survive.
	o, ok := lex.SymbolForName("oxygen")
	require.True(t, ok)
	assert.Equal(t, "O", o)
}

func TestLoadLexiconFileErrors(t *testing.T) {
	_, err := LoadLexiconFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("names: [not a map"), 0o644))
	_, err = LoadLexiconFile(bad)
	assert.Error(t, err)
}

func TestPeriodicTable(t *testing.T) {
	pt := NewPeriodicTable()

	assert.True(t, pt.IsValidSymbol("Fe"))
	assert.True(t, pt.IsValidSymbol("H"))
	assert.True(t, pt.IsValidSymbol("Og"))
	assert.False(t, pt.IsValidSymbol("fe"))
	assert.False(t, pt.IsValidSymbol("FE"))
	assert.False(t, pt.IsValidSymbol("Xx"))
	assert.False(t, pt.IsValidSymbol(""))

	assert.Len(t, pt.Symbols(), 118)
}
