// Package extractor turns free-text materials queries into normalized,
// deduplicated, order-preserving lists of chemical element symbols and
// formula-like tokens, and builds search criteria from them.
//
// The pipeline is deliberately a heuristic token classifier, not a chemistry
// parser: compound names ("sodium chloride") and implicit conjunctions
// ("iron oxide") are not resolved. Tokens that match no rule are silently
// dropped so that ordinary prose ("sirius", "done") never produces false
// positives.
package extractor

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MatchKind records which classification rule emitted a symbol.
type MatchKind int

const (
	// MatchName means the lowered token was a known element name.
	MatchName MatchKind = iota
	// MatchSymbol means the token was a canonical element symbol.
	MatchSymbol
	// MatchFormula means the token looked like a chemical formula.
	MatchFormula
)

// Match is one classified token: the emitted value and the rule that
// produced it.
type Match struct {
	Value string
	Kind  MatchKind
}

// token is one substring of the input query. Raw preserves original case for
// the symbol and formula rules; Lower is used for lexicon lookups.
type token struct {
	Raw   string
	Lower string
}

// separators is the token delimiter set: runs of spaces, commas, and periods.
var separators = regexp.MustCompile(`[ ,.]+`)

// tokenize splits text into tokens on runs of separator characters. Empty
// tokens produced by leading/trailing separators are discarded. The input is
// NFC-normalized first so composed and decomposed forms of the same text
// tokenize identically.
func tokenize(text string) []token {
	text = norm.NFC.String(text)
	parts := separators.Split(text, -1)
	out := make([]token, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, token{Raw: p, Lower: strings.ToLower(p)})
	}
	return out
}

// Extractor classifies query tokens against an element lexicon and an
// injectable symbol validator. It holds no per-query state and is safe for
// concurrent use.
type Extractor struct {
	lexicon   *Lexicon
	validator SymbolValidator
}

// New constructs an Extractor. A nil lexicon falls back to the built-in name
// table; a nil validator falls back to the built-in periodic table.
func New(lexicon *Lexicon, validator SymbolValidator) *Extractor {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	if validator == nil {
		validator = NewPeriodicTable()
	}
	return &Extractor{lexicon: lexicon, validator: validator}
}

// Extract returns the symbols and formula-like tokens recognized in text,
// unique by value, in first-occurrence order. Unclassifiable input is never
// an error: an empty or unrecognizable query yields an empty slice.
func (e *Extractor) Extract(text string) []string {
	matches := e.ExtractMatches(text)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Value
	}
	return out
}

// ExtractMatches is Extract with the classification rule attached to each
// emitted value, for callers that distinguish element symbols from formula
// tokens (demo-store matching does).
func (e *Extractor) ExtractMatches(text string) []Match {
	var matches []Match
	seen := make(map[string]struct{})

	for _, tok := range tokenize(text) {
		m, ok := e.classify(tok)
		if !ok {
			continue
		}
		if _, dup := seen[m.Value]; dup {
			continue
		}
		seen[m.Value] = struct{}{}
		matches = append(matches, m)
	}
	return matches
}

// classify applies the rule chain to a single token, first match wins:
// known name, then known symbol, then formula-like pattern. Precedence
// matters: a token can match both a name and the formula pattern, and the
// canonical symbol is preferred.
func (e *Extractor) classify(tok token) (Match, bool) {
	if symbol, ok := e.lexicon.SymbolForName(tok.Lower); ok {
		return Match{Value: symbol, Kind: MatchName}, true
	}

	// The symbol rule requires the token to be symbol-cased already (first
	// rune uppercase). Lowercase prose words are left to the name rule
	// alone: otherwise "no", "in", or "as" would resolve to nobelium,
	// indium, and arsenic.
	if sym, ok := capitalized(tok.Raw); ok {
		if e.lexicon.HasSymbol(sym) || e.validator.IsValidSymbol(sym) {
			return Match{Value: sym, Kind: MatchSymbol}, true
		}
		if e.isFormulaLike(sym) {
			return Match{Value: sym, Kind: MatchFormula}, true
		}
	}

	return Match{}, false
}

// capitalized returns the token with its first letter capitalized and the
// rest unchanged, and reports whether the token already started with an
// uppercase letter.
func capitalized(raw string) (string, bool) {
	r, _ := utf8.DecodeRuneInString(raw)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return "", false
	}
	return raw, true
}

// formulaGroup matches one element-count group inside a formula token: an
// uppercase letter, an optional lowercase letter, and an optional count.
var formulaGroup = regexp.MustCompile(`^([A-Z][a-z]?)([0-9]*)`)

// isFormulaLike reports whether tok parses as a simple chemical formula: a
// sequence of symbol-count groups ("Fe2O3" → Fe2, O3) in which every symbol
// is valid per the injected validator. Requiring valid symbols rejects
// capitalized prose ("Feat" → Fe, at); requiring a lowercase letter or
// digit after the first rune rejects shouting-caps words whose letters
// happen to be one-letter symbols ("CO", "NO", "US"). NaCl, H2O, and SiC
// all pass both checks.
func (e *Extractor) isFormulaLike(tok string) bool {
	_, first := utf8.DecodeRuneInString(tok)
	if !strings.ContainsFunc(tok[first:], func(r rune) bool {
		return unicode.IsLower(r) || unicode.IsDigit(r)
	}) {
		return false
	}
	rest := tok
	groups := 0
	for rest != "" {
		m := formulaGroup.FindStringSubmatch(rest)
		if m == nil {
			return false
		}
		if !e.validator.IsValidSymbol(m[1]) {
			return false
		}
		rest = rest[len(m[0]):]
		groups++
	}
	return groups > 0
}
