package extractor

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/materiascout/materiascout/pkg/errors"
)

// Lexicon maps lowercase element names to canonical symbols. It is built
// once and treated as immutable for the process lifetime; per-query state
// never touches it.
type Lexicon struct {
	nameToSymbol map[string]string
	symbols      map[string]struct{}
}

// defaultNames is the built-in name table covering all 118 elements, with
// the common British/American spelling variants that show up in queries.
var defaultNames = map[string]string{
	"hydrogen": "H", "helium": "He", "lithium": "Li", "beryllium": "Be",
	"boron": "B", "carbon": "C", "nitrogen": "N", "oxygen": "O",
	"fluorine": "F", "neon": "Ne", "sodium": "Na", "magnesium": "Mg",
	"aluminum": "Al", "aluminium": "Al", "silicon": "Si", "phosphorus": "P",
	"sulfur": "S", "sulphur": "S", "chlorine": "Cl", "argon": "Ar",
	"potassium": "K", "calcium": "Ca", "scandium": "Sc", "titanium": "Ti",
	"vanadium": "V", "chromium": "Cr", "manganese": "Mn", "iron": "Fe",
	"cobalt": "Co", "nickel": "Ni", "copper": "Cu", "zinc": "Zn",
	"gallium": "Ga", "germanium": "Ge", "arsenic": "As", "selenium": "Se",
	"bromine": "Br", "krypton": "Kr", "rubidium": "Rb", "strontium": "Sr",
	"yttrium": "Y", "zirconium": "Zr", "niobium": "Nb", "molybdenum": "Mo",
	"technetium": "Tc", "ruthenium": "Ru", "rhodium": "Rh", "palladium": "Pd",
	"silver": "Ag", "cadmium": "Cd", "indium": "In", "tin": "Sn",
	"antimony": "Sb", "tellurium": "Te", "iodine": "I", "xenon": "Xe",
	"cesium": "Cs", "caesium": "Cs", "barium": "Ba", "lanthanum": "La",
	"cerium": "Ce", "praseodymium": "Pr", "neodymium": "Nd", "promethium": "Pm",
	"samarium": "Sm", "europium": "Eu", "gadolinium": "Gd", "terbium": "Tb",
	"dysprosium": "Dy", "holmium": "Ho", "erbium": "Er", "thulium": "Tm",
	"ytterbium": "Yb", "lutetium": "Lu", "hafnium": "Hf", "tantalum": "Ta",
	"tungsten": "W", "rhenium": "Re", "osmium": "Os", "iridium": "Ir",
	"platinum": "Pt", "gold": "Au", "mercury": "Hg", "thallium": "Tl",
	"lead": "Pb", "bismuth": "Bi", "polonium": "Po", "astatine": "At",
	"radon": "Rn", "francium": "Fr", "radium": "Ra", "actinium": "Ac",
	"thorium": "Th", "protactinium": "Pa", "uranium": "U", "neptunium": "Np",
	"plutonium": "Pu", "americium": "Am", "curium": "Cm", "berkelium": "Bk",
	"californium": "Cf", "einsteinium": "Es", "fermium": "Fm",
	"mendelevium": "Md", "nobelium": "No", "lawrencium": "Lr",
	"rutherfordium": "Rf", "dubnium": "Db", "seaborgium": "Sg", "bohrium": "Bh",
	"hassium": "Hs", "meitnerium": "Mt", "darmstadtium": "Ds",
	"roentgenium": "Rg", "copernicium": "Cn", "nihonium": "Nh",
	"flerovium": "Fl", "moscovium": "Mc", "livermorium": "Lv",
	"tennessine": "Ts", "oganesson": "Og",
}

func newLexicon(names map[string]string) *Lexicon {
	lex := &Lexicon{
		nameToSymbol: make(map[string]string, len(names)),
		symbols:      make(map[string]struct{}, len(names)),
	}
	for name, symbol := range names {
		lex.nameToSymbol[strings.ToLower(name)] = symbol
		lex.symbols[symbol] = struct{}{}
	}
	return lex
}

// DefaultLexicon returns the built-in element name table.
func DefaultLexicon() *Lexicon {
	return newLexicon(defaultNames)
}

// NewLexicon builds a lexicon from an explicit name→symbol mapping. Names
// are lowered on insertion; symbols are kept verbatim.
func NewLexicon(names map[string]string) *Lexicon {
	return newLexicon(names)
}

// lexiconFile is the YAML shape of a lexicon extension file:
//
//	names:
//	  wolfram: W
//	  quicksilver: Hg
type lexiconFile struct {
	Names map[string]string `yaml:"names"`
}

// LoadLexiconFile returns the default lexicon extended with the entries from
// the YAML file at path. File entries win over built-ins for the same name.
func LoadLexiconFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidConfig,
			fmt.Sprintf("cannot read lexicon file %q", path))
	}

	var f lexiconFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidConfig,
			fmt.Sprintf("cannot parse lexicon file %q", path))
	}

	merged := make(map[string]string, len(defaultNames)+len(f.Names))
	for k, v := range defaultNames {
		merged[k] = v
	}
	for k, v := range f.Names {
		merged[strings.ToLower(k)] = v
	}
	return newLexicon(merged), nil
}

// SymbolForName returns the canonical symbol for a lowercase element name.
func (l *Lexicon) SymbolForName(name string) (string, bool) {
	s, ok := l.nameToSymbol[name]
	return s, ok
}

// HasSymbol reports whether symbol is one of the lexicon's mapped symbols.
// The check is case-sensitive since lexicon symbols are canonical.
func (l *Lexicon) HasSymbol(symbol string) bool {
	_, ok := l.symbols[symbol]
	return ok
}

// Len returns the number of name entries.
func (l *Lexicon) Len() int {
	return len(l.nameToSymbol)
}
