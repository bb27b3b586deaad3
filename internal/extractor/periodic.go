package extractor

// SymbolValidator answers whether a string is a chemically valid element
// symbol. It is an injectable capability so the extraction pipeline can be
// tested, or re-targeted at a subset of the periodic table, without any
// chemistry library dependency.
type SymbolValidator interface {
	IsValidSymbol(symbol string) bool
}

// periodicSymbols is the set of all IUPAC element symbols, Z=1..118.
var periodicSymbols = map[string]struct{}{
	"H": {}, "He": {}, "Li": {}, "Be": {}, "B": {}, "C": {}, "N": {}, "O": {},
	"F": {}, "Ne": {}, "Na": {}, "Mg": {}, "Al": {}, "Si": {}, "P": {}, "S": {},
	"Cl": {}, "Ar": {}, "K": {}, "Ca": {}, "Sc": {}, "Ti": {}, "V": {}, "Cr": {},
	"Mn": {}, "Fe": {}, "Co": {}, "Ni": {}, "Cu": {}, "Zn": {}, "Ga": {}, "Ge": {},
	"As": {}, "Se": {}, "Br": {}, "Kr": {}, "Rb": {}, "Sr": {}, "Y": {}, "Zr": {},
	"Nb": {}, "Mo": {}, "Tc": {}, "Ru": {}, "Rh": {}, "Pd": {}, "Ag": {}, "Cd": {},
	"In": {}, "Sn": {}, "Sb": {}, "Te": {}, "I": {}, "Xe": {}, "Cs": {}, "Ba": {},
	"La": {}, "Ce": {}, "Pr": {}, "Nd": {}, "Pm": {}, "Sm": {}, "Eu": {}, "Gd": {},
	"Tb": {}, "Dy": {}, "Ho": {}, "Er": {}, "Tm": {}, "Yb": {}, "Lu": {}, "Hf": {},
	"Ta": {}, "W": {}, "Re": {}, "Os": {}, "Ir": {}, "Pt": {}, "Au": {}, "Hg": {},
	"Tl": {}, "Pb": {}, "Bi": {}, "Po": {}, "At": {}, "Rn": {}, "Fr": {}, "Ra": {},
	"Ac": {}, "Th": {}, "Pa": {}, "U": {}, "Np": {}, "Pu": {}, "Am": {}, "Cm": {},
	"Bk": {}, "Cf": {}, "Es": {}, "Fm": {}, "Md": {}, "No": {}, "Lr": {}, "Rf": {},
	"Db": {}, "Sg": {}, "Bh": {}, "Hs": {}, "Mt": {}, "Ds": {}, "Rg": {}, "Cn": {},
	"Nh": {}, "Fl": {}, "Mc": {}, "Lv": {}, "Ts": {}, "Og": {},
}

// PeriodicTable is the built-in SymbolValidator backed by the full table of
// 118 elements. The check is case-sensitive: "Fe" is valid, "FE" and "fe"
// are not.
type PeriodicTable struct{}

// NewPeriodicTable returns the built-in periodic table validator.
func NewPeriodicTable() *PeriodicTable {
	return &PeriodicTable{}
}

// IsValidSymbol reports whether symbol is an IUPAC element symbol.
func (PeriodicTable) IsValidSymbol(symbol string) bool {
	_, ok := periodicSymbols[symbol]
	return ok
}

// Symbols returns all element symbols in an unspecified order.
func (PeriodicTable) Symbols() []string {
	out := make([]string, 0, len(periodicSymbols))
	for s := range periodicSymbols {
		out = append(out, s)
	}
	return out
}
