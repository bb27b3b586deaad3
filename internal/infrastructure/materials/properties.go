package materials

// SummaryFields is the property catalog of the materials summary document.
// It mirrors the upstream summary model; entries absent from a particular
// material come back as null and are dropped by projection.
var SummaryFields = []string{
	"builder_meta", "nsites", "elements", "nelements", "composition",
	"composition_reduced", "formula_pretty", "formula_anonymous", "chemsys",
	"volume", "density", "density_atomic", "symmetry", "property_name",
	"material_id", "deprecated", "deprecation_reasons", "last_updated",
	"origins", "warnings", "structure", "task_ids",
	"uncorrected_energy_per_atom", "energy_per_atom",
	"formation_energy_per_atom", "energy_above_hull", "is_stable",
	"equilibrium_reaction_energy_per_atom", "decomposes_to", "xas",
	"grain_boundaries", "band_gap", "cbm", "vbm", "efermi", "is_gap_direct",
	"is_metal", "es_source_calc_id", "bandstructure", "dos", "orbital",
	"magnetic_ordering", "dos_energy_up", "dos_energy_down", "is_magnetic",
	"ordering", "total_magnetization",
	"total_magnetization_normalized_vol",
	"total_magnetization_normalized_formula_units", "num_magnetic_sites",
	"num_unique_magnetic_sites", "types_of_magnetic_species", "bulk_modulus",
	"shear_modulus", "universal_anisotropy", "homogeneous_poisson",
	"e_total", "e_ionic", "e_electronic", "n", "e_ij_max",
	"weighted_surface_energy_EV_PER_ANG2", "weighted_surface_energy",
	"weighted_work_function", "surface_anisotropy", "shape_factor",
	"has_reconstructed", "possible_species", "has_props", "theoretical",
	"database_IDs",
}
