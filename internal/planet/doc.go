// Package planet defines the radial profile of a modeled planet and the
// immutable run inputs (layer counts, bulk composition, structural
// parameters).
//
// A [Profile] is a set of parallel slices, one entry per radial layer,
// ordered from the planet center outward. The layer index partitions the
// profile into three contiguous bands: core, mantle and an optional
// water/ice shell. All slices always have equal length.
//
// Profiles are owned by a single solver run and must not be shared across
// concurrent runs.
package planet
