// Package eos provides the equation-of-state surface the structure solver
// consumes: tabulated (pressure, temperature) grids per material region and
// the closed-form fallback equations of state used when a point falls
// outside every grid's domain.
//
// Grid tables are produced externally by a mineral-physics pipeline and read
// here as-is; this package never generates thermodynamic data. Grids are
// read-only after construction and safe for concurrent lookups from
// independent solver runs.
//
// Units: grid space is (bar, K); the analytic fallbacks take pascals, with
// the factor 1e5 applied explicitly at the boundary.
package eos
