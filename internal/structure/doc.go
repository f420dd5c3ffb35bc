// Package structure solves the interior structure of a rocky or icy planet.
//
// The solver alternates five stages over a shared radial [planet.Profile]
// until the density profile stops changing: equation-of-state density
// lookup, spherical Poisson gravity integration, hydrostatic pressure
// integration, adiabatic temperature integration, and radius recovery from
// mass conservation. A run is driven either by a target mass or by a target
// radius; the radius-target mode wraps the fixed point in an outer shooting
// search over total mass.
//
// The solver is strictly sequential within a run. Independent runs may
// execute concurrently as long as each owns its profile; the EOS grids are
// shared read-only.
package structure
