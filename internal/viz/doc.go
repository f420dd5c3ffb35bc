// Package viz renders solved interior structures in the terminal: styled
// summaries of a converged run, ASCII profile plots, and mass-radius curves
// from sweeps.
package viz
