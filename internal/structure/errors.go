package structure

import (
	"errors"
	"fmt"
)

// Sentinel outcomes the caller can branch on.
var (
	// ErrNonConvergence indicates the inner fixed point ran out of
	// iterations. The caller may retry with a relaxed tolerance or a
	// different initial guess.
	ErrNonConvergence = errors.New("structure: density did not converge within the iteration cap")

	// ErrShootingFailure indicates the outer target search could not
	// bracket or close on the target.
	ErrShootingFailure = errors.New("structure: target search failed")
)

// DomainError is fatal: a (P, T) point fell outside every grid and outside
// the validity of any analytic fallback. It aborts the whole run.
type DomainError struct {
	Property     string
	Band         string
	Layer        int
	PressureBar  float64
	TemperatureK float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("structure: %s undefined for %s layer %d at P=%.4g GPa, T=%.1f K",
		e.Property, e.Band, e.Layer, e.PressureBar/10.0/1000.0, e.TemperatureK)
}

// ConvergenceError wraps ErrNonConvergence with the state of the failed run.
type ConvergenceError struct {
	Iterations int
	Residual   float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%v after %d iterations (residual %.3g)", ErrNonConvergence, e.Iterations, e.Residual)
}

func (e *ConvergenceError) Unwrap() error { return ErrNonConvergence }

// ShootingError wraps ErrShootingFailure with the search interval.
type ShootingError struct {
	Mode    string
	Lo, Hi  float64 // Earth masses
	Target  float64 // Earth units
	Message string
}

func (e *ShootingError) Error() string {
	return fmt.Sprintf("%v: %s mode, target %g, searched [%g, %g] Earth masses: %s",
		ErrShootingFailure, e.Mode, e.Target, e.Lo, e.Hi, e.Message)
}

func (e *ShootingError) Unwrap() error { return ErrShootingFailure }
