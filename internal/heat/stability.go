package heat

import "fmt"

// MaxStableDt is the largest explicit time step that keeps the scheme stable:
// 0.5·dx²/a in 1D and dx²/(4a) in 2D.
func MaxStableDt(dim Dim, a, dx float64) float64 {
	if dim == Dim2 {
		return dx * dx / (4 * a)
	}
	return 0.5 * dx * dx / a
}

// CommonDt is a step valid for both dimensionalities, used when 1D and 2D
// runs are compared side by side.
func CommonDt(a, dx float64) float64 {
	return min(MaxStableDt(Dim1, a, dx), MaxStableDt(Dim2, a, dx))
}

// CheckStable returns ErrInstabilityRisk when dt exceeds the bound for dim.
func CheckStable(dim Dim, a, dx, dt float64) error {
	if limit := MaxStableDt(dim, a, dx); dt > limit {
		return fmt.Errorf("%w: dt=%g > %g (%s, a=%g, dx=%g)", ErrInstabilityRisk, dt, limit, dim, a, dx)
	}
	return nil
}
