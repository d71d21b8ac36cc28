// Package heat provides the explicit finite-difference diffusion engine.
//
// The package evolves a scalar temperature field on a regular 1D or 2D grid:
//
//   - [Grid]: row-major field plus spacing and dimensionality
//   - [MaxStableDt], [CommonDt]: CFL bounds for the explicit scheme
//   - [Boundary]: per-step boundary policy ([Fixed], [ZeroFluxForcing])
//   - [Stencil]: 3-point / 5-point interior Laplacian update
//   - [Runner]: steps the field for a fixed number of steps and emits [Snapshot]s
//
// # Example
//
//	cfg := heat.DefaultConfig()
//	r, err := heat.NewRunner(cfg)
//	if err != nil {
//		return err
//	}
//	res, err := r.Run(ctx)
//
// # Thread Safety
//
// A Runner is single use and NOT safe for concurrent use. The stencil splits
// interior rows across workers inside a step; steps themselves are sequential.
package heat
