// Package spotrod computes light curves of stars with limb darkening and
// spots, transited by a planet. It is designed to be evaluated many times
// with slightly different parameters, as is the case when fitting
// observations with Markov chain Monte Carlo.
//
// # Integration over annuli
//
// The stellar disk is divided into concentric annuli ([Annuli]). On every
// annulus, the planet and each spot cover an arc, and the flux of the star is
// the weighted sum of the uncovered parts. Arcs are described by their half
// central angle, which for a planet is given in closed form by
// [CircleHalfAngle] and for a spot, which appears as an ellipse because of
// foreshortening, by [EllipseHalfAngle]. Both are homogeneous of order zero in
// their lengths.
//
// [IntegrateTransit] combines the arcs into a light curve normalized to 1.0
// out of transit. Limb darkening does not appear explicitly: it is folded into
// the annulus weights F, which the caller computes with whatever law it
// prefers (see [NewAnnuli]).
//
// # Orbits
//
// [Elements] turns times relative to mid-transit into orbital coordinates
// using a second-order expansion in the eccentricity, and [SkyPosition] turns
// those into planet positions in the sky plane.
//
// # Caching
//
// Several inputs of [Transit] are redundant: the planet distances Z, the
// spot-free out-of-transit flux OOTFlux0, and the planet half-angles
// PlanetAngle, an m×n matrix. Computing them dominates the cost of a model
// evaluation, and they don't change when only spot parameters change. [Cache]
// owns them and recomputes them only when the planet's positions or radius
// change. The integration itself never checks that they are consistent.
//
// # Errors
//
// The geometric routines are total: tangent, nested and concentric
// configurations are resolved by explicit case analysis and clamping, and
// never produce NaN or Inf for non-negative lengths. Only the boundary
// functions, [IntegrateTransit] and [NewTransitFromKeywords], return errors,
// and only for buffers of mismatched shape or type ([ErrShape], [ErrType],
// [ErrArgument]).
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct outputs. Samples of a
// light curve are independent of each other; [Transit.IntegrateParallel]
// evaluates them on several goroutines.
//
// # Literature
//
//   - [Spotrod: a semi-analytic model for transits of spotted stars] by Béky, Kipping and Holman
//   - [Solar System Dynamics] by Murray and Dermott, for the eccentricity expansions
//   - [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality] by Oliveira and Takahashi
//
// [Spotrod: a semi-analytic model for transits of spotted stars]: https://arxiv.org/abs/1407.4465
// [Solar System Dynamics]: https://doi.org/10.1017/CBO9781139174817
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
package spotrod
