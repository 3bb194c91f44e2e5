// Package drawing holds node positions in the geometry a layout runs in.
//
// A Drawing stores one coordinate row per node, indexed by the node's
// arena index in the graph being laid out (row i belongs to node i). Five
// geometries implement the [Drawing] interface:
//
//   - [Euclidean2D]: the plane
//   - [Euclidean]: n-dimensional Euclidean space
//   - [Hyperbolic2D]: the Poincaré disk
//   - [Spherical2D]: the unit sphere in lon/lat coordinates
//   - [Torus2D]: the unit square with wraparound
//
// # The movement contract
//
// Delta(i, j, buf) returns the direction from node j toward node i
// expressed at i (a tangent vector in curved spaces) together with the
// geometry's distance between them. Move(u, dir, scale) displaces node u
// by scale times dir and renormalizes the result into the valid domain
// (rim clamp, longitude wrap, latitude clamp, torus wrap). Optimizers rely
// on this pairing: a negative scale moves i toward j along the same
// vector a positive scale uses to push j away.
//
// Degenerate configurations (coincident points, antipodes) yield a zero
// direction rather than NaN, and every singular denominator is floored,
// so a step through a singularity stalls instead of corrupting positions.
//
// Get and Set validate their inputs ([ErrInvalidIndex], [ErrInvalidValue]);
// Delta and Move are hot-loop operations and require valid indices.
//
// # Placements
//
// Each geometry ships a deterministic constructor (a fixed placement such
// as a golden-angle spiral or a circle) and a Random variant drawing from
// a seeded [rng.Rng], so runs are reproducible either way.
//
// Drawings are not safe for concurrent use.
package drawing
