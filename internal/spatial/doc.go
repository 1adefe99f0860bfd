// Package spatial provides the small set of rigid-body math primitives the
// scene compiler needs: 3-vectors, unit quaternions, pose composition,
// axis-aligned bounds, and static mass properties for the supported shapes.
//
// Everything here is static data derivation. The package deliberately stops
// short of anything a physics engine would own: no integration, no contact
// math, no velocity state.
package spatial
