// Package graph is the compile stage of the application. It takes the
// parsed Workspace model, applies default classes, expands counted bodies,
// builds the kinematic tree rooted at the implicit world body, resolves
// every name reference, validates the structural invariants of the scene,
// and derives the static quantities a consuming engine or viewer needs
// (world poses, masses, configuration widths, collision candidates, and a
// stable fingerprint).
//
// The package deliberately owns referential integrity: the model records
// references as written, and everything name-shaped is checked here, with
// diagnostics pointing at the offending declaration.
package graph
