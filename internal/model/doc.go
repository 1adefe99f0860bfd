// SPDX-License-Identifier: MIT
//
// Package model provides the Go struct representation of the rigscene HCL
// scene description. Its core purpose is to create a strongly-typed,
// in-memory model of the user's scene files by parsing the raw HCL.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - Workspace: The root container representing everything loaded from one
//     or more .hcl files: scene metadata, assets, the body tree, sensors,
//     regions, and keyframes.
//
//   - Body: A node of the kinematic tree. Bodies nest recursively; top-level
//     bodies are children of the implicit world body. A body owns its joints,
//     geoms, cameras, and lights.
//
//   - Sensor: A named read-out bound to a body or geom by name reference. The
//     reference is captured as written; resolution happens in the graph
//     compiler, not here.
//
//   - FSInfo: Metadata that links every declaration back to its source file,
//     used for error reporting.
//
// Why a separate model package?
//
// This package acts as a critical intermediate layer. It organizes raw HCL
// blocks into a predictable structure, which serves as the foundation for the
// subsequent compile stage. Decoding is strict: unknown attributes and blocks
// are rejected with diagnostics that carry source positions. Name references
// (material -> texture, sensor -> geom, camera -> target body) are kept as
// plain strings here; the graph package owns referential integrity.
package model
