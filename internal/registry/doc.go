// Package registry holds the sensor kind definitions known to the compiler.
//
// A sensor declaration in a scene names a kind (framepos, framequat, ...).
// The kind determines the width of the read-out and which object namespaces
// the sensor may bind to. Keeping kinds in a registry rather than a switch
// lets embedding tools register their own kinds before compiling, while the
// compiler validates every sensor block against a single source of truth.
package registry
