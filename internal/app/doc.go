// Package app wires the application together: configuration, logging, the
// sensor kind registry, the variant catalog, and the load-compile-report
// pipeline behind the CLI.
package app
