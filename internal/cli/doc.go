// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates CLI flags into the application's internal configuration, with
// RIGSCENE_* environment variables supplying the defaults.
package cli
