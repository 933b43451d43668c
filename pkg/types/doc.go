// Package types defines the core types and interfaces used throughout svcgen.
// This includes the template tree nodes (Directory and File), the variable
// Context and its Values, the FS interface the materializer writes through,
// and the Report a materialization run produces.
package types
