// Package clientdistribution assigns incoming clients to a rotating pool of
// executives and reports per-executive performance.
//
// The domain keeps three behaviors consistent with each other: round-robin
// selection of the next executive, case-insensitive bulk import against the
// existing client population, and dashboard statistics. Persistence, file
// parsing and transport sit behind ports and are composed in module.go.
package clientdistribution
