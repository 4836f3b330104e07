// Package kernel provides core domain primitives used throughout the courier
// aggregation domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - Pincode: a value object for Indian postal codes, the key of zone lookups
//
// These primitives enforce domain invariants at construction time and are
// immutable and thread-safe, making them suitable for concurrent use.
package kernel
