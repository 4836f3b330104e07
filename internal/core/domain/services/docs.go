// Package services provides domain services that orchestrate business
// operations across multiple domain entities. It implements logic that does
// not naturally belong to a single aggregate root.
//
// The package includes:
//   - ZoneClassifier: resolves shipping zones from pincode pairs
//   - PriceCalculator: slab-based freight and COD pricing for one vendor
//   - RateShopper: concurrent multi-vendor pricing with ranked results
//
// Domain services here are pure computation over domain values. Loading the
// pincode directory or pricing profiles is the application layer's job.
package services
