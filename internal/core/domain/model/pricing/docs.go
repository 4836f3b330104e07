// Package pricing contains the commercial domain model: delivery zones,
// per-seller per-vendor rate profiles with slab-based freight tables, and COD
// charge rules. The PriceCalculator domain service consumes these to produce
// a Charge for a shipment.
package pricing
