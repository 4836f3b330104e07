package services

import (
	"strings"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/pricing"
	"courierhub/internal/pkg/errs"
)

// PincodeRecord is one row of the serviceability directory: the geography a
// pincode resolves to. Metro and NorthEast flags drive zone classification.
type PincodeRecord struct {
	Pincode   kernel.Pincode
	City      string
	State     string
	Metro     bool
	NorthEast bool
}

// ZoneClassifier resolves a shipping zone from an origin and destination
// pincode pair. It holds the full pincode directory in memory; the directory
// is loaded once at startup and is read-only afterwards, so lookups need no
// locking.
//
// Classification rules, applied in order:
//   - same city: within-city
//   - same state: within-zone
//   - either side in the north-east: north-east
//   - both sides metro cities: within-metro
//   - otherwise: rest-of-india
type ZoneClassifier struct {
	records map[string]PincodeRecord
}

// NewZoneClassifier builds a classifier over the given directory rows.
// Later duplicates of the same pincode win.
func NewZoneClassifier(records []PincodeRecord) *ZoneClassifier {
	index := make(map[string]PincodeRecord, len(records))
	for _, r := range records {
		index[r.Pincode.String()] = r
	}
	return &ZoneClassifier{records: index}
}

// Classify resolves the zone for an origin and destination pincode.
// Returns UnknownPincodeError when either side is absent from the directory.
func (z *ZoneClassifier) Classify(origin, destination kernel.Pincode) (pricing.Zone, error) {
	from, ok := z.records[origin.String()]
	if !ok {
		return pricing.ZoneUnknown, errs.NewUnknownPincodeError(origin.String())
	}
	to, ok := z.records[destination.String()]
	if !ok {
		return pricing.ZoneUnknown, errs.NewUnknownPincodeError(destination.String())
	}

	switch {
	case strings.EqualFold(from.City, to.City):
		return pricing.WithinCity, nil
	case strings.EqualFold(from.State, to.State):
		return pricing.WithinZone, nil
	case from.NorthEast || to.NorthEast:
		return pricing.NorthEast, nil
	case from.Metro && to.Metro:
		return pricing.WithinMetro, nil
	default:
		return pricing.RestOfIndia, nil
	}
}

// Lookup returns the directory record for a single pincode.
func (z *ZoneClassifier) Lookup(pincode kernel.Pincode) (PincodeRecord, error) {
	r, ok := z.records[pincode.String()]
	if !ok {
		return PincodeRecord{}, errs.NewUnknownPincodeError(pincode.String())
	}
	return r, nil
}
