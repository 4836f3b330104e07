package vendors

import (
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
)

// Pool is the registry of configured vendor gateways. Registration order is
// the vendor's ranking priority during rate shopping.
type Pool struct {
	ordered []ports.VendorGateway
	byID    map[string]ports.VendorGateway
}

// NewPool builds a pool over the given gateways.
func NewPool(gateways ...ports.VendorGateway) *Pool {
	pool := &Pool{
		ordered: make([]ports.VendorGateway, 0, len(gateways)),
		byID:    make(map[string]ports.VendorGateway, len(gateways)),
	}
	for _, g := range gateways {
		if _, exists := pool.byID[g.VendorID()]; exists {
			continue
		}
		pool.ordered = append(pool.ordered, g)
		pool.byID[g.VendorID()] = g
	}
	return pool
}

// Get resolves a gateway by vendor slug.
func (p *Pool) Get(vendorID string) (ports.VendorGateway, error) {
	g, ok := p.byID[vendorID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("vendor", vendorID)
	}
	return g, nil
}

// All returns every gateway in registration order.
func (p *Pool) All() []ports.VendorGateway {
	out := make([]ports.VendorGateway, len(p.ordered))
	copy(out, p.ordered)
	return out
}
