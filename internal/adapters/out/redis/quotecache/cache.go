// Package quotecache stores the quotes of a rate shopping round in Redis
// until one is booked or the round's validity window closes. Redis expiry
// does the cleanup; nothing here is a source of truth.
package quotecache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/pricing"
	"courierhub/internal/core/domain/model/vendor"
	"courierhub/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const keyPrefix = "rates:round:"

// quoteDTO is the wire form of one cached quote.
type quoteDTO struct {
	ID              string `json:"id"`
	VendorID        string `json:"vendorId"`
	VendorName      string `json:"vendorName"`
	Freight         string `json:"freight"`
	CODFee          string `json:"codFee"`
	Total           string `json:"total"`
	Zone            int    `json:"zone"`
	TransitEstimate string `json:"transitEstimate"`
	ValidUntil      int64  `json:"validUntil"`
}

// RedisQuoteCache implements ports.QuoteCache over one Redis key per order.
// Each shopping round overwrites the previous one and carries its own TTL, so
// a booked or abandoned round disappears on its own.
type RedisQuoteCache struct {
	client *redis.Client
}

// NewRedisQuoteCache creates a cache over an existing Redis client.
func NewRedisQuoteCache(client *redis.Client) *RedisQuoteCache {
	return &RedisQuoteCache{client: client}
}

// Put stores the round's quotes under the order's key. The key expires when
// the last quote does.
func (c *RedisQuoteCache) Put(ctx context.Context, orderID kernel.UUID, quotes []vendor.Quote) error {
	dtos := make([]quoteDTO, 0, len(quotes))
	var latest time.Time
	for _, q := range quotes {
		charge := q.Charge
		dtos = append(dtos, quoteDTO{
			ID:              q.ID.String(),
			VendorID:        q.VendorID,
			VendorName:      q.VendorName,
			Freight:         charge.Freight.String(),
			CODFee:          charge.CODFee.String(),
			Total:           charge.Total.String(),
			Zone:            int(q.Zone),
			TransitEstimate: q.TransitEstimate,
			ValidUntil:      q.ValidUntil.Unix(),
		})
		if q.ValidUntil.After(latest) {
			latest = q.ValidUntil
		}
	}

	payload, err := json.Marshal(dtos)
	if err != nil {
		return err
	}

	ttl := time.Until(latest)
	if ttl <= 0 {
		return errs.NewValueIsInvalidError("quote validity")
	}

	return c.client.Set(ctx, keyPrefix+orderID.String(), payload, ttl).Err()
}

// Get retrieves one quote of the order's latest round.
func (c *RedisQuoteCache) Get(ctx context.Context, orderID, quoteID kernel.UUID) (vendor.Quote, error) {
	payload, err := c.client.Get(ctx, keyPrefix+orderID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return vendor.Quote{}, errs.NewObjectNotFoundError("quote", quoteID.String())
		}
		return vendor.Quote{}, err
	}

	var dtos []quoteDTO
	if err = json.Unmarshal(payload, &dtos); err != nil {
		return vendor.Quote{}, err
	}

	for _, dto := range dtos {
		if dto.ID != quoteID.String() {
			continue
		}
		return toDomain(dto)
	}
	return vendor.Quote{}, errs.NewObjectNotFoundError("quote", quoteID.String())
}

func toDomain(dto quoteDTO) (vendor.Quote, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return vendor.Quote{}, err
	}

	charge, err := chargeFromDTO(dto)
	if err != nil {
		return vendor.Quote{}, err
	}

	return vendor.Quote{
		ID:              id,
		VendorID:        dto.VendorID,
		VendorName:      dto.VendorName,
		Charge:          charge,
		Zone:            pricing.Zone(dto.Zone),
		TransitEstimate: dto.TransitEstimate,
		ValidUntil:      time.Unix(dto.ValidUntil, 0).UTC(),
	}, nil
}

func chargeFromDTO(dto quoteDTO) (pricing.Charge, error) {
	freight, err := decimalFromString(dto.Freight, "freight")
	if err != nil {
		return pricing.Charge{}, err
	}
	codFee, err := decimalFromString(dto.CODFee, "codFee")
	if err != nil {
		return pricing.Charge{}, err
	}
	total, err := decimalFromString(dto.Total, "total")
	if err != nil {
		return pricing.Charge{}, err
	}
	return pricing.Charge{Freight: freight, CODFee: codFee, Total: total}, nil
}

func decimalFromString(value, name string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return d, nil
}
