package ports

import (
	"context"
	"time"
)

// ChannelOrder is one order pulled from an external sales channel, in the
// channel's own terms. The poll use case converts it into an order aggregate.
type ChannelOrder struct {
	ChannelOrderID  string
	SellerID        string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	CustomerPincode string
	CustomerCity    string
	CustomerState   string
	PaymentCOD      bool
	Collectable     string
	WeightKg        string
	ProductName     string
	Quantity        int
	PlacedAt        time.Time
}

// ChannelClient pulls new orders from one external sales channel.
type ChannelClient interface {
	// Name returns the channel's slug, e.g. "shopify".
	Name() string

	// FetchNewOrders lists orders placed on the channel since the given
	// time.
	FetchNewOrders(ctx context.Context, since time.Time) ([]ChannelOrder, error)
}
