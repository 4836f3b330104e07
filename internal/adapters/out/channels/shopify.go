// Package channels implements ChannelClient adapters for external sales
// channels.
package channels

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"courierhub/internal/core/ports"

	"github.com/cenkalti/backoff/v4"
)

const ordersPath = "/admin/api/2024-01/orders.json"

// defaultTimeout bounds one store API call when the config leaves the
// timeout unset.
const defaultTimeout = 30 * time.Second

// ShopifyConfig carries the store coordinates and access token for one
// Shopify channel connection.
type ShopifyConfig struct {
	// ShopURL is the store's admin base, e.g. https://acme.myshopify.com.
	ShopURL     string
	AccessToken string

	// Timeout bounds every store API call. Zero means defaultTimeout.
	Timeout time.Duration
}

// ShopifyClient pulls paid, unfulfilled orders from one Shopify store.
type ShopifyClient struct {
	cfg    ShopifyConfig
	client *http.Client
	logger *slog.Logger
}

// NewShopifyClient creates a client for one store connection.
func NewShopifyClient(cfg ShopifyConfig, logger *slog.Logger) *ShopifyClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &ShopifyClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger.With("component", "shopify-client"),
	}
}

// Name returns the channel slug.
func (c *ShopifyClient) Name() string {
	return "shopify"
}

type shopifyAddress struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address1 string `json:"address1"`
	Zip      string `json:"zip"`
	City     string `json:"city"`
	Province string `json:"province"`
}

type shopifyLineItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Grams    int    `json:"grams"`
}

type shopifyOrder struct {
	ID                  int64             `json:"id"`
	TotalPrice          string            `json:"total_price"`
	FinancialStatus     string            `json:"financial_status"`
	CreatedAt           time.Time         `json:"created_at"`
	ShippingAddress     shopifyAddress    `json:"shipping_address"`
	LineItems           []shopifyLineItem `json:"line_items"`
	PaymentGatewayNames []string          `json:"payment_gateway_names"`
}

type shopifyOrdersResponse struct {
	Orders []shopifyOrder `json:"orders"`
}

// FetchNewOrders lists orders created on the store since the given time.
// Orders without a shipping address or line items are skipped.
func (c *ShopifyClient) FetchNewOrders(ctx context.Context, since time.Time) ([]ports.ChannelOrder, error) {
	query := url.Values{}
	query.Set("status", "any")
	query.Set("fulfillment_status", "unfulfilled")
	query.Set("created_at_min", since.UTC().Format(time.RFC3339))

	endpoint := c.cfg.ShopURL + ordersPath + "?" + query.Encode()

	var payload shopifyOrdersResponse

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("X-Shopify-Access-Token", c.cfg.AccessToken)

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("shopify returned status %d", resp.StatusCode)
		}
		if resp.StatusCode >= http.StatusBadRequest {
			return backoff.Permanent(fmt.Errorf("shopify returned status %d", resp.StatusCode))
		}

		if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("fetching shopify orders: %w", err)
	}

	orders := make([]ports.ChannelOrder, 0, len(payload.Orders))
	for _, o := range payload.Orders {
		if len(o.LineItems) == 0 || o.ShippingAddress.Zip == "" {
			c.logger.WarnContext(ctx, "Skipping channel order without shipment data",
				"channelOrderID", o.ID)
			continue
		}

		item := o.LineItems[0]
		weightKg := float64(item.Grams*item.Quantity) / 1000.0

		orders = append(orders, ports.ChannelOrder{
			ChannelOrderID:  strconv.FormatInt(o.ID, 10),
			CustomerName:    o.ShippingAddress.Name,
			CustomerPhone:   o.ShippingAddress.Phone,
			CustomerAddress: o.ShippingAddress.Address1,
			CustomerPincode: o.ShippingAddress.Zip,
			CustomerCity:    o.ShippingAddress.City,
			CustomerState:   o.ShippingAddress.Province,
			PaymentCOD:      isCOD(o),
			Collectable:     o.TotalPrice,
			WeightKg:        strconv.FormatFloat(weightKg, 'f', 3, 64),
			ProductName:     item.Name,
			Quantity:        item.Quantity,
			PlacedAt:        o.CreatedAt,
		})
	}

	return orders, nil
}

// isCOD treats pending orders paid through a cash gateway as COD.
func isCOD(o shopifyOrder) bool {
	if o.FinancialStatus == "paid" {
		return false
	}
	for _, gateway := range o.PaymentGatewayNames {
		if gateway == "Cash on Delivery (COD)" || gateway == "cash_on_delivery" {
			return true
		}
	}
	return o.FinancialStatus == "pending"
}
