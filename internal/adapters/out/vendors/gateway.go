// Package vendors implements the outbound gateways to courier vendor APIs.
// All supported vendors speak the same JSON-over-HTTP shape, so one gateway
// type serves them all; what differs per vendor is its base URL, credentials
// and capability set, which come from configuration.
package vendors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/model/vendor"
	"courierhub/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/singleflight"
)

// defaultTimeout bounds one vendor HTTP call when the config leaves the
// timeout unset.
const defaultTimeout = 30 * time.Second

// Config describes one vendor connection.
type Config struct {
	ID           string
	Name         string
	BaseURL      string
	Email        string
	Password     string
	Capabilities []vendor.Capability

	// Timeout bounds every HTTP call to the vendor. Zero means
	// defaultTimeout.
	Timeout time.Duration
}

// Gateway is the HTTP client for one courier vendor. It owns a cached auth
// session; concurrent callers finding the session expired share a single
// refresh request instead of each logging in.
type Gateway struct {
	config     Config
	caps       map[vendor.Capability]bool
	httpClient *http.Client
	logger     *slog.Logger

	sessionGroup singleflight.Group
	sessionCache *sessionCache
}

// NewGateway creates a gateway for one configured vendor.
func NewGateway(config Config, logger *slog.Logger) *Gateway {
	caps := make(map[vendor.Capability]bool, len(config.Capabilities))
	for _, c := range config.Capabilities {
		caps[c] = true
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Gateway{
		config: config,
		caps:   caps,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:       logger.With("component", "vendor-gateway", "vendor", config.ID),
		sessionCache: &sessionCache{},
	}
}

// VendorID returns the vendor's slug.
func (g *Gateway) VendorID() string {
	return g.config.ID
}

// Name returns the vendor's display name.
func (g *Gateway) Name() string {
	return g.config.Name
}

// Supports reports whether the vendor implements the capability.
func (g *Gateway) Supports(capability vendor.Capability) bool {
	return g.caps[capability]
}

// RefreshSession forces a new login regardless of the cached session.
func (g *Gateway) RefreshSession(ctx context.Context) error {
	_, err := g.login(ctx)
	return err
}

// CreateShipment books a forward shipment and returns the vendor identifiers.
func (g *Gateway) CreateShipment(ctx context.Context, aggregate *order.Order) (order.Booking, error) {
	return g.bookShipment(ctx, aggregate, "/api/v1/shipments")
}

// CreateReturnShipment books a reverse pickup for the order.
func (g *Gateway) CreateReturnShipment(ctx context.Context, aggregate *order.Order) (order.Booking, error) {
	return g.bookShipment(ctx, aggregate, "/api/v1/shipments/return")
}

// CancelShipment cancels a booked shipment by its air waybill.
func (g *Gateway) CancelShipment(ctx context.Context, awb string) error {
	path := fmt.Sprintf("/api/v1/shipments/%s/cancel", awb)
	return g.call(ctx, http.MethodPost, path, nil, nil)
}

type shipmentRequest struct {
	ReferenceID    string `json:"reference_id"`
	PaymentMode    string `json:"payment_mode"`
	Collectable    string `json:"collectable_amount"`
	WeightKg       string `json:"weight_kg"`
	LengthCm       string `json:"length_cm"`
	WidthCm        string `json:"width_cm"`
	HeightCm       string `json:"height_cm"`
	BoxCount       int    `json:"box_count"`
	PickupName     string `json:"pickup_name"`
	PickupPhone    string `json:"pickup_phone"`
	PickupAddress  string `json:"pickup_address"`
	PickupPincode  string `json:"pickup_pincode"`
	ConsigneeName  string `json:"consignee_name"`
	ConsigneePhone string `json:"consignee_phone"`
	ConsigneeAddr  string `json:"consignee_address"`
	ConsigneePin   string `json:"consignee_pincode"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
}

type shipmentResponse struct {
	OrderID    string `json:"order_id"`
	ShipmentID string `json:"shipment_id"`
	AWB        string `json:"awb"`
}

func (g *Gateway) bookShipment(ctx context.Context, aggregate *order.Order, path string) (order.Booking, error) {
	pkg := aggregate.Package()
	hub := aggregate.Hub()
	customer := aggregate.Customer()
	product := aggregate.Product()

	request := shipmentRequest{
		ReferenceID:    aggregate.ReferenceID(),
		PaymentMode:    aggregate.PaymentMode().String(),
		Collectable:    aggregate.Collectable().String(),
		WeightKg:       pkg.WeightKg.String(),
		LengthCm:       pkg.LengthCm.String(),
		WidthCm:        pkg.WidthCm.String(),
		HeightCm:       pkg.HeightCm.String(),
		BoxCount:       pkg.BoxCount,
		PickupName:     hub.Name,
		PickupPhone:    hub.Phone,
		PickupAddress:  hub.Address,
		PickupPincode:  hub.Pincode.String(),
		ConsigneeName:  customer.Name,
		ConsigneePhone: customer.Phone,
		ConsigneeAddr:  customer.Address,
		ConsigneePin:   customer.Pincode.String(),
		ProductName:    product.Name,
		Quantity:       product.Quantity,
	}

	var response shipmentResponse
	if err := g.call(ctx, http.MethodPost, path, request, &response); err != nil {
		return order.Booking{}, err
	}

	return order.Booking{
		VendorID:         g.config.ID,
		VendorOrderID:    response.OrderID,
		VendorShipmentID: response.ShipmentID,
		AWB:              response.AWB,
		BookedAt:         time.Now().UTC(),
	}, nil
}

// call performs one authenticated JSON request. Transient failures, network
// errors and 5xx responses, are retried with exponential backoff; a 401
// invalidates the cached session so the retry logs in again; other 4xx
// responses fail immediately.
func (g *Gateway) call(ctx context.Context, method, path string, request, response any) error {
	operation := func() error {
		session, err := g.session(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}

		status, body, err := g.do(ctx, method, path, session.Token, request)
		if err != nil {
			return err
		}

		switch {
		case status == http.StatusUnauthorized:
			g.sessionCache.invalidate()
			return fmt.Errorf("session rejected: %d", status)
		case status >= 500:
			return fmt.Errorf("vendor returned %d", status)
		case status >= 400:
			return backoff.Permanent(fmt.Errorf("vendor rejected request: %d: %s", status, body))
		}

		if response == nil {
			return nil
		}
		if err = json.Unmarshal(body, response); err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return errs.NewVendorUnavailableError(g.config.ID, err)
	}
	return nil
}

func (g *Gateway) do(ctx context.Context, method, path, token string, request any) (int, []byte, error) {
	var payload io.Reader
	if request != nil {
		raw, err := json.Marshal(request)
		if err != nil {
			return 0, nil, backoff.Permanent(err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.config.BaseURL+path, payload)
	if err != nil {
		return 0, nil, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

// session returns a live session, logging in if the cached one is missing or
// inside the expiry skew window. Concurrent refreshes collapse into one
// login request.
func (g *Gateway) session(ctx context.Context) (vendor.Session, error) {
	if session, ok := g.sessionCache.live(time.Now()); ok {
		return session, nil
	}
	return g.login(ctx)
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

func (g *Gateway) login(ctx context.Context) (vendor.Session, error) {
	result, err, _ := g.sessionGroup.Do("login", func() (any, error) {
		raw, marshalErr := json.Marshal(map[string]string{
			"email":    g.config.Email,
			"password": g.config.Password,
		})
		if marshalErr != nil {
			return nil, marshalErr
		}

		req, reqErr := http.NewRequestWithContext(
			ctx, http.MethodPost, g.config.BaseURL+"/api/v1/auth/login", bytes.NewReader(raw))
		if reqErr != nil {
			return nil, reqErr
		}
		req.Header.Set("Content-Type", "application/json")

		resp, doErr := g.httpClient.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return nil, fmt.Errorf("login failed: %d: %s", resp.StatusCode, body)
		}

		var login loginResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&login); decodeErr != nil {
			return nil, decodeErr
		}

		now := time.Now().UTC()
		session := vendor.Session{
			Token:      login.Token,
			AcquiredAt: now,
			ExpiresAt:  now.Add(time.Duration(login.ExpiresIn) * time.Second),
		}
		g.sessionCache.store(session)
		g.logger.Info("session refreshed", "expiresAt", session.ExpiresAt)
		return session, nil
	})
	if err != nil {
		return vendor.Session{}, errs.NewVendorUnavailableError(g.config.ID, err)
	}
	return result.(vendor.Session), nil
}
