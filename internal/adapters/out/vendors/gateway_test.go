package vendors_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"courierhub/internal/adapters/out/vendors"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/model/vendor"
	"courierhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVendorAPI struct {
	mux        *http.ServeMux
	logins     atomic.Int64
	shipments  atomic.Int64
	failLogins bool
	rejectWith int
	loginDelay time.Duration
}

func newFakeVendorAPI() *fakeVendorAPI {
	api := &fakeVendorAPI{mux: http.NewServeMux()}

	api.mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		api.logins.Add(1)
		if api.loginDelay > 0 {
			time.Sleep(api.loginDelay)
		}
		if api.failLogins {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token":      "tok-1",
			"expires_in": 3600,
		})
	})

	api.mux.HandleFunc("POST /api/v1/shipments", func(w http.ResponseWriter, r *http.Request) {
		api.shipments.Add(1)
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if api.rejectWith != 0 {
			w.WriteHeader(api.rejectWith)
			return
		}
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"order_id":    "SW-100",
			"shipment_id": "SH-200",
			"awb":         "AWB123",
		})
	})

	return api
}

func mustPincode(t *testing.T, value string) kernel.Pincode {
	t.Helper()
	p, err := kernel.NewPincode(value)
	require.NoError(t, err)
	return p
}

func sampleOrder(t *testing.T) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"REF-1001",
		false,
		order.PackageDetails{
			WeightKg: decimal.NewFromFloat(2.4),
			LengthCm: decimal.NewFromInt(30),
			WidthCm:  decimal.NewFromInt(20),
			HeightCm: decimal.NewFromInt(10),
			BoxCount: 1,
		},
		order.PaymentCOD,
		decimal.NewFromInt(500),
		order.CustomerDetails{
			Name:    "Asha Rao",
			Phone:   "9876543210",
			Address: "14 MG Road",
			Pincode: mustPincode(t, "560001"),
		},
		order.SellerDetails{Name: "Acme Retail", Pincode: mustPincode(t, "110001")},
		order.ProductLine{Name: "Wireless Mouse", Quantity: 1, TaxableValue: decimal.NewFromInt(500)},
		order.PickupHub{
			ID:      kernel.NewUUID(),
			Name:    "Delhi Hub",
			Phone:   "9812345678",
			Address: "7 Industrial Estate",
			Pincode: mustPincode(t, "110001"),
		},
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return aggregate
}

func newGateway(baseURL string) *vendors.Gateway {
	return vendors.NewGateway(vendors.Config{
		ID:       "swiftship",
		Name:     "SwiftShip",
		BaseURL:  baseURL,
		Email:    "api@example.com",
		Password: "secret",
		Capabilities: []vendor.Capability{
			vendor.Authenticate,
			vendor.CreateShipment,
			vendor.CancelShipment,
		},
	}, slog.New(slog.DiscardHandler))
}

func TestGateway_CreateShipment(t *testing.T) {
	api := newFakeVendorAPI()
	server := httptest.NewServer(api.mux)
	defer server.Close()

	g := newGateway(server.URL)
	booking, err := g.CreateShipment(t.Context(), sampleOrder(t))
	require.NoError(t, err)

	assert.Equal(t, "swiftship", booking.VendorID)
	assert.Equal(t, "SW-100", booking.VendorOrderID)
	assert.Equal(t, "SH-200", booking.VendorShipmentID)
	assert.Equal(t, "AWB123", booking.AWB)
	assert.False(t, booking.BookedAt.IsZero())
}

func TestGateway_SessionIsCachedAcrossCalls(t *testing.T) {
	api := newFakeVendorAPI()
	server := httptest.NewServer(api.mux)
	defer server.Close()

	g := newGateway(server.URL)
	ctx := t.Context()

	_, err := g.CreateShipment(ctx, sampleOrder(t))
	require.NoError(t, err)
	_, err = g.CreateShipment(ctx, sampleOrder(t))
	require.NoError(t, err)

	assert.Equal(t, int64(1), api.logins.Load())
	assert.Equal(t, int64(2), api.shipments.Load())
}

func TestGateway_RefreshSessionForcesLogin(t *testing.T) {
	api := newFakeVendorAPI()
	server := httptest.NewServer(api.mux)
	defer server.Close()

	g := newGateway(server.URL)
	ctx := t.Context()

	require.NoError(t, g.RefreshSession(ctx))
	require.NoError(t, g.RefreshSession(ctx))
	assert.Equal(t, int64(2), api.logins.Load())
}

func TestGateway_ConcurrentRefreshSharesOneLogin(t *testing.T) {
	api := newFakeVendorAPI()
	api.loginDelay = 150 * time.Millisecond
	server := httptest.NewServer(api.mux)
	defer server.Close()

	g := newGateway(server.URL)
	ctx := t.Context()

	const callers = 20
	start := make(chan struct{})
	refreshErrs := make([]error, callers)

	var wg sync.WaitGroup
	for i := range refreshErrs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			refreshErrs[i] = g.RefreshSession(ctx)
		}()
	}
	close(start)
	wg.Wait()

	for _, err := range refreshErrs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), api.logins.Load())
}

func TestGateway_ConfiguredTimeoutIsHonored(t *testing.T) {
	api := newFakeVendorAPI()
	api.loginDelay = 500 * time.Millisecond
	server := httptest.NewServer(api.mux)
	defer server.Close()

	g := vendors.NewGateway(vendors.Config{
		ID:       "swiftship",
		Name:     "SwiftShip",
		BaseURL:  server.URL,
		Email:    "api@example.com",
		Password: "secret",
		Timeout:  50 * time.Millisecond,
	}, slog.New(slog.DiscardHandler))

	err := g.RefreshSession(t.Context())
	require.ErrorIs(t, err, errs.ErrVendorUnavailable)
}

func TestGateway_LoginFailure(t *testing.T) {
	api := newFakeVendorAPI()
	api.failLogins = true
	server := httptest.NewServer(api.mux)
	defer server.Close()

	g := newGateway(server.URL)
	_, err := g.CreateShipment(t.Context(), sampleOrder(t))
	require.ErrorIs(t, err, errs.ErrVendorUnavailable)
}

func TestGateway_ClientErrorIsNotRetried(t *testing.T) {
	api := newFakeVendorAPI()
	api.rejectWith = http.StatusBadRequest
	server := httptest.NewServer(api.mux)
	defer server.Close()

	g := newGateway(server.URL)
	_, err := g.CreateShipment(t.Context(), sampleOrder(t))
	require.ErrorIs(t, err, errs.ErrVendorUnavailable)
	assert.Equal(t, int64(1), api.shipments.Load())
}

func TestGateway_Supports(t *testing.T) {
	g := newGateway("http://localhost")
	assert.True(t, g.Supports(vendor.CreateShipment))
	assert.False(t, g.Supports(vendor.CreateReturnShipment))
}

func TestPool(t *testing.T) {
	first := newGateway("http://one")
	pool := vendors.NewPool(first)

	got, err := pool.Get("swiftship")
	require.NoError(t, err)
	assert.Same(t, first, got.(*vendors.Gateway))

	_, err = pool.Get("unknown")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	all := pool.All()
	require.Len(t, all, 1)
}
