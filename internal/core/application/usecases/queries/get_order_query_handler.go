package queries

import (
	"context"
	"database/sql"
	"errors"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order with its stage history.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns an ObjectNotFoundError when no order
// has the requested id.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	var id, sellerID uuid.UUID
	var bucket, paymentMode int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			seller_id,
			reference_id,
			is_reverse,
			bucket,
			payment_mode,
			collectable,
			weight_kg,
			customer_name,
			customer_pincode,
			customer_city,
			hub_pincode,
			booking_vendor_id,
			booking_awb,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&sellerID,
		&resp.ReferenceID,
		&resp.IsReverse,
		&bucket,
		&paymentMode,
		&resp.Collectable,
		&resp.WeightKg,
		&resp.CustomerName,
		&resp.CustomerPincode,
		&resp.CustomerCity,
		&resp.HubPincode,
		&resp.VendorID,
		&resp.AWB,
		&resp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, idErr := kernel.UUIDFromBytes(id[:])
	if idErr != nil {
		return GetOrderQueryResponse{}, idErr
	}
	resp.ID = orderID

	seller, idErr := kernel.UUIDFromBytes(sellerID[:])
	if idErr != nil {
		return GetOrderQueryResponse{}, idErr
	}
	resp.SellerID = seller
	resp.Bucket = order.Bucket(bucket).String()
	resp.PaymentMode = order.PaymentMode(paymentMode).String()

	stages, err := h.loadStages(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Stages = stages

	return resp, nil
}

func (h GetOrderQueryHandler) loadStages(
	ctx context.Context,
	orderID kernel.UUID,
) ([]GetOrderQueryStage, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			bucket,
			at,
			action
		FROM order_stages
		WHERE order_id = ?
		ORDER BY seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stages := make([]GetOrderQueryStage, 0)

	for rows.Next() {
		var stage GetOrderQueryStage
		var bucket int

		if err = rows.Scan(&bucket, &stage.At, &stage.Action); err != nil {
			return nil, err
		}
		stage.Bucket = order.Bucket(bucket).String()
		stages = append(stages, stage)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stages, nil
}
