package queries

import (
	"context"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists a seller's orders straight from the database.
// Bypasses the aggregate so a large listing never hydrates stage histories.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listings.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing. Results are newest first.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			reference_id,
			is_reverse,
			bucket,
			payment_mode,
			collectable,
			booking_vendor_id,
			booking_awb,
			created_at
		FROM orders
		WHERE seller_id = ?
	`
	args := []any{query.SellerID().Bytes()}

	if buckets := query.Buckets(); len(buckets) > 0 {
		codes := make([]int, 0, len(buckets))
		for _, b := range buckets {
			codes = append(codes, int(b))
		}
		sql += " AND bucket IN ?"
		args = append(args, codes)
	}
	sql += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)

	for rows.Next() {
		var resp GetOrdersQueryResponse
		var id uuid.UUID
		var bucket, paymentMode int

		err = rows.Scan(
			&id,
			&resp.ReferenceID,
			&resp.IsReverse,
			&bucket,
			&paymentMode,
			&resp.Collectable,
			&resp.VendorID,
			&resp.AWB,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Bucket = order.Bucket(bucket).String()
		resp.PaymentMode = order.PaymentMode(paymentMode).String()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
