package orderrepo

import (
	"context"
	"errors"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. The write is guarded by the
// version the aggregate was loaded with: a concurrent save in between bumps
// the stored version and this save returns VersionIsInvalidError instead of
// overwriting it.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	stages := dto.Stages
	dto.Stages = nil
	nextVersion := dto.Version + 1
	dto.Version = nextVersion

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, nextVersion-1).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidError("order", nil)
	}

	// The history is append-only; entries already stored are left untouched.
	if len(stages) > 0 {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&stages).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its full stage history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByAWB retrieves the order booked with a vendor under the given air
// waybill.
func (r *GormOrderRepository) GetByAWB(ctx context.Context, vendorID, awb string) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		First(&dto, "booking_vendor_id = ? AND booking_awb = ?", vendorID, awb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("awb", awb)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetBySellerAndBuckets lists a seller's orders in the given buckets, newest
// first.
func (r *GormOrderRepository) GetBySellerAndBuckets(
	ctx context.Context,
	sellerID kernel.UUID,
	buckets []order.Bucket,
) ([]*order.Order, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Where("seller_id = ?", sellerID.Bytes()).
		Order("created_at DESC")
	if len(buckets) > 0 {
		codes := make([]int, 0, len(buckets))
		for _, b := range buckets {
			codes = append(codes, int(b))
		}
		query = query.Where("bucket IN ?", codes)
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetDeliveredCODOn lists COD orders whose delivery stage falls on the given
// day.
func (r *GormOrderRepository) GetDeliveredCODOn(ctx context.Context, day time.Time) ([]*order.Order, error) {
	from := day.UTC().Truncate(24 * time.Hour)
	to := from.Add(24 * time.Hour)

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Where("bucket = ? AND payment_mode = ?", int(order.Delivered), int(order.PaymentCOD)).
		Where("id IN (?)", r.db.Model(&StageDTO{}).
			Select("order_id").
			Where("bucket = ? AND at >= ? AND at < ?", int(order.Delivered), from, to)).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// ExistsByChannelRef reports whether an order imported from the channel with
// that channel order id already exists.
func (r *GormOrderRepository) ExistsByChannelRef(
	ctx context.Context,
	channelName, channelOrderID string,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("channel_name = ? AND channel_order_id = ?", channelName, channelOrderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
