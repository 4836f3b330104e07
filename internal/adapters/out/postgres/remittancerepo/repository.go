// Package remittancerepo persists COD payout cycles.
package remittancerepo

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/remittance"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RemittanceDTO represents the database structure for persisting remittances.
type RemittanceDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SellerID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_remittances_cycle,unique"`
	CycleDate time.Time       `gorm:"type:date;not null;index:idx_remittances_cycle,unique"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`

	Orders []RemittanceOrderDTO `gorm:"foreignKey:RemittanceID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for remittances.
func (RemittanceDTO) TableName() string {
	return "remittances"
}

// RemittanceOrderDTO links a remittance to one of the orders it covers.
type RemittanceOrderDTO struct {
	RemittanceID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName specifies the database table name for remittance order links.
func (RemittanceOrderDTO) TableName() string {
	return "remittance_orders"
}

func fromDomain(aggregate *remittance.Remittance) RemittanceDTO {
	id := aggregate.ID().Bytes()
	orderIDs := aggregate.OrderIDs()
	orders := make([]RemittanceOrderDTO, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		orders = append(orders, RemittanceOrderDTO{
			RemittanceID: id,
			OrderID:      orderID.Bytes(),
		})
	}

	return RemittanceDTO{
		ID:        id,
		SellerID:  aggregate.SellerID().Bytes(),
		CycleDate: aggregate.CycleDate(),
		Amount:    aggregate.Amount(),
		CreatedAt: aggregate.CreatedAt(),
		Orders:    orders,
	}
}

func toDomain(dto RemittanceDTO) (*remittance.Remittance, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	orderIDs := make([]kernel.UUID, 0, len(dto.Orders))
	for _, o := range dto.Orders {
		orderID, convErr := kernel.UUIDFromBytes(o.OrderID[:])
		if convErr != nil {
			return nil, convErr
		}
		orderIDs = append(orderIDs, orderID)
	}

	return remittance.RestoreRemittance(id, sellerID, dto.CycleDate, dto.Amount, orderIDs, dto.CreatedAt)
}

// GormRemittanceRepository implements RemittanceRepository using GORM.
type GormRemittanceRepository struct {
	db *gorm.DB
}

// NewGormRemittanceRepository creates a new GORM remittance repository.
func NewGormRemittanceRepository(db *gorm.DB) *GormRemittanceRepository {
	return &GormRemittanceRepository{db: db}
}

// Add persists a new remittance with its order links.
func (r *GormRemittanceRepository) Add(ctx context.Context, aggregate *remittance.Remittance) error {
	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ExistsForCycle reports whether a remittance exists for the seller and date.
func (r *GormRemittanceRepository) ExistsForCycle(
	ctx context.Context,
	sellerID kernel.UUID,
	cycleDate time.Time,
) (bool, error) {
	if err := sellerID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&RemittanceDTO{}).
		Where("seller_id = ? AND cycle_date = ?", sellerID.Bytes(), cycleDate.UTC().Truncate(24*time.Hour)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetBySeller lists a seller's remittances, newest cycle first.
func (r *GormRemittanceRepository) GetBySeller(
	ctx context.Context,
	sellerID kernel.UUID,
) ([]*remittance.Remittance, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RemittanceDTO
	err := r.db.WithContext(ctx).
		Preload("Orders").
		Where("seller_id = ?", sellerID.Bytes()).
		Order("cycle_date DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	remittances := make([]*remittance.Remittance, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		remittances = append(remittances, aggregate)
	}
	return remittances, nil
}
