// Package pincoderepo loads the pincode serviceability directory used to
// build the in-memory zone classifier at startup.
package pincoderepo

import (
	"context"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/services"

	"gorm.io/gorm"
)

// PincodeDTO represents one row of the pincode directory.
type PincodeDTO struct {
	Pincode   string `gorm:"type:varchar(6);primaryKey"`
	City      string `gorm:"type:varchar(128);not null"`
	State     string `gorm:"type:varchar(128);not null"`
	Metro     bool   `gorm:"not null"`
	NorthEast bool   `gorm:"not null"`
}

// TableName specifies the database table name for pincode directory rows.
func (PincodeDTO) TableName() string {
	return "pincodes"
}

// GormPincodeRepository implements PincodeRepository using GORM.
type GormPincodeRepository struct {
	db *gorm.DB
}

// NewGormPincodeRepository creates a new GORM pincode repository.
func NewGormPincodeRepository(db *gorm.DB) *GormPincodeRepository {
	return &GormPincodeRepository{db: db}
}

// GetAll loads the full directory. Rows with malformed pincodes are skipped
// rather than failing the whole load.
func (r *GormPincodeRepository) GetAll(ctx context.Context) ([]services.PincodeRecord, error) {
	var dtos []PincodeDTO
	if err := r.db.WithContext(ctx).Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]services.PincodeRecord, 0, len(dtos))
	for _, dto := range dtos {
		pincode, err := kernel.NewPincode(dto.Pincode)
		if err != nil {
			continue
		}
		records = append(records, services.PincodeRecord{
			Pincode:   pincode,
			City:      dto.City,
			State:     dto.State,
			Metro:     dto.Metro,
			NorthEast: dto.NorthEast,
		})
	}
	return records, nil
}
