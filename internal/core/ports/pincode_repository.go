package ports

import (
	"context"

	"courierhub/internal/core/domain/services"
)

// PincodeRepository loads the serviceability directory the zone classifier
// is built from. The directory is read once at startup.
type PincodeRepository interface {
	GetAll(ctx context.Context) ([]services.PincodeRecord, error)
}
