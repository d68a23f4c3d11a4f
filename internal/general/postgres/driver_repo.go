package postgres

import (
	"context"
	"encoding/json"

	"trip-track/internal/domain/driver"
	"trip-track/internal/ports"
)

// DriverRepo reads driver records using pgx and plain SQL.
type DriverRepo struct{}

// NewDriverRepo constructs a new DriverRepo.
func NewDriverRepo() ports.DriverRepository {
	return &DriverRepo{}
}

// GetByID returns one driver by id.
func (repo *DriverRepo) GetByID(ctx context.Context, driverID string) (*driver.Driver, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var out driver.Driver
	var vehicleAttrs []byte

	err = tx.QueryRow(ctx, `
		SELECT id, created_at, updated_at, name, phone, vehicle_attrs, is_active
		FROM drivers
		WHERE id = $1
	`, driverID).Scan(
		&out.ID, &out.CreatedAt, &out.UpdatedAt,
		&out.Name, &out.Phone, &vehicleAttrs, &out.IsActive,
	)
	if err != nil {
		return nil, err
	}

	// decode JSONB vehicle_attrs (nullable)
	if len(vehicleAttrs) > 0 {
		if err := json.Unmarshal(vehicleAttrs, &out.VehicleAttrs); err != nil {
			return nil, err
		}
	}

	return &out, nil
}
