package driver

import (
	"errors"
	"maps"
	"strings"
	"time"
)

// Attrs is a JSON-friendly bag for vehicle attributes (plate, make, model, capacity, etc.).
type Attrs map[string]any

// Driver is the domain entity corresponding to the `drivers` table.
type Driver struct {
	// Identity & audit
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Required business fields
	Name  string
	Phone string

	// Vehicle details (JSON)
	VehicleAttrs Attrs

	// Operational state
	IsActive bool
}

var (
	ErrDriverNameRequired = errors.New("driver name is required")
	ErrDriverInactive     = errors.New("driver is not active")
)

// NewDriver creates a new Driver entity with sane defaults.
func NewDriver(name, phone string, attrs Attrs) (*Driver, error) {
	if name = strings.TrimSpace(name); name == "" {
		return nil, ErrDriverNameRequired
	}

	now := time.Now().UTC()
	return &Driver{
		CreatedAt:    now,
		UpdatedAt:    now,
		Name:         name,
		Phone:        strings.TrimSpace(phone),
		VehicleAttrs: cloneAttrs(attrs),
		IsActive:     true,
	}, nil
}

// Deactivate marks the driver inactive. Idempotent.
func (driver *Driver) Deactivate() {
	if !driver.IsActive {
		return
	}
	driver.IsActive = false
	driver.touch()
}

// ---- internal helpers ----

func (driver *Driver) touch() {
	driver.UpdatedAt = time.Now().UTC()
}

func cloneAttrs(in Attrs) Attrs {
	if in == nil {
		return nil
	}
	out := make(Attrs, len(in))
	maps.Copy(out, in)
	return out
}
