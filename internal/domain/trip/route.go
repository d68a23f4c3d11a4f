package trip

import (
	"errors"
	"strings"
	"time"
)

// Route is the domain entity corresponding to the `routes` table.
// Routes are owned by the operator workflow and read-only to the core.
type Route struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	Name         string
	CompanyName  string // optional carrier contact info
	CompanyPhone string

	// Route-level default stop points, ordered by OrderIndex.
	DefaultStops []StopPoint
}

var ErrRouteNameRequired = errors.New("route name is required")

// NewRoute constructs a Route entity.
func NewRoute(name, companyName, companyPhone string) (*Route, error) {
	if name = strings.TrimSpace(name); name == "" {
		return nil, ErrRouteNameRequired
	}

	now := time.Now().UTC()
	return &Route{
		CreatedAt:    now,
		UpdatedAt:    now,
		Name:         name,
		CompanyName:  strings.TrimSpace(companyName),
		CompanyPhone: strings.TrimSpace(companyPhone),
	}, nil
}
