package service

import (
	"trip-track/internal/general/logger"
	"trip-track/internal/ports"
)

// driverLocationService implements the driver boundary: location publishing
// and the driver's own trip list.
type driverLocationService struct {
	logger         *logger.Logger
	uow            ports.UnitOfWork
	driverRepo     ports.DriverRepository
	tripRepo       ports.TripRepository
	assignmentRepo ports.AssignmentRepository
	requestRepo    ports.RequestRepository
	store          ports.LocationStore
}

// NewDriverLocationService creates a new DriverLocationService with the provided dependencies.
func NewDriverLocationService(
	logger *logger.Logger,
	uow ports.UnitOfWork,
	driverRepo ports.DriverRepository,
	tripRepo ports.TripRepository,
	assignmentRepo ports.AssignmentRepository,
	requestRepo ports.RequestRepository,
	store ports.LocationStore,
) ports.DriverLocationService {
	return &driverLocationService{
		logger:         logger,
		uow:            uow,
		driverRepo:     driverRepo,
		tripRepo:       tripRepo,
		assignmentRepo: assignmentRepo,
		requestRepo:    requestRepo,
		store:          store,
	}
}
