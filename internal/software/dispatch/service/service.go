package service

import (
	"trip-track/internal/general/logger"
	"trip-track/internal/ports"
)

// dispatchService implements the operator boundary: the assignment registry
// and the request state transitions.
type dispatchService struct {
	logger         *logger.Logger
	uow            ports.UnitOfWork
	tripRepo       ports.TripRepository
	driverRepo     ports.DriverRepository
	assignmentRepo ports.AssignmentRepository
	requestRepo    ports.RequestRepository
	locations      ports.LocationStore
	pub            ports.EventPublisher
}

// NewDispatchService creates a new DispatchService with the provided dependencies.
func NewDispatchService(
	logger *logger.Logger,
	uow ports.UnitOfWork,
	tripRepo ports.TripRepository,
	driverRepo ports.DriverRepository,
	assignmentRepo ports.AssignmentRepository,
	requestRepo ports.RequestRepository,
	locations ports.LocationStore,
	pub ports.EventPublisher,
) ports.DispatchService {
	return &dispatchService{
		logger:         logger,
		uow:            uow,
		tripRepo:       tripRepo,
		driverRepo:     driverRepo,
		assignmentRepo: assignmentRepo,
		requestRepo:    requestRepo,
		locations:      locations,
		pub:            pub,
	}
}
