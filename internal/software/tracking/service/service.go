package service

import (
	"time"

	"trip-track/internal/general/logger"
	"trip-track/internal/ports"
	"trip-track/internal/routing"
)

// trackingService implements the passenger boundary: one Snapshot call is one
// full poll tick over the live tracking pipeline.
type trackingService struct {
	logger      *logger.Logger
	uow         ports.UnitOfWork
	tripRepo    ports.TripRepository
	requestRepo ports.RequestRepository
	dispatch    ports.DispatchService
	manifests   ports.ManifestService
	locations   ports.LocationStore
	router      routing.Client

	now func() time.Time
}

// NewTrackingService creates a new TrackingService with the provided dependencies.
func NewTrackingService(
	logger *logger.Logger,
	uow ports.UnitOfWork,
	tripRepo ports.TripRepository,
	requestRepo ports.RequestRepository,
	dispatch ports.DispatchService,
	manifests ports.ManifestService,
	locations ports.LocationStore,
	router routing.Client,
) ports.TrackingService {
	return &trackingService{
		logger:      logger,
		uow:         uow,
		tripRepo:    tripRepo,
		requestRepo: requestRepo,
		dispatch:    dispatch,
		manifests:   manifests,
		locations:   locations,
		router:      router,
		now:         time.Now,
	}
}
