package contracts

// Exchanges
const (
	ExchangeTripOpsTopic = "trip_ops_topic"
)

// Queues
const (
	QueueOpsAudit     = "trip_ops_audit"
	QueueOpsDashboard = "trip_ops_dashboard"
)

// Routing patterns
const (
	RouteAssignmentPrefix = "trip.assignment." // {trip_id}
	RouteStatusPrefix     = "trip.status."     // {trip_id}
	RouteTrackingPrefix   = "trip.tracking."   // {trip_id}
)
