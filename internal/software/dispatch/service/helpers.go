package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"trip-track/internal/general/contracts"
	"trip-track/internal/general/metrics"
)

// generateCorrelationID creates a simple correlation ID for tracing requests.
func generateCorrelationID() string {
	var b [3]byte // 6 hex chars
	_, _ = rand.Read(b[:])
	ts := time.Now().UTC().Format("20060102T150405")
	return "req_" + ts + "_" + hex.EncodeToString(b[:])
}

// publishOpsEvent sends an operator event to the trip topic exchange.
// Best effort: failures are logged and counted, never returned to the caller,
// the database state is already committed at this point.
func (service *dispatchService) publishOpsEvent(ctx context.Context, routingKey string, msg any) {
	body, err := json.Marshal(msg)
	if err == nil {
		err = service.pub.Publish(contracts.ExchangeTripOpsTopic, routingKey, body)
	}
	if err != nil {
		metrics.OpsEventsPublishErrs.Inc()
		service.logger.Error(ctx, "ops_event_publish_failed", "Failed to publish operator event to RabbitMQ", err, map[string]any{
			"routing_key": routingKey,
		})
		return
	}

	service.logger.Debug(ctx, "ops_event_published", "Published operator event to RabbitMQ", map[string]any{
		"routing_key": routingKey,
	})
}

func envelope(correlationID string) contracts.Envelope {
	return contracts.Envelope{
		CorrelationID: correlationID,
		Producer:      "booking-service",
		SentAt:        time.Now().UTC(),
	}
}
