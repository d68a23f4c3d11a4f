package ports

// EventPublisher publishes operator events to the message broker.
// Satisfied by rabbitmq.MQPublisher; test doubles record the calls.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}
