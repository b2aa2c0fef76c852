package economy

import "context"

// PendingEvents returns undelivered outbox events, oldest first.
func (service *Service) PendingEvents(ctx context.Context, limit int) ([]OutboxEvent, error) {
	return service.store.ListUndeliveredEvents(ctx, limit)
}

// MarkEventDelivered records a successful notification delivery.
func (service *Service) MarkEventDelivered(ctx context.Context, eventID string) error {
	return service.store.MarkEventDelivered(ctx, eventID, service.nowFn())
}
