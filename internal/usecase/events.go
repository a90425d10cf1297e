package usecase

import "time"

const (
	OrderEventCreated   = "order.created"
	OrderEventCancelled = "order.cancelled"
	OrderEventReordered = "order.reordered"
	OrderEventDeleted   = "order.deleted"
)

// OrderEvent is emitted after an order mutation has committed.
type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     int64     `json:"order_id"`
	UserID      int64     `json:"user_id"`
	Status      string    `json:"status,omitempty"`
	TotalAmount int64     `json:"total_amount"`
	At          time.Time `json:"at"`
}

type OrderEventPublisher interface {
	PublishOrderEvent(ev OrderEvent)
}

// OrderEventPublishers fans one event out to every publisher.
type OrderEventPublishers []OrderEventPublisher

func (ps OrderEventPublishers) PublishOrderEvent(ev OrderEvent) {
	for _, p := range ps {
		if p != nil {
			p.PublishOrderEvent(ev)
		}
	}
}

type nopPublisher struct{}

func (nopPublisher) PublishOrderEvent(OrderEvent) {}

func orEmptyPublisher(p OrderEventPublisher) OrderEventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
