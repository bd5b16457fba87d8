package realtime

import "menucraft/internal/usecase"

// OrderPublisherはusecase.OrderEventPublisherのHub実装
type OrderPublisher struct {
	hub *Hub
}

func NewOrderPublisher(hub *Hub) *OrderPublisher {
	return &OrderPublisher{hub: hub}
}

func (p *OrderPublisher) PublishOrderNew(restaurantID int64, order usecase.OrderOutput) {
	p.hub.Publish(restaurantID, EventOrderNew, order)
}

func (p *OrderPublisher) PublishOrderUpdated(restaurantID int64, order usecase.OrderOutput) {
	p.hub.Publish(restaurantID, EventOrderUpdated, order)
}
