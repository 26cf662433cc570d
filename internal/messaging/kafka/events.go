package kafka

// Topics для Kafka
const (
	// TopicOrderEvents — события жизненного цикла заказа (created/canceled).
	TopicOrderEvents = "shop.order.events"
)
