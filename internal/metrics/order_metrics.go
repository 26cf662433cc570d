package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики жизненного цикла заказов.
type OrderMetrics struct {
	// Счётчики операций
	ordersCreated    prometheus.Counter
	ordersCanceled   prometheus.Counter
	itemsCanceled    prometheus.Counter
	checkoutRejected prometheus.Counter

	// Почтовые уведомления
	mailSent     prometheus.Counter
	mailFailed   prometheus.Counter
	mailDuration prometheus.Histogram
}

// NewOrderMetrics создаёт метрики в default registry.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersCanceled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_orders_canceled_total",
			Help: "Total number of orders canceled",
		}),
		itemsCanceled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_order_items_canceled_total",
			Help: "Total number of single order items canceled",
		}),
		checkoutRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_checkout_rejected_total",
			Help: "Total number of checkout submissions rejected by validation",
		}),
		mailSent: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_mail_sent_total",
			Help: "Total number of notification mails sent",
		}),
		mailFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_mail_failed_total",
			Help: "Total number of notification mail transport failures",
		}),
		mailDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shop_mail_send_duration_seconds",
			Help:    "Duration of notification mail sending in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// RecordOrderCreated увеличивает счётчик оформленных заказов.
func (m *OrderMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordOrderCanceled увеличивает счётчик отменённых заказов.
func (m *OrderMetrics) RecordOrderCanceled() {
	m.ordersCanceled.Inc()
}

// RecordItemCanceled увеличивает счётчик отменённых позиций.
func (m *OrderMetrics) RecordItemCanceled() {
	m.itemsCanceled.Inc()
}

// RecordCheckoutRejected увеличивает счётчик отклонённых форм.
func (m *OrderMetrics) RecordCheckoutRejected() {
	m.checkoutRejected.Inc()
}

// RecordMailSend фиксирует результат и длительность отправки письма.
func (m *OrderMetrics) RecordMailSend(duration time.Duration, err error) {
	m.mailDuration.Observe(duration.Seconds())
	if err != nil {
		m.mailFailed.Inc()
		return
	}
	m.mailSent.Inc()
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}
