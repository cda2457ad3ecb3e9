package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MessagesProcessed counts messages drained from each actor mailbox.
var MessagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "portfolio",
	Subsystem: "actor",
	Name:      "messages_processed_total",
	Help:      "Messages processed by each actor dispatch loop.",
}, []string{"actor"})

// RequestErrors counts handler results that carried a domain error.
var RequestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "portfolio",
	Subsystem: "api",
	Name:      "request_errors_total",
	Help:      "API responses by error kind.",
}, []string{"kind"})

// ObserveMailbox exposes the live depth of an actor mailbox as a gauge.
// Reading len() of a channel is safe from any goroutine.
func ObserveMailbox[M any](name string, mailbox chan M) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   "portfolio",
		Subsystem:   "actor",
		Name:        "mailbox_depth",
		Help:        "Pending messages in the actor mailbox.",
		ConstLabels: prometheus.Labels{"actor": name},
	}, func() float64 {
		return float64(len(mailbox))
	})
}
