// Package metrics defines and registers all custom Prometheus metrics for the
// bizdesk API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default registry at import time via promauto; the
// router only has to expose the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bizdesk"

// QuotationsCreatedTotal counts newly created quotations.
var QuotationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotations_created_total",
		Help:      "Total number of quotations created.",
	},
)

// InvoicesPaidTotal counts invoices that reached the Paid state.
var InvoicesPaidTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoices_paid_total",
		Help:      "Total number of invoices transitioned to Paid.",
	},
)

// PaymentsCreatedTotal counts derived payment records written alongside a
// Paid transition.
var PaymentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_created_total",
		Help:      "Total number of payment records synthesised from paid invoices.",
	},
)

// EmailsSentTotal counts outbound mail attempts.
// Label:
//   - status: "ok" or "error"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of outbound emails, labelled by delivery outcome.",
	},
	[]string{"status"},
)

// CallbacksRejectedTotal counts capability-link callbacks that were refused.
// Label:
//   - reason: "token_mismatch", "already_used", "bad_request" or "not_found"
var CallbacksRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "callbacks_rejected_total",
		Help:      "Total number of rejected capability-link callbacks, by reason.",
	},
	[]string{"reason"},
)

// RenderDuration measures how long a full PDF render takes, template fill
// plus Gotenberg conversion.
// Label:
//   - document: "quotation" or "invoice"
var RenderDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "render_duration_seconds",
		Help:      "Duration of PDF rendering end-to-end.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"document"},
)
