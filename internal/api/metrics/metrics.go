// Package metrics defines the custom Prometheus metrics of the auth service.
// They register with the default registry on package init; HTTP-level
// metrics come from the echoprometheus middleware wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// Outcome label values for AuthRequestsTotal.
const (
	OutcomeSuccess      = "success"
	OutcomeConflict     = "conflict"
	OutcomeUnauthorized = "unauthorized"
	OutcomeInvalid      = "invalid"
	OutcomeError        = "error"
)

// AuthRequestsTotal counts requests to the credential endpoints.
// Labels:
//   - endpoint: register, signup, login
//   - outcome: success, conflict, unauthorized, invalid, error
var AuthRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of register, signup and login requests by outcome.",
	},
	[]string{"endpoint", "outcome"},
)

// TokensIssuedTotal counts bearer tokens handed out, by endpoint.
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued.",
	},
	[]string{"endpoint"},
)

var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of tokens revoked through logout.",
	},
)
