// Package metrics defines all custom Prometheus metrics for the identity
// service. It is the single source of truth for metric names, labels, and
// help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// LoginsTotal counts Authenticate calls.
// Label:
//   - result: "success", "denied" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of authentication attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts tokens minted by the token service.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued.",
	},
)

// TokenValidationsTotal counts ValidateToken calls.
// Label:
//   - result: "valid", "revoked", "expired", "malformed" or "error"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of token validations, by result.",
	},
	[]string{"result"},
)

// TokensRevokedTotal counts InvalidateToken calls that recorded an entry.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of tokens added to the revocation list.",
	},
)

// UsersCreatedTotal counts successful CreateUser calls. The role label is
// safe for cardinality because roles are a closed three-value set.
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created, by role.",
	},
	[]string{"role"},
)

// RevocationListSize tracks the entry count of the in-memory revocation list.
// Only maintained when the memory backend is active; the Redis backend
// self-expires entries server-side.
var RevocationListSize = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "revocation_list_size",
		Help:      "Current number of entries in the in-memory revocation list.",
	},
)
