// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics defines the Prometheus collectors exposed on /metrics.
//
// Collectors register with the default registry through promauto. Request
// metrics are labelled by route pattern, not raw path, to bound cardinality.
package metrics
