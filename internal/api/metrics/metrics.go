// Package metrics defines and registers all custom Prometheus metrics for the
// blog API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init through promauto, and served by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts accounts created successfully.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "unknown_email", "bad_password", "invalid_input" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostsWrittenTotal counts successful post mutations.
// Label:
//   - op: "create", "update" or "delete"
var PostsWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_written_total",
		Help:      "Total number of post mutations, by operation.",
	},
	[]string{"op"},
)

// ── Image metrics ─────────────────────────────────────────────────────────────

// ImagesUploadedTotal counts draft images stored.
var ImagesUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_uploaded_total",
		Help:      "Total number of images stored as drafts.",
	},
)

// ImagesPublishedTotal counts publish attempts.
// Label:
//   - result: "published", "replayed", "cleanup_deferred" or "error"
var ImagesPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_published_total",
		Help:      "Total number of image publish attempts, by result.",
	},
	[]string{"result"},
)

// ImageEncodeDuration measures the WebP re-encode of a single upload.
var ImageEncodeDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "image_encode_duration_seconds",
		Help:      "Duration of decoding an upload and re-encoding it to WebP.",
		Buckets:   prometheus.DefBuckets,
	},
)

// DraftCleanupTotal counts background draft deletions.
// Label:
//   - result: "removed", "retry", "failed" or "dropped"
var DraftCleanupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "draft_cleanup_total",
		Help:      "Total number of queued draft deletions, by outcome.",
	},
	[]string{"result"},
)

// DraftCleanupQueueDepth tracks pending cleanup jobs in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var DraftCleanupQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "draft_cleanup_queue_depth",
		Help:      "Current number of draft cleanup jobs pending in each worker channel.",
	},
	[]string{"worker_id"},
)
