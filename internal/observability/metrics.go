package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogify_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ModerationDecisions counts admin approve/reject decisions.
	ModerationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogify_moderation_decisions_total",
		Help: "Total number of blog moderation decisions by outcome",
	}, []string{"decision"})

	// BlogViews counts blog detail reads (each read increments the stored
	// view count by one).
	BlogViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blogify_blog_views_total",
		Help: "Total number of blog detail page reads",
	})

	// UploadRejections counts upload intake validation failures by reason.
	UploadRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogify_upload_rejections_total",
		Help: "Total number of rejected file uploads by reason",
	}, []string{"reason"})
)
