// Package observability holds the application's metrics vectors and tracer bootstrap.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FeedPageCacheHits counts cached global-feed page serves by outcome.
	FeedPageCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_feed_page_cache_total",
		Help: "Global feed page cache lookups by outcome",
	}, []string{"outcome"})

	// PostsCreated counts successfully created posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_posts_created_total",
		Help: "Total number of posts created",
	})

	// CommentsCreated counts successfully created comments.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_comments_created_total",
		Help: "Total number of comments created",
	})

	// FollowEdgesChanged counts follow/unfollow mutations by direction.
	FollowEdgesChanged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_follow_edges_changed_total",
		Help: "Follow edge mutations by direction",
	}, []string{"direction"})
)
