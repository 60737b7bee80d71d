package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewRateLimitMiddleware creates a per-IP rate limiting middleware backed by an in-memory store.
// Requests over the limit receive 429 with a JSON error body.
func NewRateLimitMiddleware(limit int64, period time.Duration) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: period,
		Limit:  limit,
	}

	store := memory.NewStore()
	instance := limiter.New(store, rate)

	return mgin.NewMiddleware(instance, mgin.WithLimitReachedHandler(limitReached))
}

func limitReached(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":   "rate_limited",
		"message": "Too many requests, slow down",
	})
}
