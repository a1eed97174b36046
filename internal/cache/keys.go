package cache

import (
	"fmt"
	"time"
)

// RateLimitWindow is the fixed window the Redis limiter counts requests in.
const RateLimitWindow = time.Minute

// RateLimitKey generates the Redis key for a client's current window.
func RateLimitKey(clientIP string, window int64) string {
	return fmt.Sprintf("ratelimit:v1:%s:%d", clientIP, window)
}
