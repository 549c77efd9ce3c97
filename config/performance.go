package config

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

const slowRequestThreshold = 200 * time.Millisecond

// PerformanceLogger logs every request with its latency. Paths listed in
// quiet are only logged when they fail or run slow.
func PerformanceLogger(quiet ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(quiet))
	for _, p := range quiet {
		skip[p] = true
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		slow := latency > slowRequestThreshold

		if !skip[path] || status >= 500 || slow {
			log.Printf("[PERF] %s %s | Status: %d | Time: %v | IP: %s",
				c.Request.Method, path, status, latency, c.ClientIP())
		}
		if slow {
			log.Printf("[PERF] slow request: %s %s took %v", c.Request.Method, path, latency)
		}
		if len(c.Errors) > 0 {
			log.Printf("[PERF] %s %s errors: %s", c.Request.Method, path, c.Errors.String())
		}
	}
}
