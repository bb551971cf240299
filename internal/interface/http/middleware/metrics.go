package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/biblioteca/pkg/metrics"
)

// Metrics HTTP请求指标
// path使用路由模板（/api/libros/:id），未匹配路由统一记为unmatched，避免标签爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.IncGauge(metrics.HTTPRequestsInProgress)
		start := time.Now()

		c.Next()

		metrics.DecGauge(metrics.HTTPRequestsInProgress)

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		metrics.IncCounterVec(metrics.HTTPRequestsTotal, method, path, strconv.Itoa(c.Writer.Status()))
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, time.Since(start).Seconds(), method, path)
	}
}
