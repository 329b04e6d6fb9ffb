package middleware

import (
	"time"

	"dfx-site/services"

	"github.com/gin-gonic/gin"
)

/**
 * HTTP请求统计中间件
 * @description
 * - 统计HTTP服务器收到的请求数量
 * - 记录请求处理时间
 * - 状态码 >= 400 计为错误请求
 * - 为健康检查接口提供请求数据
 */
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := c.Writer.Status()

		// 使用路由模板作为标签
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}

		services.IncrementRequestCount(route)
		services.RecordRequestDuration(route, duration)
		if statusCode >= 400 {
			services.IncrementErrorCount(route)
		}
	}
}

// GetTotalRequests 获取总请求数
func GetTotalRequests() int64 {
	return services.GetTotalRequestCount()
}

// GetErrorRequests 获取错误请求数
func GetErrorRequests() int64 {
	return services.GetTotalErrorCount()
}
