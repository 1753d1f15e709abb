package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS-заголовки одинаковы для всех ответов API
var CORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type",
	"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
}

// CORSMiddleware добавляет заголовки к каждому ответу; OPTIONS отвечает 204 без тела
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		for k, v := range CORSHeaders {
			c.Header(k, v)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
