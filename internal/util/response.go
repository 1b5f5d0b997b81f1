package util

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error 统一错误返回：JSON 里只有一个 message 字段
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"message": msg})
}

// ServerError logs the underlying failure for operators and answers the
// caller with a generic message only. Storage details never cross the
// boundary.
func ServerError(c *gin.Context, op string, err error) {
	slog.Error(op, "err", err, "path", c.Request.URL.Path, "method", c.Request.Method)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
}
