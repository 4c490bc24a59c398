package middleware

import (
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"bulkgen/internal/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns panics into 500s. Client disconnects are aborted quietly
// since there is nobody left to answer.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if isBrokenPipe(recovered) {
			c.Abort()
			return
		}

		log.Error("Panic on %s %s: %v\n%s",
			c.Request.Method, c.Request.URL.Path, recovered, debug.Stack())
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

func isBrokenPipe(recovered interface{}) bool {
	ne, ok := recovered.(*net.OpError)
	if !ok {
		return false
	}
	se, ok := ne.Err.(*os.SyscallError)
	if !ok {
		return false
	}
	msg := strings.ToLower(se.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
