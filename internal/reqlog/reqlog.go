// Package reqlog gives every request an id and a logger tagged with it.
package reqlog

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/qiniu/x/xlog"
)

const (
	Header = "X-Reqid"
	key    = "xlog"
)

// SetUp reuses the caller's request id or assigns one, echoes it in the
// response and stores a request logger in the context.
func SetUp(c *gin.Context) {
	requestID := c.GetHeader(Header)
	if requestID == "" {
		requestID = uuid.NewString()
		c.Request.Header.Set(Header, requestID)
	}
	c.Header(Header, requestID)

	xl := xlog.New(requestID)
	xl.Debugf("request: %s %s", c.Request.Method, c.Request.URL.Path)
	c.Set(key, xl)
	c.Next()
}

// FromContext returns the request logger, or a fresh one when SetUp did not
// run.
func FromContext(c *gin.Context) *xlog.Logger {
	if val, ok := c.Get(key); ok {
		if xl, ok := val.(*xlog.Logger); ok {
			return xl
		}
	}
	return xlog.New(uuid.NewString())
}
