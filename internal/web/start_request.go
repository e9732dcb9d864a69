package web

import (
	"time"

	"github.com/gin-gonic/gin"
)

// CurrentTimeFunc Current time. Can be mocked for testing.
var CurrentTimeFunc = time.Now

// StartRequest stamps the request start time that TraceLog reads back when
// the chain unwinds.
func StartRequest(c *gin.Context) {
	c.Set("requestStartTime", CurrentTimeFunc())
}
