package responding

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HandleError logs through the request logger, writes the error envelope
// every surface of this service uses and aborts the handler chain.
func HandleError(c *gin.Context, code int, message string, err error) {
	if registered, ok := c.Get("logger"); ok {
		logger := registered.(*zerolog.Logger)

		event := logger.Error().Int("code", code)
		if err != nil {
			event = event.Err(err)
		}
		event.Msg(message)
	}

	c.AbortWithStatusJSON(code, gin.H{
		"error": gin.H{
			"message": message,
		},
	})
}
