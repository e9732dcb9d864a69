package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TapLogger(c *gin.Context) {
	sessionId := c.Params.ByName("sessionId")
	logger := c.MustGet("logger").(*zerolog.Logger)

	requestLogger := logger.
		With().
		Str("sessionId", sessionId).
		Str("operationId", uuid.New().String()).
		Logger()

	c.Set("logger", &requestLogger)
}
