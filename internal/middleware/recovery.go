package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/library-api/internal/response"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}

				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Err(err).
					Bytes("stack", debug.Stack()).
					Msg("Panic recovered")

				response.Error(c, http.StatusInternalServerError, "Internal server error")
			}
		}()

		c.Next()
	}
}
