package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/library-api/internal/apperror"
	"github.com/snnyvrz/library-api/internal/middleware"
	"github.com/snnyvrz/library-api/internal/response"
)

func writeError(c *gin.Context, status int, message string) {
	response.Error(c, status, message)
}

// writeStoreError maps a store error to its status code. Anything that is not
// a known kind is logged and answered with fallback, never with err itself.
func writeStoreError(c *gin.Context, err error, fallback string) {
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	case apperror.KindValidation:
		writeError(c, http.StatusBadRequest, err.Error())
	case apperror.KindConflict:
		writeError(c, http.StatusConflict, err.Error())
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg(fallback)

		writeError(c, http.StatusInternalServerError, fallback)
	}
}
