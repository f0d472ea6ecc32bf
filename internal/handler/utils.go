package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/pagination"
)

func parseIntQuery(c *gin.Context, key string, def int) int {
	if s := strings.TrimSpace(c.Query(key)); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

func parsePagination(c *gin.Context) pagination.Params {
	return pagination.ParseParams(c.Query("page"), c.Query("limit"))
}
