package api

import (
	"fmt"
	"strconv"

	"ledgerapi/models"

	"github.com/gin-gonic/gin"
)

// queryDate parses an optional YYYY-MM-DD query parameter
func queryDate(c *gin.Context, key string) (*models.Date, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &d, nil
}

// queryInt parses an optional integer query parameter, returning def when absent
func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}
