package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Pagination bounds for list endpoints.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// ParsePagination reads the offset and limit query parameters. Offset defaults to 0 and must
// not be negative; limit defaults to DefaultLimit and must be within 1..MaxLimit.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 || limit > MaxLimit {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", MaxLimit)
	}

	return offset, limit, nil
}

// ParseIDParam reads a UUID path parameter.
func ParseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s parameter: must be a valid UUID", name)
	}
	return id, nil
}
