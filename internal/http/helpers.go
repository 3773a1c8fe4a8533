package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/virtualcode/readingvault/internal/services"
)

// parseIDParam reads a positive integer path parameter. On failure it
// writes a 400 response and returns false; callers should just return.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}

// serviceError maps service-layer failures onto HTTP responses: NotFound
// sentinels become 404, rule violations become 400, anything else 500.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookNotFound), errors.Is(err, services.ErrLendingNotFound):
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrBookAlreadyReading),
		errors.Is(err, services.ErrBookAlreadyRead),
		errors.Is(err, services.ErrBookNotBeingRead),
		errors.Is(err, services.ErrPageBehindCurrent),
		errors.Is(err, services.ErrPageBeyondTotal),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrBookAlreadyLent),
		errors.Is(err, services.ErrBookNotLendable),
		errors.Is(err, services.ErrAlreadyReturned):
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
