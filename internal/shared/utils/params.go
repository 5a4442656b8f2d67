package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"streetside/internal/shared/errors"
	"streetside/internal/shared/id"
)

// ParseSIDParam parses and validates a prefixed ID from a URL path parameter.
// paramName is the Gin route parameter name (e.g., "sid").
// prefix is the expected SID prefix (e.g., id.PrefixVendor).
// entityName is used in error messages (e.g., "vendor", "live session").
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := c.Param(paramName)
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	if err := id.ValidatePrefix(sid, prefix); err != nil {
		return "", errors.NewValidationError(
			fmt.Sprintf("invalid %s ID format, expected %s_xxxxx", entityName, prefix),
		)
	}

	return sid, nil
}

// ParseVendorSIDParam parses a vendor SID from the route.
func ParseVendorSIDParam(c *gin.Context, paramName string) (string, error) {
	return ParseSIDParam(c, paramName, id.PrefixVendor, "vendor")
}
