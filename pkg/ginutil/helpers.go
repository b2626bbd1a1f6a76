package ginutil

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// QueryInt extracts an integer from query parameters with a default value
func QueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// QueryUint extracts an unsigned integer from query parameters.
// Returns 0 when the parameter is absent or malformed.
func QueryUint(c *gin.Context, key string) uint {
	valueStr := c.Query(key)
	if valueStr == "" {
		return 0
	}

	value, err := strconv.ParseUint(valueStr, 10, 32)
	if err != nil {
		return 0
	}

	return uint(value)
}

// ParamUint extracts an unsigned integer from path parameters
func ParamUint(c *gin.Context, key string) (uint, error) {
	valueStr := c.Param(key)
	value, err := strconv.ParseUint(valueStr, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}
