package request

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// IntParam parses a numeric path parameter.
func IntParam(c *gin.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, c.Param(name))
	}
	return v, nil
}

// IntQuery parses a numeric query parameter, falling back to def when
// the parameter is absent. A present but non-numeric value is a caller
// error, not something to silently default.
func IntQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}
