package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/YuvrajS01/Anon-Feedback-System/pkg/response"
)

// MustGetString extracts a string value the auth middleware injected into
// the context. On failure it writes a 401 and returns ok=false; callers
// should return immediately.
func MustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}
