package api

import "github.com/gin-gonic/gin"

func playerIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get("playerID")
	if !ok || v == nil {
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
