package response

import (
	"github.com/gin-gonic/gin"
)

// Send writes the flat JSON body used by every non-collection endpoint:
// a message plus optional extra fields (userId, id, profileId, ...).
func Send(c *gin.Context, code int, message string, extra map[string]any) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(code, body)
}
