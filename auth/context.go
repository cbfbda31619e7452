package auth

import "github.com/gin-gonic/gin"

// UserIDKey is the gin context key the token middleware stores the caller under.
const UserIDKey = "user_id"

// UserID returns the authenticated caller, false when the request carried no valid token.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
