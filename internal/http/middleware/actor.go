package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActorIDHeader carries the caller's user id, set by the fronting platform
// after authentication. This service trusts it; it only checks shape here and
// authorizes per intervention in the handlers.
const ActorIDHeader = "X-Actor-Id"

const actorKey = "actor_id"

func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(ActorIDHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing " + ActorIDHeader + " header",
				},
			})
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid " + ActorIDHeader + " header",
				},
			})
			return
		}
		c.Set(actorKey, id)
		c.Next()
	}
}

// ActorID returns the caller id set by Actor.
func ActorID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return uuid.UUID{}, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
