package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hjkwon-dev/miniblog/policy"
	"github.com/hjkwon-dev/miniblog/utils"
)

// ContextActorKey is the key under which the resolved actor is stored
// in the Gin context. Handlers read it once via ActorFrom and pass the
// value down; nothing below the middleware touches the token again.
const ContextActorKey = "actor"

// AuthRequired ensures the request is authenticated via JWT and
// resolves the caller into a policy.Actor.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
			ctx.Abort()
			return
		}

		if utils.IsTokenBlacklisted(tokenString) {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "token revoked")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextActorKey, policy.Actor{
			ID:       claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		ctx.Next()
	}
}

// ActorFrom extracts the actor resolved by AuthRequired. The second
// return is false when the route was not behind the middleware.
func ActorFrom(ctx *gin.Context) (policy.Actor, bool) {
	value, exists := ctx.Get(ContextActorKey)
	if !exists {
		return policy.Actor{}, false
	}
	actor, ok := value.(policy.Actor)
	return actor, ok
}
