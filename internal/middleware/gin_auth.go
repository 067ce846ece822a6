package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinAuthenticate adapts the net/http AuthMiddleware to Gin. The
// middleware only enriches the request context, so unlike a rejecting
// middleware there is no abort path to bridge.
func GinAuthenticate(auth *AuthMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		auth.Authenticate(next).ServeHTTP(c.Writer, c.Request)
	}
}

// GinRequirePrincipal rejects requests that carry no authenticated
// principal. Place after GinAuthenticate on protected routes.
func GinRequirePrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := PrincipalFromContext(c.Request.Context()); !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
