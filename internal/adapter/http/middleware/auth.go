package middleware

import (
	"log"
	"net/http"
	"os"
	"strings"

	"corretora_xpto/internal/domain/entities"
	"corretora_xpto/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const identityContextKey = "identity"

var errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid credentials", http.StatusUnauthorized)

type identityClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RequireIdentity validates the bearer token issued by the external auth
// layer and stores the caller's identity (user id + role) in the gin
// context. The engine only trusts tokens signed with JWT_SECRET (HS256).
func RequireIdentity() gin.HandlerFunc {
	secret := []byte(os.Getenv("JWT_SECRET"))

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		var claims identityClaims
		token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			log.Printf("[auth][middleware] token rejected err=%v", err)
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		identity := entities.Identity{
			UserID: claims.Subject,
			Role:   entities.Role(claims.Role),
		}
		if identity.UserID == "" || !identity.Role.IsValid() {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the authenticated caller placed in the context by
// RequireIdentity.
func IdentityFrom(c *gin.Context) (entities.Identity, bool) {
	v, ok := c.Get(identityContextKey)
	if !ok {
		return entities.Identity{}, false
	}
	identity, ok := v.(entities.Identity)
	return identity, ok
}

// SetIdentity injects an identity directly; test helper for handler tests
// that bypass token parsing.
func SetIdentity(c *gin.Context, identity entities.Identity) {
	c.Set(identityContextKey, identity)
}
