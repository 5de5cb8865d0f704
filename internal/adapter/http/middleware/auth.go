package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"repairdesk/internal/usecase"
	"repairdesk/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const contextKeyIdentity = "identity"

var errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing or invalid bearer token", http.StatusUnauthorized)

// Claims is the token issued by the identity provider. Roles are never read
// from it.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuth validates the HS256 bearer token and stores the caller's identity
// on the gin context.
func JWTAuth(secret []byte) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		var claims Claims
		_, err := parser.ParseWithClaims(strings.TrimSpace(parts[1]), &claims, func(t *jwt.Token) (any, error) {
			return secret, nil
		})
		if err != nil || strings.TrimSpace(claims.Subject) == "" {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		c.Set(contextKeyIdentity, usecase.Identity{
			ID:    claims.Subject,
			Email: claims.Email,
			Name:  claims.Name,
		})
		c.Next()
	}
}

// IdentityFrom returns the identity set by JWTAuth.
func IdentityFrom(c *gin.Context) (usecase.Identity, bool) {
	id, ok := c.Get(contextKeyIdentity)
	if !ok {
		return usecase.Identity{}, false
	}
	who, ok := id.(usecase.Identity)
	return who, ok && who.ID != ""
}

// SetIdentity is used by tests and by routes mounted without JWTAuth.
func SetIdentity(who usecase.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKeyIdentity, who)
		c.Next()
	}
}

// SignToken issues a token JWTAuth accepts. It exists for local tooling and
// tests; production tokens come from the identity provider.
func SignToken(secret []byte, claims Claims) (string, error) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tok, nil
}
