package adminapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const contextKeyAdminID = "admin_id"

type sessionClaims struct {
	jwt.RegisteredClaims
}

func (server *Server) issueSession(adminID string, now time.Time) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID,
			Issuer:    server.cfg.SessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(server.cfg.SessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(server.cfg.SessionSigningKey))
}

func (server *Server) parseSession(raw string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(server.cfg.SessionSigningKey), nil
	}, jwt.WithIssuer(server.cfg.SessionIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid session token")
	}
	return claims.Subject, nil
}

// sessionMiddleware authenticates the admin cookie and re-checks the
// allowlist, so removing an id locks out live sessions too.
func (server *Server) sessionMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cookie, err := ctx.Cookie(server.cfg.SessionCookieName)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse("unauthorized", "missing session"))
			return
		}
		adminID, err := server.parseSession(cookie)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse("unauthorized", "invalid session"))
			return
		}
		if !server.cfg.IsAdmin(adminID) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, errorResponse("forbidden", "not an admin"))
			return
		}
		ctx.Set(contextKeyAdminID, adminID)
		ctx.Next()
	}
}

func adminIDFrom(ctx *gin.Context) string {
	value, _ := ctx.Get(contextKeyAdminID)
	adminID, _ := value.(string)
	return adminID
}
