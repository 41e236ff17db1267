package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/infrastructure/cache"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
	"github.com/oksasatya/estate-listing-api/pkg/response"
)

// Gin context keys set by Auth.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxEmail  = "email"
)

// bearer reads the access token from the Authorization header, falling back
// to the access_token cookie set for browser clients.
func bearer(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, tok, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
		return ""
	}
	tok, _ := c.Cookie(helpers.AccessCookie)
	return tok
}

// Auth validates the access token and requires the live session to carry the
// same session id, so logout and refresh rotation invalidate older tokens.
func Auth(sessions cache.SessionStore, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, string(errs.CodeInvalidToken), "missing access token")
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, string(errs.CodeInvalidToken), "invalid access token")
			return
		}
		sess, ok, err := sessions.Get(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Abort(c, http.StatusInternalServerError, string(errs.CodeInternal), "session lookup failed")
			return
		}
		if !ok || sess.SessionID != claims.SessionID {
			response.Abort(c, http.StatusUnauthorized, string(errs.CodeInvalidToken), "session expired")
			return
		}
		c.Set(CtxUserID, sess.UserID)
		c.Set(CtxRole, sess.Role)
		c.Set(CtxEmail, sess.Email)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and lets
// anonymous requests through otherwise.
func OptionalAuth(sessions cache.SessionStore, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			c.Next()
			return
		}
		if sess, ok, err := sessions.Get(c.Request.Context(), claims.UserID); err == nil && ok && sess.SessionID == claims.SessionID {
			c.Set(CtxUserID, sess.UserID)
			c.Set(CtxRole, sess.Role)
			c.Set(CtxEmail, sess.Email)
		}
		c.Next()
	}
}

// RequireRole must run after Auth.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := entity.Role(c.GetString(CtxRole))
		if !slices.Contains(roles, role) {
			response.Abort(c, http.StatusForbidden, string(errs.CodeForbidden), "insufficient role")
			return
		}
		c.Next()
	}
}
