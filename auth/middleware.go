package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware validates the JWT from the "jwt" cookie or the
// Authorization header and stores the claims in the gin context as
// "validuser". Routes that need a session read it back with
// ctx.Get("validuser"); requests without a token simply pass through
// with nothing set, the method handlers answer unauthorized.
func SessionMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := ""

		if cookie, err := ctx.Request.Cookie("jwt"); err == nil {
			tokenString = cookie.Value
		}

		if tokenString == "" {
			header := ctx.GetHeader("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				tokenString = strings.TrimPrefix(header, "Bearer ")
			}
		}

		if tokenString != "" {
			claims, err := ValidateToken(tokenString)
			if err == nil && claims.GetCmd() == CmdLogin {
				ctx.Set("validuser", claims)
			}
		}

		ctx.Next()
	}
}

// SetSessionCookie mirrors the token into an http-only cookie when the
// client asks for credentialed responses.
func SetSessionCookie(ctx *gin.Context, token string) {
	a := ctx.GetHeader("Access-Control-Allow-Credentials")
	c := ctx.GetHeader("credentials")
	if a == "true" || c == "true" {
		http.SetCookie(ctx.Writer, &http.Cookie{
			Name:     "jwt",
			Value:    token,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(AWeek),
			Path:     "/",
		})
	}
}
