package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

var hmacSecret = "c2V0LW1lLWZyb20tY29uZmln"

// SetSigningKey overrides the built-in development secret, called once
// from main with the configured value.
func SetSigningKey(secret string) {
	if secret != "" {
		hmacSecret = secret
	}
}

type ExpireTime int

const (
	AWeek  ExpireTime = 604800
	ADay   ExpireTime = 86400
	AnHour ExpireTime = 3600
)

const (
	CmdLogin = "Login"
	CmdCode  = "Code"
)

type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Cmd   string `json:"cmd"`
	Code  string `json:"code"`
	jwt.StandardClaims
}

func (c *Claims) GetUID() string {
	return c.ID
}

func (c *Claims) GetEmail() string {
	return c.Email
}

func (c *Claims) GetCmd() string {
	return c.Cmd
}

func (c *Claims) GetCode() string {
	return c.Code
}

func (c *Claims) IsExpired() bool {
	return time.Now().Unix() > c.ExpiresAt
}

// CreateSessionToken generates the long lived JWT handed out after a
// login code is confirmed.
func CreateSessionToken(id, email string) (string, error) {
	return CreateJWTWithExpire(id, email, CmdLogin, "", AWeek)
}

// CreateCodeToken binds a pending login code to the e-mail it was sent
// to; confirming requires presenting both.
func CreateCodeToken(id, email, code string) (string, error) {
	return CreateJWTWithExpire(id, email, CmdCode, code, AnHour)
}

func CreateJWTWithExpire(id string, email string, cmd string, code string, expired ExpireTime) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    id,
		"email": email,
		"cmd":   cmd,
		"code":  code,
		"exp":   time.Now().Unix() + int64(expired),
	})
	tokenString, err := token.SignedString([]byte(hmacSecret))

	return tokenString, err
}

func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Don't forget to validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(hmacSecret), nil
	})

	if token != nil {
		if claims, ok := token.Claims.(*Claims); ok && token.Valid {
			return claims, nil
		}
	}
	return nil, err
}
