package auth

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	//before
	fmt.Println("\nSTART UNIT TEST 'auth'")

	m.Run()

	//after
	fmt.Println("END UNIT TEST 'auth'")
}

func Test_SessionTokenRoundtrip(t *testing.T) {
	asserts := assert.New(t)

	token, err := CreateSessionToken("b2cbd6a2-8c2f-4d3c-9d5d-2f8a46f1f3ab", "alice@example.com")
	asserts.Nil(err)
	asserts.NotEmpty(token)

	claims, err := ValidateToken(token)
	asserts.Nil(err)
	asserts.Equal("b2cbd6a2-8c2f-4d3c-9d5d-2f8a46f1f3ab", claims.GetUID())
	asserts.Equal("alice@example.com", claims.GetEmail())
	asserts.Equal(CmdLogin, claims.GetCmd())
	asserts.False(claims.IsExpired())
}

func Test_CodeTokenCarriesCode(t *testing.T) {
	asserts := assert.New(t)

	token, err := CreateCodeToken("b2cbd6a2-8c2f-4d3c-9d5d-2f8a46f1f3ab", "alice@example.com", "123456")
	asserts.Nil(err)

	claims, err := ValidateToken(token)
	asserts.Nil(err)
	asserts.Equal(CmdCode, claims.GetCmd())
	asserts.Equal("123456", claims.GetCode())
}

func Test_ValidateGarbage(t *testing.T) {
	asserts := assert.New(t)

	claims, err := ValidateToken("not.a.token")
	asserts.Nil(claims)
	asserts.NotNil(err)
}

func Test_ExpiredToken(t *testing.T) {
	asserts := assert.New(t)

	token, err := CreateJWTWithExpire("uid", "a@b.co", CmdLogin, "", ExpireTime(-10))
	asserts.Nil(err)

	// jwt parse refuses expired tokens outright
	claims, err := ValidateToken(token)
	asserts.Nil(claims)
	asserts.NotNil(err)
}
