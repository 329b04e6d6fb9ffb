package auth

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	token, err := SignAdminToken("s3cret", time.Minute)
	require.NoError(t, err)
	assert.NoError(t, VerifyAdminToken("s3cret", token))
	assert.Error(t, VerifyAdminToken("other", token))
}

func TestVerifyRejects(t *testing.T) {
	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	future := jwt.NewNumericDate(time.Now().Add(time.Minute))
	past := jwt.NewNumericDate(time.Now().Add(-time.Minute))
	secret := []byte("s3cret")

	tests := map[string]string{
		"expired":       sign(jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{Subject: AdminSubject, ExpiresAt: past}),
		"no expiry":     sign(jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{Subject: AdminSubject}),
		"other subject": sign(jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{Subject: "visitor", ExpiresAt: future}),
		"HS512":         sign(jwt.SigningMethodHS512, secret, jwt.RegisteredClaims{Subject: AdminSubject, ExpiresAt: future}),
		"none":          sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.RegisteredClaims{Subject: AdminSubject, ExpiresAt: future}),
		"garbage":       "not.a.token",
	}
	for name, token := range tests {
		assert.Error(t, VerifyAdminToken("s3cret", token), name)
	}
}

func TestVerifyWithoutSecretOrToken(t *testing.T) {
	token, err := SignAdminToken("s3cret", time.Minute)
	require.NoError(t, err)
	assert.ErrorIs(t, VerifyAdminToken("", token), ErrNoSecret)
	assert.ErrorIs(t, VerifyAdminToken("s3cret", ""), ErrMissingToken)

	_, err = SignAdminToken("", time.Minute)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer  abc "))
	assert.Empty(t, BearerToken("Basic abc"))
	assert.Empty(t, BearerToken("abc"))
	assert.Empty(t, BearerToken(""))
}

type fakeConn struct {
	net.Conn
	addr net.Addr
}

func (c fakeConn) LocalAddr() net.Addr { return c.addr }

func TestConnNetwork(t *testing.T) {
	assert.False(t, FromLocalSocket(context.Background()))

	tcp := fakeConn{addr: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080}}
	assert.False(t, FromLocalSocket(WithConnNetwork(context.Background(), tcp)))

	unix := fakeConn{addr: &net.UnixAddr{Name: "/run/dfx.sock", Net: "unix"}}
	assert.True(t, FromLocalSocket(WithConnNetwork(context.Background(), unix)))
}
