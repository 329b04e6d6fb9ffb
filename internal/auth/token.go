package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminSubject is the subject of tokens accepted by the admin API.
const AdminSubject = "dfx-site-admin"

// DefaultTokenTTL bounds the lifetime of tokens signed by the CLI.
const DefaultTokenTTL = time.Minute

var (
	ErrNoSecret     = errors.New("admin secret not configured")
	ErrMissingToken = errors.New("missing bearer token")
)

/**
 * Sign a short-lived admin token
 * @param {string} secret - Shared HS256 secret (server.admin_secret)
 * @param {time.Duration} ttl - Token lifetime
 * @returns {string} Compact JWT
 * @returns {error} ErrNoSecret when secret is empty
 */
func SignAdminToken(secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   AdminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

/**
 * Verify an admin token
 * @param {string} secret - Shared HS256 secret
 * @param {string} token - Compact JWT
 * @returns {error} nil only for an unexpired HS256 token with the admin subject
 */
func VerifyAdminToken(secret, token string) error {
	if secret == "" {
		return ErrNoSecret
	}
	if token == "" {
		return ErrMissingToken
	}
	_, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(*jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(AdminSubject),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return fmt.Errorf("invalid admin token: %w", err)
	}
	return nil
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

type connNetworkKey struct{}

// WithConnNetwork records the listener network of a connection; used as http.Server.ConnContext.
func WithConnNetwork(ctx context.Context, c net.Conn) context.Context {
	return context.WithValue(ctx, connNetworkKey{}, c.LocalAddr().Network())
}

// FromLocalSocket reports whether the request arrived on a Unix socket listener.
func FromLocalSocket(ctx context.Context) bool {
	network, _ := ctx.Value(connNetworkKey{}).(string)
	return network == "unix"
}
