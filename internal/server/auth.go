package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	v1 "github.com/mikesterific/parallel-instances/api/v1"
	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
)

const (
	tokenIssuer   = "parallel-instances"
	subjectCtxKey = "subject"
)

// NewToken signs an HS256 token for subject, valid for ttl.
func NewToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    tokenIssuer,
		Subject:   subject,
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a bearer token and returns its subject.
func ParseToken(secret, raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", srvErrors.NewUnauthorizedError(err.Error())
	}
	return claims.Subject, nil
}

// Authenticator rejects requests without a valid bearer token.
func Authenticator(secret string) gin.HandlerFunc {
	log := zap.S().Named("auth")
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, v1.ErrorResponse{Error: "missing bearer token"})
			return
		}

		subject, err := ParseToken(secret, raw)
		if err != nil {
			log.Debugw("rejected token", "error", err, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, v1.ErrorResponse{Error: "invalid token"})
			return
		}

		c.Set(subjectCtxKey, subject)
		c.Next()
	}
}
