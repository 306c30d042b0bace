package utils

import (
	"fmt"
	"intake-service/internal/pkg/constvars"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return fmt.Sprintf("%s%s", constvars.REQUEST_ID_PREFIX, uuid.NewString())
}

// GenerateResumeToken signs an HS256 resume token for a paused session. The
// jti claim is the store's secondary index key; exp mirrors the session
// record's expiry so a stale token fails verification before any lookup.
func GenerateResumeToken(sessionID, secret string, expiresAt time.Time) (token string, tokenID string, err error) {
	tokenID = uuid.NewString()
	claims := jwt.MapClaims{
		"jti":        tokenID,
		"session_id": sessionID,
		"exp":        expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return signed, tokenID, nil
}

// ParseResumeToken verifies the signature and expiry of a resume token and
// returns its token id and session id claims.
func ParseResumeToken(token, secret string) (tokenID string, sessionID string, err error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", "", fmt.Errorf("invalid resume token claims")
	}
	tokenID, _ = claims["jti"].(string)
	sessionID, _ = claims["session_id"].(string)
	if tokenID == "" || sessionID == "" {
		return "", "", fmt.Errorf("resume token missing required claims")
	}
	return tokenID, sessionID, nil
}
