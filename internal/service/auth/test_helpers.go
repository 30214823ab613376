package auth

import (
	"time"
)

// NewTestJWTService creates a JWT service with a custom clock for tests.
func NewTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) JWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
	}
}
