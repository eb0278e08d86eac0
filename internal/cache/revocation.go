package cache

import (
	"context"
	"time"
)

const blacklistKeyPrefix = "blacklist:"

// RevokeToken blacklists a token's jti until the token would have expired
// anyway. A missing Redis client makes this a no-op: logout still clears the
// cookie, it just cannot invalidate stolen copies.
func RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return client.Set(ctx, blacklistKeyPrefix+jti, "1", ttl).Err()
}

// IsTokenRevoked reports whether the given jti has been blacklisted.
// Errors and a missing client are treated as "not revoked" so an unavailable
// Redis does not lock every user out.
func IsTokenRevoked(ctx context.Context, jti string) bool {
	if client == nil || jti == "" {
		return false
	}
	exists, err := client.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false
	}
	return exists > 0
}
