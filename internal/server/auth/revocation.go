package auth

import (
	"context"
	"sync"
	"time"
)

// RevocationRegistry tracks revoked token ids (jti). Revoke is idempotent.
// Entries only need to survive until the token's own expiry.
type RevocationRegistry interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// InMemoryRegistry keeps revocations in process memory. State is lost on
// restart, which silently re-validates tokens revoked before the restart;
// run the Redis-backed registry when that matters.
type InMemoryRegistry struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{revoked: make(map[string]time.Time)}
}

// Revoke marks jti as revoked until expiresAt. Expired entries are pruned on
// the way in, keeping the map bounded by the number of live revocations.
func (r *InMemoryRegistry) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for id, exp := range r.revoked {
		if now.After(exp) {
			delete(r.revoked, id)
		}
	}
	r.revoked[jti] = expiresAt
	return nil
}

// IsRevoked reports whether jti is currently revoked. An entry whose token
// already expired no longer counts: the expiry check rejects such tokens
// before revocation is ever consulted.
func (r *InMemoryRegistry) IsRevoked(ctx context.Context, jti string) (bool, error) {
	r.mu.RLock()
	exp, ok := r.revoked[jti]
	r.mu.RUnlock()

	if !ok {
		return false, nil
	}
	return !time.Now().After(exp), nil
}
