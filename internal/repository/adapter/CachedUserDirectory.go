package adapter

import (
	"context"
	"encoding/json"
	"time"

	cacheport "github.com/HarichndR/Faithconnect/internal/infrastructure/cache/port"
	port "github.com/HarichndR/Faithconnect/internal/repository/port"
)

const (
	summaryTTL = 5 * time.Minute
	tokensTTL  = time.Minute
)

// CachedUserDirectory decorates a UserDirectory with a read-through cache for
// the lookups the dispatcher performs on every notification: display
// summaries and device tokens. Follower lists are not cached; fan-out reads
// them once per publish and staleness there would skip new followers.
type CachedUserDirectory struct {
	next  port.UserDirectory
	cache cacheport.Cache
}

func NewCachedUserDirectory(next port.UserDirectory, cache cacheport.Cache) *CachedUserDirectory {
	return &CachedUserDirectory{next: next, cache: cache}
}

var _ port.UserDirectory = (*CachedUserDirectory)(nil)

func (d *CachedUserDirectory) FindSummary(ctx context.Context, userID string) (*port.UserSummary, error) {
	key := "dir:summary:" + userID
	if raw, err := d.cache.Get(ctx, key); err == nil {
		var s port.UserSummary
		if json.Unmarshal([]byte(raw), &s) == nil {
			return &s, nil
		}
	}
	// Cache misses and cache trouble both fall through to the store.

	s, err := d.next.FindSummary(ctx, userID)
	if err != nil || s == nil {
		return s, err
	}
	if raw, err := json.Marshal(s); err == nil {
		_ = d.cache.Set(ctx, key, string(raw), summaryTTL)
	}
	return s, nil
}

func (d *CachedUserDirectory) DeviceTokens(ctx context.Context, userID string) ([]string, error) {
	key := "dir:tokens:" + userID
	if raw, err := d.cache.Get(ctx, key); err == nil {
		var tokens []string
		if json.Unmarshal([]byte(raw), &tokens) == nil {
			return tokens, nil
		}
	}

	tokens, err := d.next.DeviceTokens(ctx, userID)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(tokens); err == nil {
		_ = d.cache.Set(ctx, key, string(raw), tokensTTL)
	}
	return tokens, nil
}

func (d *CachedUserDirectory) FollowerIDs(ctx context.Context, leaderID string) ([]string, error) {
	return d.next.FollowerIDs(ctx, leaderID)
}
