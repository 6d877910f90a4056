package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	EntryKeyPrefix = "entry:%s"
	UserKeyPrefix  = "user:%d"
)

const (
	EntryTTL = 10 * time.Minute
	UserTTL  = 5 * time.Minute
)

// EntryKey builds the cache key for a dictionary term. Keys are case-exact,
// matching the canonical store's term lookup.
func EntryKey(term string) string {
	return fmt.Sprintf(EntryKeyPrefix, term)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateEntry(ctx context.Context, term string) {
	Invalidate(ctx, EntryKey(term))
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
