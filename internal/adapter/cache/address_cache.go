package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/aq2208/gorder-workflow/internal/logging"
	"github.com/aq2208/gorder-workflow/internal/usecase"
	"github.com/redis/go-redis/v9"
)

// AddressCache remembers addresses the remote checker accepted. Rejections
// and remote failures always go to the checker.
type AddressCache struct {
	rdb  *redis.Client
	next usecase.AddressChecker
	ttl  time.Duration
}

func NewAddressCache(rdb *redis.Client, next usecase.AddressChecker, ttl time.Duration) *AddressCache {
	return &AddressCache{rdb: rdb, next: next, ttl: ttl}
}

func addressKey(a usecase.UnvalidatedAddress) string {
	h := sha256.New()
	for _, part := range []string{
		a.AddressLine1, a.AddressLine2, a.AddressLine3, a.AddressLine4,
		a.City, a.ZipCode, a.State, a.Country,
	} {
		h.Write([]byte(strings.ToLower(strings.TrimSpace(part))))
		h.Write([]byte{0})
	}
	return "addr:checked:" + hex.EncodeToString(h.Sum(nil))
}

func (c *AddressCache) CheckAddressExists(ctx context.Context, addr usecase.UnvalidatedAddress) (usecase.CheckedAddress, error) {
	key := addressKey(addr)
	l := logging.FromCtx(ctx)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var checked usecase.CheckedAddress
		if err := json.Unmarshal(raw, &checked); err == nil {
			return checked, nil
		}
		l.WarnContext(ctx, "address cache entry unreadable", "key", key)
	case !errors.Is(err, redis.Nil):
		l.WarnContext(ctx, "address cache get failed", "error", err)
	}

	checked, err := c.next.CheckAddressExists(ctx, addr)
	if err != nil {
		return usecase.CheckedAddress{}, err
	}

	if raw, err := json.Marshal(checked); err == nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			l.WarnContext(ctx, "address cache set failed", "error", err)
		}
	}
	return checked, nil
}

var _ usecase.AddressChecker = (*AddressCache)(nil)
