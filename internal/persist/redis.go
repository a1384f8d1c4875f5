package persist

import (
	"context"
	"errors"

	pkgerrors "github.com/angelmondragon/storefront-state/pkg/errors"
	"github.com/angelmondragon/storefront-state/pkg/redis"
)

// Redis persists snapshots in a shared Redis instance under namespaced keys.
// Entries carry no TTL; the slot holds the last written snapshot until the
// next write-through overwrites it (last writer wins).
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) (*Redis, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "redis client is required")
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Load(ctx context.Context, slot string) (string, bool, error) {
	payload, err := r.client.Get(ctx, r.client.SnapshotKey(slot))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "load snapshot")
	}
	return payload, true, nil
}

func (r *Redis) Save(ctx context.Context, slot, payload string) error {
	if err := r.client.Set(ctx, r.client.SnapshotKey(slot), payload, 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, "save snapshot")
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
