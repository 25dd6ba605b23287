package globalstore

import (
	"context"
	"errors"

	"github.com/jdonszelmann/dfs/catalog"
	"github.com/redis/go-redis/v9"
)

// RedisStore is an alternative Store backend for hosts that already run a
// Redis instance for other services. Grounded on the teacher's
// cache.Connection (_examples/SharedCode-sop/cache/redis.go), which wraps a
// *redis.Client behind Set/Get/Delete helpers; generalized here with
// WATCH/MULTI so PutRoot's two-key write (roots + root_names) commits
// atomically, matching the transactional contract of spec.md §4.A.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisOptions mirrors the teacher's cache.Options, trimmed to what a
// Store backend needs (no default TTL: catalog entries do not expire).
type RedisOptions struct {
	Address  string
	Password string
	DB       int
	// Prefix namespaces all keys this Store writes, so one Redis instance
	// can host multiple dfs installations.
	Prefix string
}

// DefaultRedisOptions mirrors the teacher's cache.DefaultOptions.
func DefaultRedisOptions() RedisOptions {
	return RedisOptions{
		Address: "localhost:6379",
		DB:      0,
		Prefix:  "dfs",
	}
}

// OpenRedisStore connects to a Redis instance and returns a Store backed by it.
func OpenRedisStore(opts RedisOptions) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return &RedisStore{client: client, prefix: opts.Prefix}
}

func (s *RedisStore) peerKey(id catalog.ID) string     { return s.prefix + ":peer:" + id.String() }
func (s *RedisStore) rootKey(id catalog.ID) string     { return s.prefix + ":root:" + id.String() }
func (s *RedisStore) rootNameKey(name string) string   { return s.prefix + ":root_name:" + name }
func (s *RedisStore) peersSetKey() string              { return s.prefix + ":peers" }
func (s *RedisStore) rootsSetKey() string              { return s.prefix + ":roots" }

func (s *RedisStore) PutPeer(ctx context.Context, id catalog.ID, peer catalog.Peer, overwrite bool) (PutStatus, error) {
	key := s.peerKey(id)
	if !overwrite {
		n, err := s.client.Exists(ctx, key).Result()
		if err != nil {
			return Ok, err
		}
		if n > 0 {
			return Exists, nil
		}
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, catalog.EncodePeer(peer), 0)
	pipe.SAdd(ctx, s.peersSetKey(), id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return Ok, err
	}
	return Ok, nil
}

func (s *RedisStore) GetPeer(ctx context.Context, id catalog.ID) (catalog.Peer, bool, error) {
	data, err := s.client.Get(ctx, s.peerKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return catalog.Peer{}, false, nil
	}
	if err != nil {
		return catalog.Peer{}, false, err
	}
	p, err := catalog.DecodePeer(data)
	return p, err == nil, err
}

func (s *RedisStore) GetAllPeers(ctx context.Context) ([]catalog.Peer, error) {
	ids, err := s.client.SMembers(ctx, s.peersSetKey()).Result()
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Peer, 0, len(ids))
	for _, idStr := range ids {
		id, err := catalog.ParseID(idStr)
		if err != nil {
			return nil, err
		}
		p, found, err := s.GetPeer(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, p)
		}
	}
	return out, nil
}

// PutRoot uses WATCH on both the id and name keys so a concurrent writer
// racing on either key aborts the transaction with redis.TxFailedErr,
// retried by the caller's own retry policy if desired.
func (s *RedisStore) PutRoot(ctx context.Context, id catalog.ID, root catalog.Root, overwrite bool) (PutStatus, error) {
	rootKey := s.rootKey(id)
	nameKey := s.rootNameKey(root.Name)
	status := Ok

	txf := func(tx *redis.Tx) error {
		if !overwrite {
			existsID, err := tx.Exists(ctx, rootKey).Result()
			if err != nil {
				return err
			}
			existsName, err := tx.Exists(ctx, nameKey).Result()
			if err != nil {
				return err
			}
			if existsID > 0 || existsName > 0 {
				status = Exists
				return nil
			}
		}
		encoded, err := catalog.EncodeRoot(root)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, rootKey, encoded, 0)
			pipe.Set(ctx, nameKey, id.String(), 0)
			pipe.SAdd(ctx, s.rootsSetKey(), id.String())
			return nil
		})
		return err
	}

	err := s.client.Watch(ctx, txf, rootKey, nameKey)
	return status, err
}

func (s *RedisStore) GetRoot(ctx context.Context, id catalog.ID) (catalog.Root, bool, error) {
	data, err := s.client.Get(ctx, s.rootKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return catalog.Root{}, false, nil
	}
	if err != nil {
		return catalog.Root{}, false, err
	}
	r, err := catalog.DecodeRoot(data)
	return r, err == nil, err
}

func (s *RedisStore) GetRootByName(ctx context.Context, name string) (catalog.Root, bool, error) {
	idStr, err := s.client.Get(ctx, s.rootNameKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return catalog.Root{}, false, nil
	}
	if err != nil {
		return catalog.Root{}, false, err
	}
	id, err := catalog.ParseID(idStr)
	if err != nil {
		return catalog.Root{}, false, err
	}
	return s.GetRoot(ctx, id)
}

func (s *RedisStore) GetAllRoots(ctx context.Context) ([]catalog.Root, error) {
	ids, err := s.client.SMembers(ctx, s.rootsSetKey()).Result()
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Root, 0, len(ids))
	for _, idStr := range ids {
		id, err := catalog.ParseID(idStr)
		if err != nil {
			return nil, err
		}
		r, found, err := s.GetRoot(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }
