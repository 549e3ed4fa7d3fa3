package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"petstore-client/internal/ports/kv"
)

const DefaultPrefix = "petstore:"

// KVStore implementa kv.Store sobre Redis. Las keys se guardan con prefix.
type KVStore struct {
	client *goredis.Client
	prefix string
}

// Open acepta una URL "redis://..." o un "host:port" simple.
func Open(ctx context.Context, addr string, prefix string) (*KVStore, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis: empty address")
	}

	opts, err := goredis.ParseURL(addr)
	if err != nil {
		// no es "redis://...": usarlo como Addr
		opts = &goredis.Options{
			Addr:         addr,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}
	}

	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	return NewKVStore(client, prefix), nil
}

// NewKVStore envuelve un cliente ya creado. prefix vacío => DefaultPrefix.
func NewKVStore(client *goredis.Client, prefix string) *KVStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &KVStore{client: client, prefix: prefix}
}

func (s *KVStore) Close() error {
	return s.client.Close()
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if strings.TrimSpace(key) == "" {
		return "", false, kv.ErrEmptyKey
	}

	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return kv.ErrEmptyKey
	}
	// sin expiración, igual que localStorage
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return kv.ErrEmptyKey
	}
	return s.client.Del(ctx, s.prefix+key).Err()
}
