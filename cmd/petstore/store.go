package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"petstore-client/internal/adapters/storage/memory"
	pg "petstore-client/internal/adapters/storage/postgres"
	"petstore-client/internal/adapters/storage/redis"
	"petstore-client/internal/adapters/storage/sqlite"
	"petstore-client/internal/platform/config"
	"petstore-client/internal/ports/kv"
)

// openedStore es el kv.Store elegido por config más su cierre.
type openedStore struct {
	kv.Store
	closeFn func() error
}

func (s *openedStore) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

func openStore(ctx context.Context, cfg config.Client) (*openedStore, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return &openedStore{Store: memory.NewKVStore()}, nil

	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.StoreDSN), 0o700); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
		s, err := sqlite.Open(ctx, cfg.StoreDSN)
		if err != nil {
			return nil, err
		}
		return &openedStore{Store: s, closeFn: s.Close}, nil

	case config.DriverRedis:
		s, err := redis.Open(ctx, cfg.StoreDSN, redis.DefaultPrefix)
		if err != nil {
			return nil, err
		}
		return &openedStore{Store: s, closeFn: s.Close}, nil

	case config.DriverPostgres:
		db, err := pg.Open(ctx, cfg.StoreDSN)
		if err != nil {
			return nil, err
		}
		s := pg.NewKVStore(db, namespace())
		if err := s.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &openedStore{Store: s, closeFn: db.Close}, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.StoreDriver)
}

// namespace separa el estado de cada máquina en una tabla compartida.
func namespace() string {
	if v := os.Getenv("PETSTORE_STORE_NAMESPACE"); v != "" {
		return v
	}
	host, err := os.Hostname()
	if err != nil {
		return "default"
	}
	return host
}
