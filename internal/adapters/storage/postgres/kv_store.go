package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"petstore-client/internal/ports/kv"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS client_kv (
	namespace  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (namespace, key)
)`

// KVStore implementa kv.Store en una tabla compartida, separando
// clientes por namespace (p.ej. un perfil de usuario por máquina).
type KVStore struct {
	db        *sql.DB
	namespace string
	now       func() time.Time
}

func NewKVStore(db *sql.DB, namespace string) *KVStore {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = "default"
	}
	return &KVStore{db: db, namespace: namespace, now: time.Now}
}

// Migrate crea la tabla si no existe.
func (s *KVStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, kvSchema); err != nil {
		return fmt.Errorf("postgres: migrate kv: %w", err)
	}
	return nil
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if strings.TrimSpace(key) == "" {
		return "", false, kv.ErrEmptyKey
	}

	var v string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM client_kv WHERE namespace = $1 AND key = $2
	`, s.namespace, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO client_kv (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, s.namespace, key, value, s.now().UTC())
	return err
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return kv.ErrEmptyKey
	}

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM client_kv WHERE namespace = $1 AND key = $2
	`, s.namespace, key)
	return err
}
