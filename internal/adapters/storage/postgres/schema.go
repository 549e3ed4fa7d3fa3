package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const backendSchema = `
CREATE TABLE IF NOT EXISTS categories (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT        NOT NULL UNIQUE,
	description TEXT        NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS pets (
	id                  BIGSERIAL PRIMARY KEY,
	category_id         BIGINT        NOT NULL REFERENCES categories(id),
	name                TEXT          NOT NULL,
	description         TEXT          NOT NULL DEFAULT '',
	price               NUMERIC(10,2) NOT NULL,
	gender              CHAR(1)       NOT NULL,
	image_url           TEXT          NOT NULL DEFAULT '',
	is_available        BOOLEAN       NOT NULL DEFAULT TRUE,
	stock_quantity      INTEGER       NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
	min_stock_threshold INTEGER       NOT NULL DEFAULT 1,
	created_at          TIMESTAMPTZ   NOT NULL,
	updated_at          TIMESTAMPTZ   NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT        NOT NULL,
	email         TEXT        NOT NULL,
	first_name    TEXT        NOT NULL DEFAULT '',
	last_name     TEXT        NOT NULL DEFAULT '',
	phone         TEXT        NOT NULL DEFAULT '',
	role          TEXT        NOT NULL,
	password_hash TEXT        NOT NULL,
	is_staff      BOOLEAN     NOT NULL DEFAULT FALSE,
	date_joined   TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (lower(username));
CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (lower(email));

CREATE TABLE IF NOT EXISTS orders (
	id              BIGSERIAL PRIMARY KEY,
	number          UUID          NOT NULL UNIQUE,
	user_id         BIGINT        NOT NULL REFERENCES users(id),
	pet_id          BIGINT        NOT NULL REFERENCES pets(id),
	quantity        INTEGER       NOT NULL,
	total_price     NUMERIC(10,2) NOT NULL,
	status          TEXT          NOT NULL,
	delivery_method TEXT          NOT NULL,
	pickup_date     DATE,
	recipient_name  TEXT          NOT NULL DEFAULT '',
	order_date      TIMESTAMPTZ   NOT NULL,
	updated_at      TIMESTAMPTZ   NOT NULL
);
CREATE INDEX IF NOT EXISTS orders_user_idx ON orders (user_id, order_date DESC);
`

// MigrateBackend crea las tablas del backend de desarrollo.
func MigrateBackend(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, backendSchema); err != nil {
		return fmt.Errorf("postgres: migrate backend: %w", err)
	}
	return nil
}

// uniqueViolation devuelve el nombre de la constraint violada (23505), o "".
func uniqueViolation(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName
	}
	return ""
}

func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
