package postgres

import (
	"context"
	"database/sql"
	"errors"

	"petstore-client/internal/backend/accounts"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u accounts.User) (accounts.User, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (
			username, email, first_name, last_name, phone,
			role, password_hash, is_staff, date_joined
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`,
		u.Username,
		u.Email,
		u.FirstName,
		u.LastName,
		u.Phone,
		string(u.Role),
		u.PasswordHash,
		u.IsStaff,
		u.DateJoined,
	).Scan(&u.ID)
	if err != nil {
		switch uniqueViolation(err) {
		case "users_username_key":
			return accounts.User{}, accounts.ErrUsernameTaken
		case "users_email_key":
			return accounts.User{}, accounts.ErrEmailTaken
		}
		return accounts.User{}, err
	}
	return u, nil
}

const userColumns = `
	id, username, email, first_name, last_name, phone,
	role, password_hash, is_staff, date_joined`

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (accounts.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (accounts.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(username) = lower($1)`, username)
}

func (r *UsersRepo) getOne(ctx context.Context, query string, arg any) (accounts.User, error) {
	var (
		u    accounts.User
		role string
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&role,
		&u.PasswordHash,
		&u.IsStaff,
		&u.DateJoined,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accounts.User{}, accounts.ErrNotFound
		}
		return accounts.User{}, err
	}
	u.Role = accounts.Role(role)
	return u, nil
}
