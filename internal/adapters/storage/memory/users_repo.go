package memory

import (
	"context"
	"strings"
	"sync"

	"petstore-client/internal/backend/accounts"
)

type userRepo struct {
	mu         sync.RWMutex
	byID       map[int64]accounts.User
	byUsername map[string]int64 // lower(username) -> id
	byEmail    map[string]int64
	seq        int64
}

func NewUserRepo() accounts.Repository {
	return &userRepo{
		byID:       make(map[int64]accounts.User),
		byUsername: make(map[string]int64),
		byEmail:    make(map[string]int64),
	}
}

func (r *userRepo) Create(ctx context.Context, u accounts.User) (accounts.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	uname := strings.ToLower(u.Username)
	email := strings.ToLower(u.Email)
	if _, exists := r.byUsername[uname]; exists {
		return accounts.User{}, accounts.ErrUsernameTaken
	}
	if _, exists := r.byEmail[email]; exists && email != "" {
		return accounts.User{}, accounts.ErrEmailTaken
	}

	r.seq++
	u.ID = r.seq
	r.byID[u.ID] = u
	r.byUsername[uname] = u.ID
	if email != "" {
		r.byEmail[email] = u.ID
	}
	return u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (accounts.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return accounts.User{}, accounts.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (accounts.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[strings.ToLower(username)]
	if !ok {
		return accounts.User{}, accounts.ErrNotFound
	}
	return r.byID[id], nil
}
