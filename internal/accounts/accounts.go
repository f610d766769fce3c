// Package accounts is a minimal in-memory user directory: username,
// password hash, stable player ID. Real deployments would back this with
// the same sqlite database the game store uses; this package only needs to
// satisfy the auth handlers' contract, so it stays intentionally small.
package accounts

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user-not-found")
var ErrUsernameTaken = errors.New("username-taken")

// User is one registered account.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Directory is a mutex-guarded in-memory user table.
type Directory struct {
	mu        sync.Mutex
	byID      map[string]*User
	byUsername map[string]*User
}

// NewDirectory returns an empty Directory.
func NewDirectory() *Directory {
	return &Directory{
		byID:       map[string]*User{},
		byUsername: map[string]*User{},
	}
}

// Create registers username with passwordHash (already bcrypt-hashed by the
// caller), returning ErrUsernameTaken on collision.
func (d *Directory) Create(username, passwordHash string) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byUsername[username]; ok {
		return nil, ErrUsernameTaken
	}
	u := &User{ID: uuid.NewString(), Username: username, PasswordHash: passwordHash}
	d.byID[u.ID] = u
	d.byUsername[username] = u
	return u, nil
}

// ByUsername looks up a user by username, or ErrNotFound.
func (d *Directory) ByUsername(username string) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

// ByID looks up a user by player ID, or ErrNotFound.
func (d *Directory) ByID(id string) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}
