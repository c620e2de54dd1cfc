package auth

import (
	"context"

	"github.com/google/uuid"
)

// RepoUserStore narrows the Users repository down to the interfaces
// the UserProvider and Auther consume.
type RepoUserStore struct {
	users Users
}

func NewRepoUserStore(users Users) RepoUserStore {
	return RepoUserStore{users: users}
}

func (a RepoUserStore) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	return a.users.GetByIdentifier(ctx, identifier)
}

func (a RepoUserStore) Register(ctx context.Context, user *User) (*User, error) {
	return a.users.Register(ctx, user)
}

func (a RepoUserStore) ResetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return a.users.ResetPassword(ctx, id, passwordHash)
}

func (a RepoUserStore) TrackAttemptedLogin(ctx context.Context, user *User) error {
	return a.users.TrackAttemptedLogin(ctx, user)
}

func (a RepoUserStore) TrackSuccessfulLogin(ctx context.Context, user *User) error {
	return a.users.TrackSuccessfulLogin(ctx, user)
}

var (
	_ UserStore   = RepoUserStore{}
	_ UserTracker = RepoUserStore{}
)
