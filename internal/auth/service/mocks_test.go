package service

import (
	"context"

	userdomain "github.com/seo-pirate/backend/internal/user/domain"
	userrepo "github.com/seo-pirate/backend/internal/user/repository"
)

type mockUserRepo struct {
	createFunc         func(ctx context.Context, user userdomain.User) error
	findByEmailFunc    func(ctx context.Context, email string) (userdomain.User, error)
	findByUsernameFunc func(ctx context.Context, username string) (userdomain.User, error)
	findByIDFunc       func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
	updateFunc         func(ctx context.Context, user userdomain.User) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (userdomain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, user userdomain.User) (userdomain.User, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, user)
	}
	return user, nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "id-1", nil
}
