package service

import (
	"context"

	userdomain "github.com/seo-pirate/backend/internal/user/domain"
	"github.com/seo-pirate/backend/internal/website/domain"
	websiterepo "github.com/seo-pirate/backend/internal/website/repository"
)

type mockWebsiteRepo struct {
	createFunc       func(ctx context.Context, site domain.Website) (domain.Website, error)
	findByIDFunc     func(ctx context.Context, id domain.ID) (domain.Website, error)
	listByUserIDFunc func(ctx context.Context, userID userdomain.ID) ([]domain.Website, error)
	updateFunc       func(ctx context.Context, site domain.Website) (domain.Website, error)
	deleteFunc       func(ctx context.Context, id domain.ID) error
}

func (m *mockWebsiteRepo) Create(ctx context.Context, site domain.Website) (domain.Website, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, site)
	}
	return site, nil
}

func (m *mockWebsiteRepo) FindByID(ctx context.Context, id domain.ID) (domain.Website, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Website{}, websiterepo.ErrWebsiteNotFound
}

func (m *mockWebsiteRepo) ListByUserID(ctx context.Context, userID userdomain.ID) ([]domain.Website, error) {
	if m.listByUserIDFunc != nil {
		return m.listByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockWebsiteRepo) Update(ctx context.Context, site domain.Website) (domain.Website, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, site)
	}
	return site, nil
}

func (m *mockWebsiteRepo) Delete(ctx context.Context, id domain.ID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockExtractor struct {
	extractFunc func(ctx context.Context, url string) (domain.Snapshot, error)
	calls       int
}

func (m *mockExtractor) Extract(ctx context.Context, url string) (domain.Snapshot, error) {
	m.calls++
	if m.extractFunc != nil {
		return m.extractFunc(ctx, url)
	}
	return domain.Snapshot{}, nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "site-1", nil
}
