package service

import (
	"context"
	"time"

	commoncrypto "github.com/seo-pirate/backend/internal/common/crypto"
	"github.com/seo-pirate/backend/internal/common/logger"
	"github.com/seo-pirate/backend/internal/observability/metrics"
	"github.com/seo-pirate/backend/internal/scraper"
	userdomain "github.com/seo-pirate/backend/internal/user/domain"
	"github.com/seo-pirate/backend/internal/website/domain"
	websiterepo "github.com/seo-pirate/backend/internal/website/repository"
)

type WebsiteService struct {
	repo          websiterepo.Repository
	extractor     scraper.Extractor
	idGenerator   commoncrypto.IDGenerator
	scrapeTimeout time.Duration
	refreshOnRead bool
	log           *logger.Logger
}

type WebsiteServiceDeps struct {
	Repo          websiterepo.Repository
	Extractor     scraper.Extractor
	IDGenerator   commoncrypto.IDGenerator
	ScrapeTimeout time.Duration
	RefreshOnRead bool
	Log           *logger.Logger
}

func NewWebsiteService(deps WebsiteServiceDeps) *WebsiteService {
	return &WebsiteService{
		repo:          deps.Repo,
		extractor:     deps.Extractor,
		idGenerator:   deps.IDGenerator,
		scrapeTimeout: deps.ScrapeTimeout,
		refreshOnRead: deps.RefreshOnRead,
		log:           deps.Log,
	}
}

type CreateWebsiteInput struct {
	Name   string
	URL    string
	UserID userdomain.ID
}

type UpdateWebsiteInput struct {
	ID      domain.ID
	Name    string
	URL     string
	SEOData *domain.Snapshot
}

// CreateWebsite scrapes first and persists only on success: a website
// row never exists without a real snapshot behind it.
func (s *WebsiteService) CreateWebsite(ctx context.Context, input CreateWebsiteInput) (domain.Website, error) {
	s.log.WithFields(ctx, logger.Fields{
		"url":    input.URL,
		"action": "website_create_attempt",
	}).Info("website create attempt")

	snapshot, err := s.scrape(ctx, input.URL, "create")
	if err != nil {
		return domain.Website{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Website{}, err
	}

	site := domain.Website{
		ID:      domain.ID(id),
		Name:    input.Name,
		URL:     input.URL,
		UserID:  input.UserID,
		SEOData: snapshot,
	}

	created, err := s.repo.Create(ctx, site)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"url":    input.URL,
			"action": "website_create_failed",
		}).Errorf("failed to persist website: %v", err)
		return domain.Website{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"website_id": string(created.ID),
		"action":     "website_created",
	}).Info("website created")
	return created, nil
}

func (s *WebsiteService) ListWebsites(ctx context.Context, userID userdomain.ID) ([]domain.Website, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// GetWebsite re-scrapes the live page and overwrites the stored snapshot
// before answering, so a read always reflects the page as it is now. A
// failed refresh fails the read; the stored snapshot stays untouched.
func (s *WebsiteService) GetWebsite(ctx context.Context, id domain.ID) (domain.Website, error) {
	site, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Website{}, err
	}

	if !s.refreshOnRead {
		return site, nil
	}

	snapshot, err := s.scrape(ctx, site.URL, "read")
	if err != nil {
		return domain.Website{}, err
	}

	site.SEOData = snapshot
	refreshed, err := s.repo.Update(ctx, site)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"website_id": string(id),
			"action":     "website_refresh_failed",
		}).Errorf("failed to persist refreshed snapshot: %v", err)
		return domain.Website{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"website_id": string(id),
		"action":     "website_refreshed",
	}).Debug("snapshot refreshed on read")
	return refreshed, nil
}

// UpdateWebsite changes the record's own fields only. The snapshot is
// not re-scraped here; reads do that.
func (s *WebsiteService) UpdateWebsite(ctx context.Context, input UpdateWebsiteInput) (domain.Website, error) {
	site, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return domain.Website{}, err
	}

	if input.Name != "" {
		site.Name = input.Name
	}
	if input.URL != "" {
		site.URL = input.URL
	}
	if input.SEOData != nil {
		site.SEOData = *input.SEOData
	}

	updated, err := s.repo.Update(ctx, site)
	if err != nil {
		return domain.Website{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"website_id": string(updated.ID),
		"action":     "website_updated",
	}).Info("website updated")
	return updated, nil
}

// DeleteWebsite is idempotent: deleting a website that does not exist
// succeeds.
func (s *WebsiteService) DeleteWebsite(ctx context.Context, id domain.ID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.WithFields(ctx, logger.Fields{
		"website_id": string(id),
		"action":     "website_deleted",
	}).Info("website deleted")
	return nil
}

func (s *WebsiteService) scrape(ctx context.Context, url, trigger string) (domain.Snapshot, error) {
	scrapeCtx, cancel := context.WithTimeout(ctx, s.scrapeTimeout)
	defer cancel()

	start := time.Now()
	snapshot, err := s.extractor.Extract(scrapeCtx, url)
	metrics.ScrapeDurationSeconds.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ScrapesTotal.WithLabelValues(trigger, "failure").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"url":     url,
			"trigger": trigger,
			"action":  "scrape_failed",
		}).Warnf("scrape failed: %v", err)
		return domain.Snapshot{}, err
	}

	metrics.ScrapesTotal.WithLabelValues(trigger, "success").Inc()
	return snapshot, nil
}
