package http

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/seo-pirate/backend/internal/common/jwtverify"
	"github.com/seo-pirate/backend/internal/common/logger"
	userdomain "github.com/seo-pirate/backend/internal/user/domain"
	"github.com/seo-pirate/backend/internal/website/domain"
	websiterepo "github.com/seo-pirate/backend/internal/website/repository"
	"github.com/seo-pirate/backend/internal/website/service"
)

const (
	testJWTSecret = "test-secret-key-that-is-long-enough!"
	testUserID    = "a2f2cc43-6d8f-4f5e-bb1e-9f4c6f2d8a01"
	otherUserID   = "b3e3dd54-7e9f-4a6f-cc2f-0a5d7f3e9b12"
)

type memoryWebsiteRepo struct {
	mu    sync.Mutex
	sites map[domain.ID]domain.Website
}

func newMemoryWebsiteRepo() *memoryWebsiteRepo {
	return &memoryWebsiteRepo{sites: make(map[domain.ID]domain.Website)}
}

func (r *memoryWebsiteRepo) Create(ctx context.Context, site domain.Website) (domain.Website, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sites[site.ID] = site
	return site, nil
}

func (r *memoryWebsiteRepo) FindByID(ctx context.Context, id domain.ID) (domain.Website, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	site, ok := r.sites[id]
	if !ok {
		return domain.Website{}, websiterepo.ErrWebsiteNotFound
	}
	return site, nil
}

func (r *memoryWebsiteRepo) ListByUserID(ctx context.Context, userID userdomain.ID) ([]domain.Website, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sites := make([]domain.Website, 0)
	for _, site := range r.sites {
		if site.UserID == userID {
			sites = append(sites, site)
		}
	}
	return sites, nil
}

func (r *memoryWebsiteRepo) Update(ctx context.Context, site domain.Website) (domain.Website, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sites[site.ID]; !ok {
		return domain.Website{}, websiterepo.ErrWebsiteNotFound
	}
	r.sites[site.ID] = site
	return site, nil
}

func (r *memoryWebsiteRepo) Delete(ctx context.Context, id domain.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sites, id)
	return nil
}

type stubExtractor struct {
	snapshot domain.Snapshot
	err      error
	calls    int
}

func (s *stubExtractor) Extract(ctx context.Context, url string) (domain.Snapshot, error) {
	s.calls++
	if s.err != nil {
		return domain.Snapshot{}, s.err
	}
	return s.snapshot, nil
}

type seqIDGenerator struct {
	ids []string
}

func (g *seqIDGenerator) NewID() (string, error) {
	id := g.ids[0]
	if len(g.ids) > 1 {
		g.ids = g.ids[1:]
	}
	return id, nil
}

func setupWebsiteHandler(t *testing.T, extractor *stubExtractor, refreshOnRead bool) (nethttp.Handler, *memoryWebsiteRepo) {
	t.Helper()

	repo := newMemoryWebsiteRepo()
	log, _ := logger.New("", "test", "error")

	svc := service.NewWebsiteService(service.WebsiteServiceDeps{
		Repo:      repo,
		Extractor: extractor,
		IDGenerator: &seqIDGenerator{ids: []string{
			"c4f4ee65-8faf-4b7f-dd3f-1b6e8f4f0c23",
			"d5a5ff76-9fbf-4c8f-ee4f-2c7f9a5a1d34",
		}},
		ScrapeTimeout: time.Second,
		RefreshOnRead: refreshOnRead,
		Log:           log,
	})

	guard := jwtverify.Middleware(testJWTSecret, log)
	return NewHandler(svc, guard, 5*time.Second, log), repo
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": userID,
		"eml": "pirate@example.com",
		"usr": "pirate",
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, handler nethttp.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestWebsiteHandler_Create(t *testing.T) {
	extractor := &stubExtractor{snapshot: domain.Snapshot{Title: []string{"Hi"}}}
	handler, _ := setupWebsiteHandler(t, extractor, true)
	token := tokenFor(t, testUserID)

	rec := doJSON(t, handler, nethttp.MethodPost, "/api/websites",
		`{"name":"Example","url":"https://example.com","userId":"`+testUserID+`"}`, token)
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var site struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		SEOData struct {
			Title []string `json:"title"`
		} `json:"seodatas"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &site); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if site.Name != "Example" {
		t.Errorf("unexpected name: %s", site.Name)
	}
	if len(site.SEOData.Title) != 1 || site.SEOData.Title[0] != "Hi" {
		t.Errorf("expected the scraped snapshot in the response, got %v", site.SEOData.Title)
	}
	if extractor.calls != 1 {
		t.Errorf("expected one scrape, got %d", extractor.calls)
	}
}

func TestWebsiteHandler_Create_ValidationErrors(t *testing.T) {
	handler, _ := setupWebsiteHandler(t, &stubExtractor{}, true)
	token := tokenFor(t, testUserID)

	testCases := []struct {
		name string
		body string
	}{
		{"missing name", `{"url":"https://example.com","userId":"` + testUserID + `"}`},
		{"missing url", `{"name":"Example","userId":"` + testUserID + `"}`},
		{"bad url", `{"name":"Example","url":"not a url","userId":"` + testUserID + `"}`},
		{"bad userId", `{"name":"Example","url":"https://example.com","userId":"nope"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, handler, nethttp.MethodPost, "/api/websites", tc.body, token)
			if rec.Code != nethttp.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestWebsiteHandler_Create_ScrapeFailure(t *testing.T) {
	extractor := &stubExtractor{err: context.DeadlineExceeded}
	handler, repo := setupWebsiteHandler(t, extractor, true)
	token := tokenFor(t, testUserID)

	rec := doJSON(t, handler, nethttp.MethodPost, "/api/websites",
		`{"name":"Example","url":"https://example.com","userId":"`+testUserID+`"}`, token)
	if rec.Code != nethttp.StatusInternalServerError && rec.Code != nethttp.StatusBadGateway {
		t.Fatalf("expected an error status, got %d", rec.Code)
	}
	if len(repo.sites) != 0 {
		t.Error("nothing may be persisted when the scrape fails")
	}
}

func TestWebsiteHandler_List_ScopedToCaller(t *testing.T) {
	handler, repo := setupWebsiteHandler(t, &stubExtractor{}, false)

	repo.sites["site-mine"] = domain.Website{ID: "site-mine", Name: "Mine", UserID: userdomain.ID(testUserID)}
	repo.sites["site-theirs"] = domain.Website{ID: "site-theirs", Name: "Theirs", UserID: userdomain.ID(otherUserID)}

	rec := doJSON(t, handler, nethttp.MethodGet, "/api/websites", "", tokenFor(t, testUserID))
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var sites []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &sites); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(sites) != 1 || sites[0].Name != "Mine" {
		t.Errorf("expected only the caller's websites, got %v", sites)
	}
}

func TestWebsiteHandler_Get_RefreshesSnapshot(t *testing.T) {
	extractor := &stubExtractor{snapshot: domain.Snapshot{Title: []string{"Fresh"}}}
	handler, repo := setupWebsiteHandler(t, extractor, true)

	const siteID = "c4f4ee65-8faf-4b7f-dd3f-1b6e8f4f0c23"
	repo.sites[siteID] = domain.Website{
		ID:      siteID,
		Name:    "Example",
		URL:     "https://example.com",
		UserID:  userdomain.ID(testUserID),
		SEOData: domain.Snapshot{Title: []string{"Stale"}},
	}

	rec := doJSON(t, handler, nethttp.MethodGet, "/api/websites/"+siteID, "", tokenFor(t, testUserID))
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var site struct {
		SEOData struct {
			Title []string `json:"title"`
		} `json:"seodatas"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &site); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(site.SEOData.Title) != 1 || site.SEOData.Title[0] != "Fresh" {
		t.Errorf("expected the refreshed snapshot, got %v", site.SEOData.Title)
	}

	stored := repo.sites[siteID]
	if stored.SEOData.Title[0] != "Fresh" {
		t.Errorf("expected the refreshed snapshot persisted, got %v", stored.SEOData.Title)
	}
}

func TestWebsiteHandler_Get_NotFound(t *testing.T) {
	handler, _ := setupWebsiteHandler(t, &stubExtractor{}, true)

	rec := doJSON(t, handler, nethttp.MethodGet,
		"/api/websites/c4f4ee65-8faf-4b7f-dd3f-1b6e8f4f0c23", "", tokenFor(t, testUserID))
	if rec.Code != nethttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWebsiteHandler_Get_InvalidID(t *testing.T) {
	handler, _ := setupWebsiteHandler(t, &stubExtractor{}, true)

	rec := doJSON(t, handler, nethttp.MethodGet, "/api/websites/not-a-uuid", "", tokenFor(t, testUserID))
	if rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWebsiteHandler_Update(t *testing.T) {
	extractor := &stubExtractor{}
	handler, repo := setupWebsiteHandler(t, extractor, true)

	const siteID = "c4f4ee65-8faf-4b7f-dd3f-1b6e8f4f0c23"
	repo.sites[siteID] = domain.Website{
		ID:      siteID,
		Name:    "Old name",
		URL:     "https://example.com",
		UserID:  userdomain.ID(testUserID),
		SEOData: domain.Snapshot{Title: []string{"Kept"}},
	}

	rec := doJSON(t, handler, nethttp.MethodPut, "/api/websites/"+siteID,
		`{"name":"New name"}`, tokenFor(t, testUserID))
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	stored := repo.sites[siteID]
	if stored.Name != "New name" {
		t.Errorf("expected name replaced, got %s", stored.Name)
	}
	if stored.URL != "https://example.com" {
		t.Errorf("expected omitted url kept, got %s", stored.URL)
	}
	if extractor.calls != 0 {
		t.Errorf("expected no scrape on update, got %d", extractor.calls)
	}
}

func TestWebsiteHandler_Delete_Idempotent(t *testing.T) {
	handler, repo := setupWebsiteHandler(t, &stubExtractor{}, true)

	const siteID = "c4f4ee65-8faf-4b7f-dd3f-1b6e8f4f0c23"
	repo.sites[siteID] = domain.Website{ID: siteID, UserID: userdomain.ID(testUserID)}
	token := tokenFor(t, testUserID)

	rec := doJSON(t, handler, nethttp.MethodDelete, "/api/websites/"+siteID, "", token)
	if rec.Code != nethttp.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(repo.sites) != 0 {
		t.Error("expected the website gone")
	}

	rec = doJSON(t, handler, nethttp.MethodDelete, "/api/websites/"+siteID, "", token)
	if rec.Code != nethttp.StatusNoContent {
		t.Fatalf("expected deleting again to answer 204, got %d", rec.Code)
	}
}

func TestWebsiteHandler_RequiresToken(t *testing.T) {
	handler, _ := setupWebsiteHandler(t, &stubExtractor{}, true)

	rec := doJSON(t, handler, nethttp.MethodGet, "/api/websites", "", "")
	if rec.Code != nethttp.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
