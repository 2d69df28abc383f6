package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	commonhttp "github.com/seo-pirate/backend/internal/common/http"
	"github.com/seo-pirate/backend/internal/common/jwtverify"
	"github.com/seo-pirate/backend/internal/common/logger"
	userdomain "github.com/seo-pirate/backend/internal/user/domain"
	"github.com/seo-pirate/backend/internal/website/domain"
	"github.com/seo-pirate/backend/internal/website/service"
)

type createWebsiteRequest struct {
	Name   string `json:"name" validate:"required"`
	URL    string `json:"url" validate:"required,url"`
	UserID string `json:"userId" validate:"required,uuid4"`
}

type updateWebsiteRequest struct {
	Name    string           `json:"name" validate:"omitempty"`
	URL     string           `json:"url" validate:"omitempty,url"`
	SEOData *domain.Snapshot `json:"seodatas"`
}

type Handler struct {
	websites       *service.WebsiteService
	validate       *validator.Validate
	log            *logger.Logger
	requestTimeout time.Duration
}

func NewHandler(
	websites *service.WebsiteService,
	guard func(http.Handler) http.Handler,
	requestTimeout time.Duration,
	log *logger.Logger,
) http.Handler {
	h := &Handler{
		websites:       websites,
		validate:       validator.New(),
		log:            log,
		requestTimeout: requestTimeout,
	}

	mux := http.NewServeMux()
	mux.Handle("/api/websites", guard(http.HandlerFunc(h.collection)))
	mux.Handle("/api/websites/", guard(http.HandlerFunc(h.item)))
	return mux
}

func (h *Handler) collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) item(w http.ResponseWriter, r *http.Request) {
	id, ok := commonhttp.ExtractIDFromPath(r.URL.Path, "/api/websites/")
	if !ok || id == "" {
		commonhttp.WriteError(w, http.StatusBadRequest, "website id is required")
		return
	}
	if err := commonhttp.ValidateUUID(id); err != nil {
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid website id format")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, domain.ID(id))
	case http.MethodPut:
		h.update(w, r, domain.ID(id))
	case http.MethodDelete:
		h.delete(w, r, domain.ID(id))
	default:
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createWebsiteRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("create website failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		commonhttp.WriteError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	site, err := h.websites.CreateWebsite(ctx, service.CreateWebsiteInput{
		Name:   req.Name,
		URL:    req.URL,
		UserID: userdomain.ID(req.UserID),
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, site)
}

// list returns only the caller's websites, keyed by the token identity
// rather than anything in the request.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	sites, err := h.websites.ListWebsites(ctx, userdomain.ID(claims.UserID))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, sites)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, id domain.ID) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	site, err := h.websites.GetWebsite(ctx, id)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, site)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, id domain.ID) {
	var req updateWebsiteRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("update website failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		commonhttp.WriteError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	site, err := h.websites.UpdateWebsite(ctx, service.UpdateWebsiteInput{
		ID:      id,
		Name:    req.Name,
		URL:     req.URL,
		SEOData: req.SEOData,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, site)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, id domain.ID) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.websites.DeleteWebsite(ctx, id); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.requestTimeout)
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return "Provide name, url and userId"
		case "url":
			return "Provide a valid url"
		case "uuid4":
			return "Provide a valid userId"
		}
	}
	return "invalid request"
}
